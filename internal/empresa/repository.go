package empresa

import (
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/utils"
	"gorm.io/gorm"
)

type Repository interface {
	Criar(db *gorm.DB, e *Empresa) error
	BuscarPorID(db *gorm.DB, id uint) (*Empresa, error)
	BuscarPorSlug(db *gorm.DB, slug string) (*Empresa, error)
	ListarTodas(db *gorm.DB) ([]Empresa, error)
	Atualizar(db *gorm.DB, id uint, novosDados *Empresa) error
	Deletar(db *gorm.DB, id uint) error
	Existe(db *gorm.DB, id uint) bool
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// Criar insere a empresa; colisão de slug é tratada com uma única nova
// tentativa usando um slug desambiguado.
func (r *repositoryImpl) Criar(db *gorm.DB, e *Empresa) error {
	err := db.Create(e).Error
	if err != nil && utils.EViolacaoUnicidade(err) && e.Slug != "" {
		e.ID = 0
		e.Slug = utils.SlugDesambiguado(e.Slug)
		return db.Create(e).Error
	}
	return err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Empresa, error) {
	var e Empresa
	if err := db.First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repositoryImpl) BuscarPorSlug(db *gorm.DB, slug string) (*Empresa, error) {
	var e Empresa
	if err := db.Where("slug = ?", slug).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repositoryImpl) ListarTodas(db *gorm.DB) ([]Empresa, error) {
	var empresas []Empresa
	err := db.Order("nome").Find(&empresas).Error
	return empresas, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, id uint, novosDados *Empresa) error {
	var existente Empresa
	if err := db.First(&existente, id).Error; err != nil {
		return err
	}

	existente.Nome = novosDados.Nome
	existente.CNPJ = novosDados.CNPJ
	existente.Telefone = novosDados.Telefone
	existente.Endereco = novosDados.Endereco
	existente.Ativa = novosDados.Ativa
	if novosDados.Slug != "" {
		existente.Slug = novosDados.Slug
	}

	return db.Save(&existente).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Empresa{}, id).Error
}

func (r *repositoryImpl) Existe(db *gorm.DB, id uint) bool {
	var n int64
	db.Model(&Empresa{}).Where("id = ?", id).Count(&n)
	return n > 0
}
