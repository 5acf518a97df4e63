package entregador

import (
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/empresa"
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Criar(e *Entregador) error {
	return r.DB.Create(e).Error
}

func (r *Repository) BuscarPorID(id uint) (*Entregador, error) {
	var e Entregador
	if err := r.DB.Preload("Empresas").First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repository) ListarTodos() ([]Entregador, error) {
	var entregadores []Entregador
	err := r.DB.Preload("Empresas").Order("nome").Find(&entregadores).Error
	return entregadores, err
}

func (r *Repository) ListarPorEmpresa(empresaID uint) ([]Entregador, error) {
	var entregadores []Entregador
	err := r.DB.
		Joins("JOIN entregador_empresas ee ON ee.entregador_id = entregadors.id").
		Where("ee.empresa_id = ?", empresaID).
		Order("nome").
		Find(&entregadores).Error
	return entregadores, err
}

func (r *Repository) Atualizar(e *Entregador) error {
	return r.DB.Save(e).Error
}

func (r *Repository) Deletar(id uint) error {
	return r.DB.Select("Empresas").Delete(&Entregador{Model: gorm.Model{ID: id}}).Error
}

// VincularEmpresas substitui o conjunto de empresas atendidas.
func (r *Repository) VincularEmpresas(entregadorID uint, empresaIDs []uint) error {
	e, err := r.BuscarPorID(entregadorID)
	if err != nil {
		return err
	}
	empresas := make([]empresa.Empresa, 0, len(empresaIDs))
	for _, id := range empresaIDs {
		var emp empresa.Empresa
		if err := r.DB.First(&emp, id).Error; err != nil {
			return err
		}
		empresas = append(empresas, emp)
	}
	return r.DB.Model(e).Association("Empresas").Replace(empresas)
}
