package categoria

import (
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/utils"
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Criar insere a categoria; colisão de slug dentro da empresa ganha uma
// única nova tentativa desambiguada.
func (r *Repository) Criar(c *CategoriaDelivery) error {
	err := r.DB.Create(c).Error
	if err != nil && utils.EViolacaoUnicidade(err) && c.Slug != "" {
		c.ID = 0
		c.Slug = utils.SlugDesambiguado(c.Slug)
		return r.DB.Create(c).Error
	}
	return err
}

func (r *Repository) BuscarPorID(id uint) (*CategoriaDelivery, error) {
	var c CategoriaDelivery
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) ListarPorEmpresa(empresaID uint) ([]CategoriaDelivery, error) {
	var categorias []CategoriaDelivery
	err := r.DB.Where("empresa_id = ?", empresaID).
		Order("posicao, nome").
		Find(&categorias).Error
	return categorias, err
}

func (r *Repository) Atualizar(c *CategoriaDelivery) error {
	return r.DB.Save(c).Error
}

func (r *Repository) Deletar(id uint) error {
	return r.DB.Delete(&CategoriaDelivery{}, id).Error
}
