package vitrine

import (
	"errors"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/combo"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/produto"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/receita"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/vinculo"
	"gorm.io/gorm"
)

var (
	ErrTipoInvalido      = errors.New("item de vitrine deve apontar para produto, receita ou combo")
	ErrAlvoNaoEncontrado = errors.New("alvo do item não encontrado na empresa")
)

type Repository struct {
	DB          *gorm.DB
	produtoRepo *produto.Repository
	receitaRepo *receita.Repository
	comboRepo   *combo.Repository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:          db,
		produtoRepo: produto.NewRepository(db),
		receitaRepo: receita.NewRepository(db),
		comboRepo:   combo.NewRepository(db),
	}
}

func (r *Repository) Criar(v *Vitrine) error {
	return r.DB.Create(v).Error
}

func (r *Repository) BuscarPorID(id uint) (*Vitrine, error) {
	var v Vitrine
	err := r.DB.Preload("Itens", func(db *gorm.DB) *gorm.DB { return db.Order("posicao") }).
		First(&v, id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repository) ListarPorEmpresa(empresaID uint, somenteAtivas bool) ([]Vitrine, error) {
	q := r.DB.Preload("Itens", func(db *gorm.DB) *gorm.DB { return db.Order("posicao") }).
		Where("empresa_id = ?", empresaID)
	if somenteAtivas {
		q = q.Where("ativa = ?", true)
	}
	var vitrines []Vitrine
	err := q.Order("posicao, titulo").Find(&vitrines).Error
	return vitrines, err
}

func (r *Repository) Atualizar(v *Vitrine) error {
	return r.DB.Save(v).Error
}

func (r *Repository) Deletar(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vitrine_id = ?", id).Delete(&VitrineItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Vitrine{}, id).Error
	})
}

func (r *Repository) AdicionarItem(empresaID, vitrineID uint, item *VitrineItem) error {
	switch item.Tipo {
	case vinculo.TipoProduto:
		if !r.produtoRepo.ExisteNaEmpresa(empresaID, item.RefID) {
			return ErrAlvoNaoEncontrado
		}
	case vinculo.TipoReceita:
		if !r.receitaRepo.ExisteNaEmpresa(empresaID, item.RefID) {
			return ErrAlvoNaoEncontrado
		}
	case vinculo.TipoCombo:
		if !r.comboRepo.ExisteNaEmpresa(empresaID, item.RefID) {
			return ErrAlvoNaoEncontrado
		}
	default:
		return ErrTipoInvalido
	}
	item.VitrineID = vitrineID
	return r.DB.Create(item).Error
}

func (r *Repository) RemoverItem(vitrineID, itemID uint) error {
	return r.DB.Where("vitrine_id = ?", vitrineID).Delete(&VitrineItem{}, itemID).Error
}
