package combo

import (
	"errors"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/produto"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/receita"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/vinculo"
	"gorm.io/gorm"
)

var (
	ErrComboEmUso        = errors.New("combo em uso em receitas, complementos ou pedidos")
	ErrTipoInvalido      = errors.New("item de combo deve apontar para produto ou receita")
	ErrAlvoNaoEncontrado = errors.New("alvo do item não encontrado na empresa")
	ErrLimitesInvalidos  = errors.New("limites mínimo/máximo da seção inválidos")
)

type Repository struct {
	DB          *gorm.DB
	produtoRepo *produto.Repository
	receitaRepo *receita.Repository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:          db,
		produtoRepo: produto.NewRepository(db),
		receitaRepo: receita.NewRepository(db),
	}
}

func (r *Repository) Criar(c *Combo) error {
	return r.DB.Create(c).Error
}

func (r *Repository) BuscarPorID(id uint) (*Combo, error) {
	var c Combo
	err := r.DB.Preload("Secoes", func(db *gorm.DB) *gorm.DB { return db.Order("posicao") }).
		Preload("Secoes.Itens", func(db *gorm.DB) *gorm.DB { return db.Order("posicao") }).
		First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) ListarPorEmpresa(empresaID uint) ([]Combo, error) {
	var combos []Combo
	err := r.DB.Preload("Secoes.Itens").
		Where("empresa_id = ?", empresaID).
		Order("nome").
		Find(&combos).Error
	return combos, err
}

func (r *Repository) Atualizar(c *Combo) error {
	return r.DB.Save(c).Error
}

func (r *Repository) ExisteNaEmpresa(empresaID, comboID uint) bool {
	var n int64
	r.DB.Model(&Combo{}).Where("id = ? AND empresa_id = ?", comboID, empresaID).Count(&n)
	return n > 0
}

func (r *Repository) EmUso(id uint) bool {
	tabelas := []string{"receita_ingredientes", "complemento_items", "vitrine_items", "pedido_items"}
	for _, t := range tabelas {
		var n int64
		r.DB.Table(t).Where("tipo = ? AND ref_id = ?", vinculo.TipoCombo, id).Count(&n)
		if n > 0 {
			return true
		}
	}
	return false
}

func (r *Repository) Deletar(id uint) error {
	if r.EmUso(id) {
		return ErrComboEmUso
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var secaoIDs []uint
		if err := tx.Model(&ComboSecao{}).Where("combo_id = ?", id).Pluck("id", &secaoIDs).Error; err != nil {
			return err
		}
		if len(secaoIDs) > 0 {
			if err := tx.Where("secao_id IN ?", secaoIDs).Delete(&ComboItem{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("combo_id = ?", id).Delete(&ComboSecao{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Combo{}, id).Error
	})
}

func (r *Repository) CriarSecao(comboID uint, s *ComboSecao) error {
	if s.MinimoItens < 0 || (s.MaximoItens > 0 && s.MaximoItens < s.MinimoItens) {
		return ErrLimitesInvalidos
	}
	s.ComboID = comboID
	return r.DB.Create(s).Error
}

func (r *Repository) DeletarSecao(comboID, secaoID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("secao_id = ?", secaoID).Delete(&ComboItem{}).Error; err != nil {
			return err
		}
		return tx.Where("combo_id = ?", comboID).Delete(&ComboSecao{}, secaoID).Error
	})
}

// AdicionarItem insere um item na seção, validando tipo e posse do alvo.
func (r *Repository) AdicionarItem(empresaID, secaoID uint, item *ComboItem) error {
	switch item.Tipo {
	case vinculo.TipoProduto:
		if !r.produtoRepo.ExisteNaEmpresa(empresaID, item.RefID) {
			return ErrAlvoNaoEncontrado
		}
	case vinculo.TipoReceita:
		if !r.receitaRepo.ExisteNaEmpresa(empresaID, item.RefID) {
			return ErrAlvoNaoEncontrado
		}
	default:
		return ErrTipoInvalido
	}
	item.SecaoID = secaoID
	return r.DB.Create(item).Error
}

func (r *Repository) RemoverItem(secaoID, itemID uint) error {
	return r.DB.Where("secao_id = ?", secaoID).Delete(&ComboItem{}, itemID).Error
}
