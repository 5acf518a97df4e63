package receita

import (
	"errors"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/vinculo"
	"gorm.io/gorm"
)

var (
	ErrTipoInvalido       = errors.New("tipo de linha inválido")
	ErrAlvoNaoEncontrado  = errors.New("alvo da linha não encontrado na empresa")
	ErrReceitaEmUso       = errors.New("receita em uso em combos, complementos ou pedidos")
	ErrIngredienteEmUso   = errors.New("ingrediente em uso em receitas")
	ErrEmpresaDivergente  = errors.New("alvo pertence a outra empresa")
	ErrReceitaInexistente = errors.New("receita não encontrada")
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Criar(rec *Receita) error {
	return r.DB.Create(rec).Error
}

func (r *Repository) BuscarPorID(id uint) (*Receita, error) {
	var rec Receita
	if err := r.DB.Preload("Ingredientes").First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *Repository) ListarPorEmpresa(empresaID uint) ([]Receita, error) {
	var receitas []Receita
	err := r.DB.Preload("Ingredientes").
		Where("empresa_id = ?", empresaID).
		Order("nome").
		Find(&receitas).Error
	return receitas, err
}

func (r *Repository) Atualizar(rec *Receita) error {
	return r.DB.Save(rec).Error
}

func (r *Repository) ExisteNaEmpresa(empresaID, receitaID uint) bool {
	var n int64
	r.DB.Model(&Receita{}).Where("id = ? AND empresa_id = ?", receitaID, empresaID).Count(&n)
	return n > 0
}

// EmUso verifica referências à receita fora dela mesma.
func (r *Repository) EmUso(id uint) bool {
	tabelas := []string{"combo_items", "complemento_items", "vitrine_items", "pedido_items", "receita_ingredientes"}
	for _, t := range tabelas {
		var n int64
		r.DB.Table(t).Where("tipo = ? AND ref_id = ?", vinculo.TipoReceita, id).Count(&n)
		if n > 0 {
			return true
		}
	}
	return false
}

func (r *Repository) Deletar(id uint) error {
	if r.EmUso(id) {
		return ErrReceitaEmUso
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("receita_id = ?", id).Delete(&ReceitaIngrediente{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Receita{}, id).Error
	})
}

// validarAlvo confere existência e posse do alvo da linha antes da escrita.
// Combos e produtos são checados por nome de tabela para não criar ciclo de
// import entre os pacotes do catálogo.
func (r *Repository) validarAlvo(empresaID uint, tipo vinculo.Tipo, refID uint) error {
	var n int64
	switch tipo {
	case vinculo.TipoIngrediente:
		r.DB.Model(&Ingrediente{}).Where("id = ? AND empresa_id = ?", refID, empresaID).Count(&n)
	case vinculo.TipoReceita:
		r.DB.Model(&Receita{}).Where("id = ? AND empresa_id = ?", refID, empresaID).Count(&n)
	case vinculo.TipoProduto:
		r.DB.Table("produto_emps").Where("produto_id = ? AND empresa_id = ?", refID, empresaID).Count(&n)
	case vinculo.TipoCombo:
		r.DB.Table("combos").Where("id = ? AND empresa_id = ? AND deleted_at IS NULL", refID, empresaID).Count(&n)
	default:
		return ErrTipoInvalido
	}
	if n == 0 {
		return ErrAlvoNaoEncontrado
	}
	return nil
}

// AdicionarLinha insere uma linha polimórfica na receita.
func (r *Repository) AdicionarLinha(receitaID uint, linha *ReceitaIngrediente) error {
	rec, err := r.BuscarPorID(receitaID)
	if err != nil {
		return ErrReceitaInexistente
	}
	if !linha.Tipo.Valido() {
		return ErrTipoInvalido
	}
	if err := r.validarAlvo(rec.EmpresaID, linha.Tipo, linha.RefID); err != nil {
		return err
	}
	linha.ReceitaID = receitaID
	return r.DB.Create(linha).Error
}

func (r *Repository) RemoverLinha(receitaID, linhaID uint) error {
	return r.DB.Where("receita_id = ?", receitaID).Delete(&ReceitaIngrediente{}, linhaID).Error
}

// --- ingredientes básicos ---

func (r *Repository) CriarIngrediente(i *Ingrediente) error {
	return r.DB.Create(i).Error
}

func (r *Repository) BuscarIngrediente(id uint) (*Ingrediente, error) {
	var i Ingrediente
	if err := r.DB.First(&i, id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *Repository) ListarIngredientes(empresaID uint) ([]Ingrediente, error) {
	var ingredientes []Ingrediente
	err := r.DB.Where("empresa_id = ?", empresaID).Order("nome").Find(&ingredientes).Error
	return ingredientes, err
}

func (r *Repository) AtualizarIngrediente(i *Ingrediente) error {
	return r.DB.Save(i).Error
}

func (r *Repository) DeletarIngrediente(id uint) error {
	var n int64
	r.DB.Model(&ReceitaIngrediente{}).Where("tipo = ? AND ref_id = ?", vinculo.TipoIngrediente, id).Count(&n)
	if n > 0 {
		return ErrIngredienteEmUso
	}
	return r.DB.Delete(&Ingrediente{}, id).Error
}
