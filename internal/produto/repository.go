package produto

import (
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/vinculo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Criar(p *Produto) error {
	return r.DB.Create(p).Error
}

func (r *Repository) BuscarPorID(id uint) (*Produto, error) {
	var p Produto
	if err := r.DB.Preload("Empresas").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) BuscarPorCodBarras(codBarras string) (*Produto, error) {
	var p Produto
	if err := r.DB.Where("cod_barras = ?", codBarras).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) ListarPorEmpresa(empresaID uint, limite, offset int) ([]Produto, error) {
	var produtos []Produto
	err := r.DB.
		Joins("JOIN produto_emps ON produto_emps.produto_id = produtos.id").
		Where("produto_emps.empresa_id = ?", empresaID).
		Preload("Empresas", "empresa_id = ?", empresaID).
		Limit(limite).Offset(offset).
		Order("produtos.descricao").
		Find(&produtos).Error
	return produtos, err
}

func (r *Repository) Atualizar(p *Produto) error {
	return r.DB.Save(p).Error
}

// EmUso verifica se o produto é alvo de alguma linha polimórfica do catálogo
// ou de um item de pedido; produtos em uso não podem ser removidos.
func (r *Repository) EmUso(id uint) bool {
	tabelas := []string{"receita_ingredientes", "combo_items", "complemento_items", "vitrine_items", "pedido_items"}
	for _, t := range tabelas {
		var n int64
		r.DB.Table(t).Where("tipo = ? AND ref_id = ?", vinculo.TipoProduto, id).Count(&n)
		if n > 0 {
			return true
		}
	}
	return false
}

func (r *Repository) Deletar(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("produto_id = ?", id).Delete(&ProdutoEmp{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Produto{}, id).Error
	})
}

// SalvarVinculoEmpresa cria ou atualiza o preço/custo do produto na empresa.
func (r *Repository) SalvarVinculoEmpresa(pe *ProdutoEmp) error {
	var existente ProdutoEmp
	err := r.DB.Where("empresa_id = ? AND produto_id = ?", pe.EmpresaID, pe.ProdutoID).First(&existente).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(pe).Error
	}
	if err != nil {
		return err
	}
	existente.PrecoVenda = pe.PrecoVenda
	existente.Custo = pe.Custo
	existente.Disponivel = pe.Disponivel
	existente.ExibirDelivery = pe.ExibirDelivery
	return r.DB.Save(&existente).Error
}

func (r *Repository) BuscarVinculoEmpresa(empresaID, produtoID uint) (*ProdutoEmp, error) {
	var pe ProdutoEmp
	err := r.DB.Where("empresa_id = ? AND produto_id = ?", empresaID, produtoID).First(&pe).Error
	if err != nil {
		return nil, err
	}
	return &pe, nil
}

// PrecoVendaEmpresa retorna o preço de venda do produto na empresa, ou zero
// quando não há vínculo.
func (r *Repository) PrecoVendaEmpresa(empresaID, produtoID uint) decimal.Decimal {
	pe, err := r.BuscarVinculoEmpresa(empresaID, produtoID)
	if err != nil {
		return decimal.Zero
	}
	return pe.PrecoVenda
}

func (r *Repository) ExisteNaEmpresa(empresaID, produtoID uint) bool {
	var n int64
	r.DB.Model(&ProdutoEmp{}).Where("empresa_id = ? AND produto_id = ?", empresaID, produtoID).Count(&n)
	return n > 0
}
