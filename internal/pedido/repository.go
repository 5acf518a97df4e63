package pedido

import (
	"errors"
	"time"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/combo"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/produto"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/receita"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/vinculo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrItemIndisponivel = errors.New("item do pedido não encontrado ou indisponível na empresa")
	ErrPedidoVazio      = errors.New("pedido sem itens")
	ErrStatusInvalido   = errors.New("status de pedido inválido")
)

var statusValidos = map[string]bool{
	StatusPendente:        true,
	StatusEmPreparo:       true,
	StatusSaiuParaEntrega: true,
	StatusEntregue:        true,
	StatusCancelado:       true,
}

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

// PrecificarItem resolve o preço unitário autoritativo do alvo na empresa e
// a descrição para congelar no item.
func (r *Repository) PrecificarItem(empresaID uint, tipo vinculo.Tipo, refID uint) (decimal.Decimal, string, error) {
	switch tipo {
	case vinculo.TipoProduto:
		pe, err := r.produtoRepo.BuscarVinculoEmpresa(empresaID, refID)
		if err != nil || !pe.Disponivel {
			return decimal.Zero, "", ErrItemIndisponivel
		}
		p, err := r.produtoRepo.BuscarPorID(refID)
		if err != nil {
			return decimal.Zero, "", ErrItemIndisponivel
		}
		return pe.PrecoVenda, p.Descricao, nil
	case vinculo.TipoReceita:
		rec, err := r.receitaRepo.BuscarPorID(refID)
		if err != nil || rec.EmpresaID != empresaID || !rec.Disponivel {
			return decimal.Zero, "", ErrItemIndisponivel
		}
		return rec.PrecoVenda, rec.Nome, nil
	case vinculo.TipoCombo:
		c, err := r.comboRepo.BuscarPorID(refID)
		if err != nil || c.EmpresaID != empresaID || !c.Disponivel {
			return decimal.Zero, "", ErrItemIndisponivel
		}
		return c.PrecoTotal, c.Nome, nil
	}
	return decimal.Zero, "", ErrItemIndisponivel
}

// Criar grava o pedido com itens e a primeira entrada do histórico em uma
// transação.
func (r *Repository) Criar(p *Pedido) error {
	if len(p.Itens) == 0 {
		return ErrPedidoVazio
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		hist := PedidoStatusHistorico{
			PedidoID: p.ID,
			Status:   p.Status,
			CriadoEm: time.Now(),
		}
		return tx.Create(&hist).Error
	})
}

func (r *Repository) BuscarPorID(id uint) (*Pedido, error) {
	var p Pedido
	err := r.DB.Preload("Itens").
		Preload("Historico", func(db *gorm.DB) *gorm.DB { return db.Order("criado_em") }).
		Preload("Transacoes").
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) ListarPorEmpresa(empresaID uint, status string, limite, offset int) ([]Pedido, error) {
	q := r.DB.Preload("Itens").Where("empresa_id = ?", empresaID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var pedidos []Pedido
	err := q.Order("created_at DESC").Limit(limite).Offset(offset).Find(&pedidos).Error
	return pedidos, err
}

// MudarStatus atualiza o status e registra a transição no histórico.
func (r *Repository) MudarStatus(id uint, status string) error {
	if !statusValidos[status] {
		return ErrStatusInvalido
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Pedido{}).Where("id = ?", id).Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		hist := PedidoStatusHistorico{PedidoID: id, Status: status, CriadoEm: time.Now()}
		return tx.Create(&hist).Error
	})
}

func (r *Repository) RegistrarTransacao(t *TransacaoPagamento) error {
	return r.DB.Create(t).Error
}

func (r *Repository) AtribuirEntregador(pedidoID, entregadorID uint) error {
	res := r.DB.Model(&Pedido{}).Where("id = ?", pedidoID).Update("entregador_id", entregadorID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
