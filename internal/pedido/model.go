package pedido

import (
	"time"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/vinculo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Status do pedido. Transições são registradas em PedidoStatusHistorico.
const (
	StatusPendente        = "PENDENTE"
	StatusEmPreparo       = "EM_PREPARO"
	StatusSaiuParaEntrega = "SAIU_PARA_ENTREGA"
	StatusEntregue        = "ENTREGUE"
	StatusCancelado       = "CANCELADO"
)

// Status da transação de pagamento. "Pago" deriva de existir transação em
// PAGO ou AUTORIZADO, nunca de flag no pedido.
const (
	TransacaoPendente   = "PENDENTE"
	TransacaoPago       = "PAGO"
	TransacaoAutorizado = "AUTORIZADO"
	TransacaoNegado     = "NEGADO"
)

type Pedido struct {
	gorm.Model
	EmpresaID uint `json:"empresaId" gorm:"not null;index"`

	ClienteNome     string `json:"clienteNome"`
	ClienteTelefone string `json:"clienteTelefone"`
	EnderecoEntrega string `json:"enderecoEntrega"`

	EntregadorID *uint `json:"entregadorId,omitempty" gorm:"index"`

	Subtotal    decimal.Decimal `json:"subtotal" gorm:"type:numeric(12,2)"`
	Desconto    decimal.Decimal `json:"desconto" gorm:"type:numeric(12,2)"`
	TaxaEntrega decimal.Decimal `json:"taxaEntrega" gorm:"type:numeric(12,2)"`
	ValorTotal  decimal.Decimal `json:"valorTotal" gorm:"type:numeric(12,2)"`

	CupomID *uint  `json:"cupomId,omitempty"`
	Status  string `json:"status" gorm:"size:32;index"`

	// Acerto com o entregador: apenas a taxa de entrega é acertada.
	AcertadoEntregador   bool       `json:"acertadoEntregador" gorm:"default:false"`
	AcertadoEntregadorEm *time.Time `json:"acertadoEntregadorEm,omitempty"`

	Itens      []PedidoItem            `gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE" json:"itens"`
	Historico  []PedidoStatusHistorico `gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE" json:"historico,omitempty"`
	Transacoes []TransacaoPagamento    `gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE" json:"transacoes,omitempty"`
}

// PedidoItem congela o preço unitário no momento da compra.
type PedidoItem struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	PedidoID uint `gorm:"not null;index" json:"pedidoId"`

	Tipo  vinculo.Tipo `gorm:"size:16;not null" json:"tipo"`
	RefID uint         `gorm:"not null" json:"refId"`

	Descricao     string          `json:"descricao"`
	Quantidade    int             `json:"quantidade" gorm:"default:1"`
	PrecoUnitario decimal.Decimal `json:"precoUnitario" gorm:"type:numeric(12,2)"`
}

type PedidoStatusHistorico struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	PedidoID uint      `gorm:"not null;index" json:"pedidoId"`
	Status   string    `gorm:"size:32;not null" json:"status"`
	CriadoEm time.Time `gorm:"not null" json:"criadoEm"`
}

type TransacaoPagamento struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PedidoID uint   `gorm:"not null;index" json:"pedidoId"`
	Status   string `gorm:"size:32;not null;index" json:"status"`

	Valor   decimal.Decimal `json:"valor" gorm:"type:numeric(12,2)"`
	Gateway string          `json:"gateway" gorm:"size:32"`
	QRCode  string          `json:"qrCode"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
