package chatbot

import (
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/vinculo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Etapas do fluxo de venda conversacional.
const (
	EtapaBoasVindas   = "BOAS_VINDAS"
	EtapaBuscaProduto = "BUSCA_PRODUTO"
	EtapaEndereco     = "ENDERECO"
	EtapaPagamento    = "PAGAMENTO"
	EtapaConfirmacao  = "CONFIRMACAO"
)

// Conversa é o estado persistido de uma venda por WhatsApp, um registro por
// telefone por empresa.
type Conversa struct {
	gorm.Model
	EmpresaID uint   `json:"empresaId" gorm:"not null;index"`
	Telefone  string `json:"telefone" gorm:"size:32;index"`
	Etapa     string `json:"etapa" gorm:"size:32"`

	Carrinho []ItemCarrinho `gorm:"type:jsonb;serializer:json" json:"carrinho"`
	Endereco string         `json:"endereco"`
}

// ItemCarrinho guarda o item escolhido com o preço resolvido no momento da
// conversa.
type ItemCarrinho struct {
	Tipo       vinculo.Tipo    `json:"tipo"`
	RefID      uint            `json:"refId"`
	Nome       string          `json:"nome"`
	Preco      decimal.Decimal `json:"preco"`
	Quantidade int             `json:"quantidade"`
}
