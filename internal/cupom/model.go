package cupom

import (
	"time"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/empresa"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Parceiro monetiza cupons: um cupom pode ser atribuído a um parceiro.
type Parceiro struct {
	gorm.Model
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`
	Ativo    bool   `json:"ativo" gorm:"default:true"`
}

// CupomDesconto aplica desconto percentual ou fixo ao pedido dentro da
// janela de validade, para as empresas vinculadas.
type CupomDesconto struct {
	gorm.Model
	Codigo string `json:"codigo" gorm:"index;size:32"`

	DescontoPercentual *decimal.Decimal `json:"descontoPercentual,omitempty" gorm:"type:numeric(5,2)"`
	DescontoFixo       *decimal.Decimal `json:"descontoFixo,omitempty" gorm:"type:numeric(12,2)"`

	ValidoDe  time.Time `json:"validoDe"`
	ValidoAte time.Time `json:"validoAte"`
	Ativo     bool      `json:"ativo" gorm:"default:true"`

	ParceiroID *uint     `json:"parceiroId,omitempty"`
	Parceiro   *Parceiro `gorm:"foreignKey:ParceiroID" json:"parceiro,omitempty"`

	Empresas []empresa.Empresa `gorm:"many2many:cupom_empresas" json:"empresas,omitempty"`
}
