package regiao

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RegiaoEntrega é uma faixa de distância com taxa de entrega. Faixas de uma
// mesma empresa não podem se sobrepor.
type RegiaoEntrega struct {
	gorm.Model
	EmpresaID uint            `json:"empresaId" gorm:"not null;index"`
	Nome      string          `json:"nome"`
	KmMin     decimal.Decimal `json:"kmMin" gorm:"type:numeric(8,2)"`
	KmMax     decimal.Decimal `json:"kmMax" gorm:"type:numeric(8,2)"`
	Taxa      decimal.Decimal `json:"taxa" gorm:"type:numeric(12,2)"`
	Ativa     bool            `json:"ativa" gorm:"default:true"`
}
