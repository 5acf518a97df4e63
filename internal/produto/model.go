package produto

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Produto é o cadastro global de produto, identificado pelo código de barras.
type Produto struct {
	gorm.Model
	CodBarras string `json:"codBarras" gorm:"uniqueIndex;size:64"`
	Descricao string `json:"descricao"`
	Imagem    string `json:"imagem"`
	Ativo     bool   `json:"ativo" gorm:"not null;default:false"`

	Empresas []ProdutoEmp `gorm:"foreignKey:ProdutoID" json:"empresas,omitempty"`
}

// ProdutoEmp é o vínculo produto×empresa, com chave composta. É a única
// autoridade de preço/custo de produto: complementos e adicionais leem daqui
// quando não há override por vínculo.
type ProdutoEmp struct {
	EmpresaID uint `json:"empresaId" gorm:"primaryKey;autoIncrement:false"`
	ProdutoID uint `json:"produtoId" gorm:"primaryKey;autoIncrement:false"`

	PrecoVenda     decimal.Decimal `json:"precoVenda" gorm:"type:numeric(12,2)"`
	Custo          decimal.Decimal `json:"custo" gorm:"type:numeric(12,4)"`
	Disponivel     bool            `json:"disponivel" gorm:"default:true"`
	ExibirDelivery bool            `json:"exibirDelivery" gorm:"default:true"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
