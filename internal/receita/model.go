package receita

import (
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/vinculo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Receita é um item composto vendável. O custo total nunca é persistido:
// toda leitura recalcula percorrendo o grafo de ingredientes.
type Receita struct {
	gorm.Model
	EmpresaID  uint            `json:"empresaId" gorm:"not null;index"`
	Nome       string          `json:"nome"`
	Descricao  string          `json:"descricao"`
	Imagem     string          `json:"imagem"`
	PrecoVenda decimal.Decimal `json:"precoVenda" gorm:"type:numeric(12,2)"`
	Disponivel bool            `json:"disponivel" gorm:"default:true"`

	Ingredientes []ReceitaIngrediente `gorm:"foreignKey:ReceitaID;constraint:OnDelete:CASCADE" json:"ingredientes"`
}

// ReceitaIngrediente é uma linha da receita apontando para exatamente um
// alvo (ingrediente básico, sub-receita, produto ou combo), identificado
// pelo par discriminante (Tipo, RefID).
type ReceitaIngrediente struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ReceitaID uint `gorm:"not null;index" json:"receitaId"`

	Tipo  vinculo.Tipo `gorm:"size:16;not null" json:"tipo"`
	RefID uint         `gorm:"not null" json:"refId"`

	Quantidade decimal.Decimal `json:"quantidade" gorm:"type:numeric(12,4)"`
}

// Ingrediente é o insumo básico portador de custo.
type Ingrediente struct {
	gorm.Model
	EmpresaID uint            `json:"empresaId" gorm:"not null;index"`
	Nome      string          `json:"nome"`
	Unidade   string          `json:"unidade" gorm:"size:16"`
	Custo     decimal.Decimal `json:"custo" gorm:"type:numeric(12,4)"`
}
