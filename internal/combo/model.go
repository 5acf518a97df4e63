package combo

import (
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/vinculo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Combo é um pacote vendido por preço fechado, organizado em seções
// tituladas com limites de escolha.
type Combo struct {
	gorm.Model
	EmpresaID  uint            `json:"empresaId" gorm:"not null;index"`
	Nome       string          `json:"nome"`
	Descricao  string          `json:"descricao"`
	Imagem     string          `json:"imagem"`
	PrecoTotal decimal.Decimal `json:"precoTotal" gorm:"type:numeric(12,2)"`
	Disponivel bool            `json:"disponivel" gorm:"default:true"`

	Secoes []ComboSecao `gorm:"foreignKey:ComboID;constraint:OnDelete:CASCADE" json:"secoes"`
}

// ComboSecao agrupa itens sob um título com limites mínimo/máximo de escolha.
type ComboSecao struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	ComboID uint `gorm:"not null;index" json:"comboId"`

	Titulo      string `json:"titulo"`
	MinimoItens int    `json:"minimoItens" gorm:"default:0"`
	MaximoItens int    `json:"maximoItens" gorm:"default:0"`
	Posicao     int    `json:"posicao" gorm:"default:0"`

	Itens []ComboItem `gorm:"foreignKey:SecaoID;constraint:OnDelete:CASCADE" json:"itens"`
}

// ComboItem aponta para um produto ou uma receita via (Tipo, RefID).
type ComboItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SecaoID uint `gorm:"not null;index" json:"secaoId"`

	Tipo  vinculo.Tipo `gorm:"size:16;not null" json:"tipo"`
	RefID uint         `gorm:"not null" json:"refId"`

	Quantidade int `json:"quantidade" gorm:"default:1"`
	Posicao    int `json:"posicao" gorm:"default:0"`
}
