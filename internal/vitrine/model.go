package vitrine

import (
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/vinculo"
	"gorm.io/gorm"
)

// Vitrine é uma prateleira curada do cardápio público, com itens ordenados.
type Vitrine struct {
	gorm.Model
	EmpresaID uint   `json:"empresaId" gorm:"not null;index"`
	Titulo    string `json:"titulo"`
	Posicao   int    `json:"posicao" gorm:"default:0"`
	Ativa     bool   `json:"ativa" gorm:"default:true"`

	Itens []VitrineItem `gorm:"foreignKey:VitrineID;constraint:OnDelete:CASCADE" json:"itens"`
}

// VitrineItem aponta para um produto, receita ou combo via (Tipo, RefID).
type VitrineItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	VitrineID uint `gorm:"not null;index" json:"vitrineId"`

	Tipo  vinculo.Tipo `gorm:"size:16;not null" json:"tipo"`
	RefID uint         `gorm:"not null" json:"refId"`

	Posicao int `json:"posicao" gorm:"default:0"`
}
