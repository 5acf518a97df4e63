package categoria

import "gorm.io/gorm"

// CategoriaDelivery agrupa produtos/receitas/combos no cardápio público,
// ordenada por posição.
type CategoriaDelivery struct {
	gorm.Model
	EmpresaID uint   `json:"empresaId" gorm:"not null;index"`
	Nome      string `json:"nome"`
	Slug      string `json:"slug" gorm:"index"`
	Imagem    string `json:"imagem"`
	Posicao   int    `json:"posicao" gorm:"default:0"`
	Ativa     bool   `json:"ativa" gorm:"default:true"`
}
