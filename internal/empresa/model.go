package empresa

import "gorm.io/gorm"

// Empresa é o tenant da plataforma: dona de categorias, receitas, combos,
// complementos, vitrines e pedidos.
type Empresa struct {
	gorm.Model
	Nome       string `json:"nome"`
	CNPJ       string `json:"cnpj" gorm:"unique"`
	Slug       string `json:"slug" gorm:"uniqueIndex"`
	Telefone   string `json:"telefone"`
	Endereco   string `json:"endereco"`
	SuperToken string `json:"-" gorm:"uniqueIndex"`
	Ativa      bool   `json:"ativa" gorm:"default:true"`
}
