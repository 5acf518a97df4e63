package cardapio

import (
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/categoria"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/vinculo"
	"github.com/shopspring/decimal"
)

// ItemCardapioDTO é um item do cardápio público com nome e preço resolvidos.
type ItemCardapioDTO struct {
	Tipo  vinculo.Tipo    `json:"tipo"`
	RefID uint            `json:"refId"`
	Nome  string          `json:"nome"`
	Preco decimal.Decimal `json:"preco"`
}

type VitrineDTO struct {
	Titulo  string            `json:"titulo"`
	Posicao int               `json:"posicao"`
	Itens   []ItemCardapioDTO `json:"itens"`
}

// CardapioDTO é a resposta pública completa de uma empresa.
type CardapioDTO struct {
	Empresa    string                        `json:"empresa"`
	Slug       string                        `json:"slug"`
	Categorias []categoria.CategoriaDelivery `json:"categorias"`
	Vitrines   []VitrineDTO                  `json:"vitrines"`
}
