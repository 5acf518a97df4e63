package complemento

import (
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/vinculo"
	"github.com/shopspring/decimal"
)

// ConfigVinculo é a forma detalhada da vinculação: flags explícitas por
// complemento.
type ConfigVinculo struct {
	ComplementoID uint `json:"complementoId"`
	Obrigatorio   bool `json:"obrigatorio"`
	Quantitativo  bool `json:"quantitativo"`
	MinimoItens   int  `json:"minimoItens"`
	MaximoItens   int  `json:"maximoItens"`
}

// ItemResolvidoDTO é um item de complemento com o preço efetivo resolvido.
type ItemResolvidoDTO struct {
	ID           uint            `json:"id"`
	Tipo         vinculo.Tipo    `json:"tipo"`
	RefID        uint            `json:"refId"`
	PrecoEfetivo decimal.Decimal `json:"precoEfetivo"`
}

// ComplementoResolvidoDTO é o complemento vinculado a um dono, com a
// configuração do vínculo e os itens precificados.
type ComplementoResolvidoDTO struct {
	ComplementoID uint               `json:"complementoId"`
	Nome          string             `json:"nome"`
	Obrigatorio   bool               `json:"obrigatorio"`
	Quantitativo  bool               `json:"quantitativo"`
	MinimoItens   int                `json:"minimoItens"`
	MaximoItens   int                `json:"maximoItens"`
	Itens         []ItemResolvidoDTO `json:"itens"`
}
