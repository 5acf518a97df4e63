package vinculo

import "fmt"

// Tipo é o discriminante dos vínculos polimórficos usados em todo o catálogo:
// linhas de receita, itens de combo, itens de complemento, itens de vitrine e
// itens de pedido apontam para exatamente um alvo, identificado por (Tipo, RefID).
type Tipo string

const (
	TipoIngrediente Tipo = "INGREDIENTE"
	TipoProduto     Tipo = "PRODUTO"
	TipoReceita     Tipo = "RECEITA"
	TipoCombo       Tipo = "COMBO"
)

// Valido informa se t é um dos discriminantes conhecidos.
func (t Tipo) Valido() bool {
	switch t {
	case TipoIngrediente, TipoProduto, TipoReceita, TipoCombo:
		return true
	}
	return false
}

// Alvo identifica o destino de um vínculo polimórfico.
type Alvo struct {
	Tipo  Tipo `json:"tipo"`
	RefID uint `json:"refId"`
}

func (a Alvo) String() string {
	return fmt.Sprintf("%s/%d", a.Tipo, a.RefID)
}
