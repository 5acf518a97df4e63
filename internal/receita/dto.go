package receita

import "github.com/shopspring/decimal"

// ReceitaDTO é a receita com o custo total recalculado na leitura.
type ReceitaDTO struct {
	Receita
	CustoTotal decimal.Decimal `json:"custoTotal"`
}

// MontarReceitaDTO acopla o custo derivado à receita.
func MontarReceitaDTO(rec Receita, custo decimal.Decimal) ReceitaDTO {
	return ReceitaDTO{Receita: rec, CustoTotal: custo}
}
