package receita

import (
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/vinculo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CalcularCustoReceita resolve o custo total de uma receita: soma, linha a
// linha, quantidade × custo unitário. Ingredientes básicos usam o custo
// cadastrado; sub-receitas são resolvidas recursivamente; linhas de produto
// e combo não entram no custo (são precificadas em outro lugar).
//
// Receita inexistente ou vazia vale 0.00: o total está sempre disponível,
// nunca falha.
func CalcularCustoReceita(db *gorm.DB, receitaID uint) decimal.Decimal {
	return custoRecursivo(db, receitaID, map[uint]bool{})
}

func custoRecursivo(db *gorm.DB, receitaID uint, visitadas map[uint]bool) decimal.Decimal {
	// Ciclo: a receita já está na cadeia em resolução, contribui zero.
	if visitadas[receitaID] {
		return decimal.New(0, -2)
	}
	visitadas[receitaID] = true
	defer delete(visitadas, receitaID)

	var linhas []ReceitaIngrediente
	if err := db.Where("receita_id = ?", receitaID).Find(&linhas).Error; err != nil {
		return decimal.New(0, -2)
	}

	total := decimal.New(0, -2)
	for _, linha := range linhas {
		switch linha.Tipo {
		case vinculo.TipoIngrediente:
			var ing Ingrediente
			if err := db.First(&ing, linha.RefID).Error; err != nil {
				continue
			}
			total = total.Add(linha.Quantidade.Mul(ing.Custo))
		case vinculo.TipoReceita:
			sub := custoRecursivo(db, linha.RefID, visitadas)
			total = total.Add(linha.Quantidade.Mul(sub))
		}
	}
	return total
}
