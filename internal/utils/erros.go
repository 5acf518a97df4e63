package utils

import "strings"

// Heurísticas sobre o texto de erro do driver para classificar violações de
// integridade. O texto varia entre postgres e sqlite, então a checagem é por
// substring e não por código.

// EViolacaoUnicidade informa se err veio de um índice/constraint único.
func EViolacaoUnicidade(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique failed")
}

// EViolacaoChaveEstrangeira informa se err veio de uma FK.
func EViolacaoChaveEstrangeira(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key")
}

// MensagemViolacao escolhe uma mensagem mais específica quando o texto do
// erro cita a coluna/entidade conhecida.
func MensagemViolacao(err error, padrao string) string {
	if err == nil {
		return padrao
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "slug"):
		return "slug já em uso"
	case strings.Contains(msg, "cnpj"):
		return "CNPJ já cadastrado"
	case strings.Contains(msg, "cod_barras"):
		return "código de barras já cadastrado"
	}
	return padrao
}
