package utils

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

var acentos = map[rune]rune{
	'á': 'a', 'à': 'a', 'ã': 'a', 'â': 'a', 'ä': 'a',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'í': 'i', 'ì': 'i', 'î': 'i', 'ï': 'i',
	'ó': 'o', 'ò': 'o', 'õ': 'o', 'ô': 'o', 'ö': 'o',
	'ú': 'u', 'ù': 'u', 'û': 'u', 'ü': 'u',
	'ç': 'c', 'ñ': 'n',
}

// Slugify normaliza um nome para uso em URL: minúsculas, sem acento,
// palavras separadas por hífen.
func Slugify(nome string) string {
	var b strings.Builder
	anterior := '-'
	for _, r := range strings.ToLower(strings.TrimSpace(nome)) {
		if sub, ok := acentos[r]; ok {
			r = sub
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			r = '-'
		}
		if r == '-' && anterior == '-' {
			continue
		}
		b.WriteRune(r)
		anterior = r
	}
	return strings.Trim(b.String(), "-")
}

// SlugDesambiguado gera uma variação do slug para nova tentativa após
// violação de unicidade no banco.
func SlugDesambiguado(slug string) string {
	return fmt.Sprintf("%s-%d", slug, time.Now().UnixNano()%100000)
}
