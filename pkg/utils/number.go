package utils

import (
	"fmt"
	"math"
	"strings"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// FormatPercentBR formata um percentual no padrão brasileiro,
// com uma casa decimal e vírgula como separador (ex: "12,5%")
func FormatPercentBR(f float64) string {
	return strings.ReplaceAll(fmt.Sprintf("%.1f", f), ".", ",") + "%"
}

// FormatCurrencyBR formata um valor monetário no padrão brasileiro,
// arredondado e com ponto como separador de milhar (ex: "R$ 10.500")
func FormatCurrencyBR(f float64) string {
	rounded := int64(math.Round(f))

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	digits := fmt.Sprintf("%d", rounded)
	var grouped strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(d)
	}

	if negative {
		return "R$ -" + grouped.String()
	}
	return "R$ " + grouped.String()
}
