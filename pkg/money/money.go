// Package money trata valores monetários em centavos.
package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// CentsFromReais converte um valor decimal em reais para centavos, arredondando ao centavo mais próximo.
func CentsFromReais(reais float64) int64 {
	return int64(math.Round(reais * 100))
}

// Reais converte centavos em reais
func Reais(cents int64) float64 {
	return float64(cents) / 100
}

// ApplyDiscount aplica um percentual de desconto (0 a 100) sobre um valor em centavos
func ApplyDiscount(cents int64, percent int) int64 {
	return int64(math.Round(float64(cents) * float64(100-percent) / 100))
}

// FormatBRL formata centavos como moeda brasileira, ex.: "R$ 1.234,50"
func FormatBRL(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + "R$ " + printer.Sprintf("%.2f", Reais(cents))
}
