// Package ruc valida el Registro Único de Contribuyentes peruano (SUNAT):
// 11 dígitos, los dos primeros indican el tipo de contribuyente y el último
// es un dígito verificador módulo 11.
package ruc

import (
	"fmt"
	"unicode"
)

// pesos para el cálculo del dígito verificador del RUC (módulo 11, SUNAT).
// Se aplican a los 10 primeros dígitos, de izquierda a derecha.
var rucWeights = [10]int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}

// prefijos de tipo de contribuyente válidos.
var validPrefixes = map[string]bool{
	"10": true, // persona natural
	"15": true, // sucesión indivisa
	"17": true, // régimen especial
	"20": true, // persona jurídica
}

// Validate valida formato y dígito verificador del RUC. Acepta el número con o
// sin separadores ("20-12345678-1" o "20123456781").
func Validate(ruc string) error {
	digits := extractDigits(ruc)
	if len(digits) != 11 {
		return fmt.Errorf("ruc: debe tener 11 dígitos, se encontraron %d", len(digits))
	}
	prefix := string(digits[:2])
	if !validPrefixes[prefix] {
		return fmt.Errorf("ruc: prefijo de tipo de contribuyente inválido: %s", prefix)
	}
	expected := checkDigit(digits[:10])
	if digits[10] != expected {
		return fmt.Errorf("ruc: dígito verificador inválido: esperado %c, recibido %c", expected, digits[10])
	}
	return nil
}

// ComputeCheckDigit calcula el dígito verificador para los 10 primeros dígitos.
func ComputeCheckDigit(ruc string) (byte, error) {
	digits := extractDigits(ruc)
	if len(digits) < 10 {
		return 0, fmt.Errorf("ruc: se requieren al menos 10 dígitos, se encontraron %d", len(digits))
	}
	return checkDigit(digits[:10]), nil
}

func checkDigit(base []byte) byte {
	var sum int
	for i, d := range base {
		sum += int(d-'0') * rucWeights[i]
	}
	switch r := 11 - sum%11; r {
	case 10:
		return '0'
	case 11:
		return '1'
	default:
		return byte('0' + r)
	}
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
