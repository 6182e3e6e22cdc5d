package utils

import (
	"regexp"
	"strings"
)

var nonDigit = regexp.MustCompile(`\D`)

var cnpjSeparators = strings.NewReplacer(".", "", "/", "", "-", "")

// NormalizeCNPJ strips the punctuation of a formatted CNPJ ("." "/" "-").
// Other characters are kept, so a malformed identifier stays malformed and
// simply fails to match a stored one.
func NormalizeCNPJ(cnpj string) string {
	return cnpjSeparators.Replace(strings.TrimSpace(cnpj))
}

// OnlyDigits removes every non-digit character
func OnlyDigits(s string) string {
	return nonDigit.ReplaceAllString(s, "")
}

// ValidateCNPJ validates a CNPJ number
// It checks if the CNPJ has 14 digits and validates the check digits
func ValidateCNPJ(cnpj string) bool {
	cnpj = OnlyDigits(cnpj)
	if len(cnpj) != 14 {
		return false
	}

	// Repeated digits pass the checksum but are never issued
	if strings.Count(cnpj, cnpj[:1]) == len(cnpj) {
		return false
	}

	first := cnpjCheckDigit(cnpj[:12], []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2})
	if int(cnpj[12]-'0') != first {
		return false
	}
	second := cnpjCheckDigit(cnpj[:13], []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2})
	return int(cnpj[13]-'0') == second
}

func cnpjCheckDigit(digits string, weights []int) int {
	sum := 0
	for i := range weights {
		sum += int(digits[i]-'0') * weights[i]
	}
	remainder := sum % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}
