package observability

import (
	"github.com/intuitive-care/operadoras-api/internal/logging"
	"github.com/intuitive-care/operadoras-api/internal/utils"
)

// Logger returns the global safe logger instance
func Logger() *logging.SafeLogger {
	return logging.Logger
}

// MaskCNPJ keeps the root of a CNPJ (first eight digits, which identify the
// company) and hides the branch and check digits.
func MaskCNPJ(cnpj string) string {
	digits := utils.OnlyDigits(cnpj)
	if len(digits) != 14 {
		return "**.***.***/****-**"
	}
	return digits[:2] + "." + digits[2:5] + "." + digits[5:8] + "/****-**"
}
