package models

import "errors"

// Error constants for operator queries
var (
	ErrOperadoraNotFound = errors.New("operadora não encontrada")
	ErrInvalidPage       = errors.New("page must be a positive integer")
	ErrInvalidLimit      = errors.New("limit must be between 1 and 100")
)
