package handlers

import "time"

// ErrorResponse is the body of every non-2xx answer
type ErrorResponse struct {
	Error string `json:"error" example:"Operadora não encontrada"`
}

// HealthResponse reports the API status and the state of each dependency
type HealthResponse struct {
	Status    string            `json:"status" example:"healthy"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// MsgRateLimitExceeded is the error sent with 429 responses
const MsgRateLimitExceeded = "Limite de requisições excedido"

const (
	msgOperadoraNotFound = "Operadora não encontrada"
	msgInternalError     = "Erro interno ao consultar os dados"
)
