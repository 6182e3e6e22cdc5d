package services

import (
	"context"

	"github.com/intuitive-care/operadoras-api/internal/models"
)

// QueryPort is the read contract over operators and their expenses.
// OperadoraService implements it on PostgreSQL and MemoryQueryService keeps
// everything in process.
type QueryPort interface {
	// ListOperadoras returns one page of operators ordered by razao_social.
	ListOperadoras(ctx context.Context, params models.ListParams) (models.OperadoraPage, error)
	// GetOperadoraByCNPJ returns models.ErrOperadoraNotFound when nothing matches.
	GetOperadoraByCNPJ(ctx context.Context, cnpj string) (*models.Operadora, error)
	// ListDespesas returns an empty page, not an error, for an unknown CNPJ.
	ListDespesas(ctx context.Context, cnpj string, params models.ListParams) (models.DespesaPage, error)
	GetStatistics(ctx context.Context) (*models.Estatisticas, error)
	Ping(ctx context.Context) error
}

var (
	_ QueryPort = (*OperadoraService)(nil)
	_ QueryPort = (*MemoryQueryService)(nil)
)
