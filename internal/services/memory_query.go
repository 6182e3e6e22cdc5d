package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/intuitive-care/operadoras-api/internal/models"
	"github.com/intuitive-care/operadoras-api/internal/utils"
)

// MemoryQueryService implements QueryPort over in-process slices. It follows
// the same ordering, search and not-found rules as OperadoraService.
type MemoryQueryService struct {
	mu         sync.RWMutex
	operadoras []models.Operadora
	despesas   []models.DespesaDetalhada
	agregadas  []models.DespesaAgregada
	pingErr    error
}

// NewMemoryQueryService copies the given rows into a new in-memory store.
func NewMemoryQueryService(operadoras []models.Operadora, despesas []models.DespesaDetalhada, agregadas []models.DespesaAgregada) *MemoryQueryService {
	m := &MemoryQueryService{}
	m.Replace(operadoras, despesas, agregadas)
	return m
}

// Replace swaps the whole dataset atomically, the way a bulk load would.
func (m *MemoryQueryService) Replace(operadoras []models.Operadora, despesas []models.DespesaDetalhada, agregadas []models.DespesaAgregada) {
	ops := append([]models.Operadora(nil), operadoras...)
	for i := range ops {
		ops[i].CNPJ = utils.NormalizeCNPJ(ops[i].CNPJ)
	}
	desp := append([]models.DespesaDetalhada(nil), despesas...)
	agg := append([]models.DespesaAgregada(nil), agregadas...)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.operadoras, m.despesas, m.agregadas = ops, desp, agg
}

// SetPingError makes Ping fail with err; nil restores health.
func (m *MemoryQueryService) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingErr = err
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func window[T any](items []T, params models.ListParams) []T {
	start := params.Offset()
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := start + params.Limit
	if end > len(items) {
		end = len(items)
	}
	return append([]T(nil), items[start:end]...)
}

func (m *MemoryQueryService) ListOperadoras(ctx context.Context, params models.ListParams) (models.OperadoraPage, error) {
	if err := ctx.Err(); err != nil {
		return models.OperadoraPage{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	cnpjTerm := utils.NormalizeCNPJ(params.Search)
	matched := make([]models.Operadora, 0, len(m.operadoras))
	for _, op := range m.operadoras {
		if params.Search == "" ||
			containsFold(op.RazaoSocial, params.Search) ||
			(cnpjTerm != "" && containsFold(op.CNPJ, cnpjTerm)) {
			matched = append(matched, op)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].RazaoSocial != matched[j].RazaoSocial {
			return matched[i].RazaoSocial < matched[j].RazaoSocial
		}
		return matched[i].RegistroANS < matched[j].RegistroANS
	})

	return models.OperadoraPage{Items: window(matched, params), Total: int64(len(matched))}, nil
}

func (m *MemoryQueryService) findByCNPJ(cnpj string) (models.Operadora, bool) {
	normalized := utils.NormalizeCNPJ(cnpj)
	if normalized == "" {
		return models.Operadora{}, false
	}
	for _, op := range m.operadoras {
		if op.CNPJ == normalized {
			return op, true
		}
	}
	return models.Operadora{}, false
}

func (m *MemoryQueryService) GetOperadoraByCNPJ(ctx context.Context, cnpj string) (*models.Operadora, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	op, ok := m.findByCNPJ(cnpj)
	if !ok {
		return nil, models.ErrOperadoraNotFound
	}
	return &op, nil
}

func (m *MemoryQueryService) ListDespesas(ctx context.Context, cnpj string, params models.ListParams) (models.DespesaPage, error) {
	if err := ctx.Err(); err != nil {
		return models.DespesaPage{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	op, ok := m.findByCNPJ(cnpj)
	if !ok {
		return models.DespesaPage{Items: []models.DespesaDetalhada{}}, nil
	}

	matched := make([]models.DespesaDetalhada, 0)
	for _, d := range m.despesas {
		if d.RegistroANS != op.RegistroANS {
			continue
		}
		if params.Search != "" && !containsFold(d.Descricao, params.Search) {
			continue
		}
		matched = append(matched, d)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.Ano != b.Ano {
			return a.Ano > b.Ano
		}
		if a.Trimestre != b.Trimestre {
			return a.Trimestre > b.Trimestre
		}
		return a.ID > b.ID
	})

	return models.DespesaPage{Items: window(matched, params), Total: int64(len(matched))}, nil
}

func (m *MemoryQueryService) GetStatistics(ctx context.Context) (*models.Estatisticas, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	registros := make(map[string][]string, len(m.operadoras))
	for _, op := range m.operadoras {
		registros[op.RazaoSocial] = append(registros[op.RazaoSocial], op.RegistroANS)
	}
	return ComputeEstatisticas(m.agregadas, registros), nil
}

func (m *MemoryQueryService) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingErr
}
