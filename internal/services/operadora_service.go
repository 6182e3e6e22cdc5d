package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/intuitive-care/operadoras-api/internal/logging"
	"github.com/intuitive-care/operadoras-api/internal/models"
	"github.com/intuitive-care/operadoras-api/internal/observability"
	"github.com/intuitive-care/operadoras-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OperadoraService answers operator and expense queries from PostgreSQL
type OperadoraService struct {
	db           *gorm.DB
	logger       *logging.SafeLogger
	queryTimeout time.Duration
}

// NewOperadoraService creates a new operator service instance. A zero
// queryTimeout leaves deadlines to the caller's context.
func NewOperadoraService(db *gorm.DB, logger *logging.SafeLogger, queryTimeout time.Duration) *OperadoraService {
	return &OperadoraService{
		db:           db,
		logger:       logger,
		queryTimeout: queryTimeout,
	}
}

// begin applies the query timeout and starts the metrics clock for op.
func (s *OperadoraService) begin(ctx context.Context, op string) (context.Context, func(error)) {
	cancel := func() {}
	if s.queryTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
	}
	start := time.Now()
	return ctx, func(err error) {
		cancel()
		observability.QueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		status := "success"
		if err != nil {
			status = "error"
		}
		observability.DatabaseOperations.WithLabelValues(op, status).Inc()
	}
}

func operadoraSearch(search string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		cnpjTerm := utils.NormalizeCNPJ(search)
		if cnpjTerm == "" {
			return db.Where("razao_social ILIKE ?", containsPattern(search))
		}
		return db.Where("razao_social ILIKE ? OR cnpj ILIKE ?", containsPattern(search), containsPattern(cnpjTerm))
	}
}

// ListOperadoras returns one page of operators, optionally filtered by a
// case-insensitive substring of razao_social or cnpj.
func (s *OperadoraService) ListOperadoras(ctx context.Context, params models.ListParams) (page models.OperadoraPage, err error) {
	ctx, done := s.begin(ctx, "list_operadoras")
	defer func() { done(err) }()

	countCtx, countSpan := utils.TraceDatabaseCount(ctx, "operadoras", "search")
	err = s.db.WithContext(countCtx).
		Model(&models.Operadora{}).
		Scopes(operadoraSearch(params.Search)).
		Count(&page.Total).Error
	if err != nil {
		utils.RecordErrorInSpan(countSpan, err, map[string]interface{}{"search": params.Search})
		countSpan.End()
		s.logger.Error("failed to count operadoras", zap.Error(err), zap.String("search", params.Search))
		return models.OperadoraPage{}, fmt.Errorf("count operadoras: %w", err)
	}
	countSpan.End()

	findCtx, findSpan := utils.TraceDatabaseFind(ctx, "operadoras", "search")
	defer findSpan.End()

	err = s.db.WithContext(findCtx).
		Scopes(operadoraSearch(params.Search)).
		Order("razao_social ASC").
		Order("registro_ans ASC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&page.Items).Error
	if err != nil {
		utils.RecordErrorInSpan(findSpan, err, map[string]interface{}{"page": params.Page, "limit": params.Limit})
		s.logger.Error("failed to list operadoras", zap.Error(err), zap.Int("page", params.Page))
		return models.OperadoraPage{}, fmt.Errorf("list operadoras: %w", err)
	}
	utils.AddSpanAttribute(findSpan, "db.rows", len(page.Items))

	return page, nil
}

// findByCNPJ resolves an operator by normalized CNPJ on an open context.
func (s *OperadoraService) findByCNPJ(ctx context.Context, cnpj string) (*models.Operadora, error) {
	normalized := utils.NormalizeCNPJ(cnpj)
	if normalized == "" {
		return nil, models.ErrOperadoraNotFound
	}

	ctx, span := utils.TraceDatabaseFind(ctx, "operadoras", "cnpj")
	defer span.End()

	var op models.Operadora
	err := s.db.WithContext(ctx).Where("cnpj = ?", normalized).Take(&op).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrOperadoraNotFound
	}
	if err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"cnpj": observability.MaskCNPJ(normalized)})
		return nil, fmt.Errorf("find operadora by cnpj: %w", err)
	}
	return &op, nil
}

// GetOperadoraByCNPJ looks an operator up by CNPJ, with or without punctuation.
func (s *OperadoraService) GetOperadoraByCNPJ(ctx context.Context, cnpj string) (op *models.Operadora, err error) {
	ctx, done := s.begin(ctx, "get_operadora")
	defer func() {
		if errors.Is(err, models.ErrOperadoraNotFound) {
			done(nil)
			return
		}
		done(err)
	}()

	op, err = s.findByCNPJ(ctx, cnpj)
	if err != nil && !errors.Is(err, models.ErrOperadoraNotFound) {
		s.logger.Error("failed to get operadora", zap.Error(err), zap.String("cnpj", observability.MaskCNPJ(cnpj)))
	}
	return op, err
}

func despesaSearch(registroANS, search string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("registro_ans = ?", registroANS)
		if search != "" {
			db = db.Where("descricao ILIKE ?", containsPattern(search))
		}
		return db
	}
}

// ListDespesas returns an operator's expenses, most recent period first.
// An unknown CNPJ yields an empty page rather than an error.
func (s *OperadoraService) ListDespesas(ctx context.Context, cnpj string, params models.ListParams) (page models.DespesaPage, err error) {
	ctx, done := s.begin(ctx, "list_despesas")
	defer func() { done(err) }()

	op, err := s.findByCNPJ(ctx, cnpj)
	if errors.Is(err, models.ErrOperadoraNotFound) {
		s.logger.Debug("despesas requested for unknown operadora", zap.String("cnpj", observability.MaskCNPJ(cnpj)))
		return models.DespesaPage{Items: []models.DespesaDetalhada{}}, nil
	}
	if err != nil {
		s.logger.Error("failed to resolve operadora for despesas", zap.Error(err))
		return models.DespesaPage{}, err
	}

	countCtx, countSpan := utils.TraceDatabaseCount(ctx, "despesas_detalhadas", "registro_ans")
	err = s.db.WithContext(countCtx).
		Model(&models.DespesaDetalhada{}).
		Scopes(despesaSearch(op.RegistroANS, params.Search)).
		Count(&page.Total).Error
	if err != nil {
		utils.RecordErrorInSpan(countSpan, err, map[string]interface{}{"registro_ans": op.RegistroANS})
		countSpan.End()
		s.logger.Error("failed to count despesas", zap.Error(err), zap.String("registro_ans", op.RegistroANS))
		return models.DespesaPage{}, fmt.Errorf("count despesas: %w", err)
	}
	countSpan.End()

	findCtx, findSpan := utils.TraceDatabaseFind(ctx, "despesas_detalhadas", "registro_ans")
	defer findSpan.End()

	err = s.db.WithContext(findCtx).
		Scopes(despesaSearch(op.RegistroANS, params.Search)).
		Order("ano DESC").
		Order("trimestre DESC").
		Order("id DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&page.Items).Error
	if err != nil {
		utils.RecordErrorInSpan(findSpan, err, map[string]interface{}{"registro_ans": op.RegistroANS})
		s.logger.Error("failed to list despesas", zap.Error(err), zap.String("registro_ans", op.RegistroANS))
		return models.DespesaPage{}, fmt.Errorf("list despesas: %w", err)
	}
	utils.AddSpanAttribute(findSpan, "db.rows", len(page.Items))

	return page, nil
}

// Ping checks that the database answers.
func (s *OperadoraService) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("gorm sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
