package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/intuitive-care/operadoras-api/internal/logging"
	"github.com/intuitive-care/operadoras-api/internal/models"
	"github.com/intuitive-care/operadoras-api/internal/observability"
	"github.com/intuitive-care/operadoras-api/internal/services"
	"github.com/intuitive-care/operadoras-api/internal/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// OperadoraHandlers serves the read-only operator, expense and statistics endpoints
type OperadoraHandlers struct {
	port   services.QueryPort
	logger *logging.SafeLogger
}

// NewOperadoraHandlers creates a new operator handlers instance
func NewOperadoraHandlers(port services.QueryPort, logger *logging.SafeLogger) *OperadoraHandlers {
	return &OperadoraHandlers{
		port:   port,
		logger: logger,
	}
}

// parseListParams reads page, limit and search with tracing. On failure it
// answers 400 and returns false.
func (h *OperadoraHandlers) parseListParams(c *gin.Context) (models.ListParams, bool) {
	_, span := utils.TraceInputParsing(c.Request.Context(), "pagination_parameters")
	defer span.End()

	params, err := services.NewListParams(c.Query("page"), c.Query("limit"), c.Query("search"))
	if err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{
			"page_param":  c.Query("page"),
			"limit_param": c.Query("limit"),
		})
		h.logger.Debug("invalid pagination parameters", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return models.ListParams{}, false
	}

	utils.AddSpanAttribute(span, "page", params.Page)
	utils.AddSpanAttribute(span, "limit", params.Limit)
	if params.Search != "" {
		utils.AddSpanAttribute(span, "search", params.Search)
	}
	return params, true
}

// ListOperadoras godoc
// @Summary Listar operadoras
// @Description Retorna a lista paginada de operadoras ativas, ordenada por razão social. A busca compara a razão social e o CNPJ sem diferenciar maiúsculas de minúsculas.
// @Tags operadoras
// @Produce json
// @Param page query int false "Número da página (padrão: 1)" minimum(1)
// @Param limit query int false "Itens por página (padrão: 10, máximo: 100)" minimum(1) maximum(100)
// @Param search query string false "Trecho da razão social ou do CNPJ"
// @Success 200 {object} models.PaginatedOperadoras "Lista paginada de operadoras"
// @Failure 400 {object} ErrorResponse "Parâmetros de paginação inválidos"
// @Failure 429 {object} ErrorResponse "Limite de requisições excedido"
// @Failure 500 {object} ErrorResponse "Erro interno do servidor"
// @Router /operadoras [get]
func (h *OperadoraHandlers) ListOperadoras(c *gin.Context) {
	startTime := time.Now()
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ListOperadoras")
	defer span.End()

	span.SetAttributes(
		attribute.String("operation", "list_operadoras"),
		attribute.String("service", "operadoras"),
	)
	c.Request = c.Request.WithContext(ctx)

	params, ok := h.parseListParams(c)
	if !ok {
		return
	}

	page, err := h.port.ListOperadoras(ctx, params)
	if err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"operation": "list_operadoras"})
		h.logger.Error("failed to list operadoras", zap.Error(err), zap.Int("page", params.Page))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgInternalError})
		return
	}

	_, responseSpan := utils.TraceResponseSerialization(ctx, "paginated_operadoras")
	c.JSON(http.StatusOK, models.NewPaginatedOperadoras(page, params))
	responseSpan.End()

	h.logger.Debug("ListOperadoras completed",
		zap.Int("results_count", len(page.Items)),
		zap.Int64("total_count", page.Total),
		zap.Duration("total_duration", time.Since(startTime)))
}

// GetOperadora godoc
// @Summary Detalhar operadora
// @Description Busca uma operadora pelo CNPJ, com ou sem pontuação.
// @Tags operadoras
// @Produce json
// @Param cnpj path string true "CNPJ da operadora (ex: 29309127000179 ou 29.309.127/0001-79)"
// @Success 200 {object} models.Operadora "Operadora encontrada"
// @Failure 404 {object} ErrorResponse "Operadora não encontrada"
// @Failure 429 {object} ErrorResponse "Limite de requisições excedido"
// @Failure 500 {object} ErrorResponse "Erro interno do servidor"
// @Router /operadoras/{cnpj} [get]
func (h *OperadoraHandlers) GetOperadora(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetOperadora")
	defer span.End()

	cnpj := c.Param("cnpj")
	span.SetAttributes(
		attribute.String("operation", "get_operadora"),
		attribute.String("cnpj", observability.MaskCNPJ(cnpj)),
	)

	_, validationSpan := utils.TraceInputValidation(ctx, "cnpj_check_digits", "cnpj")
	utils.AddSpanAttribute(validationSpan, "cnpj_valid", utils.ValidateCNPJ(cnpj))
	validationSpan.End()

	op, err := h.port.GetOperadoraByCNPJ(ctx, cnpj)
	if errors.Is(err, models.ErrOperadoraNotFound) {
		utils.AddSpanAttribute(span, "found", false)
		c.JSON(http.StatusNotFound, ErrorResponse{Error: msgOperadoraNotFound})
		return
	}
	if err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"operation": "get_operadora"})
		h.logger.Error("failed to get operadora", zap.Error(err), zap.String("cnpj", observability.MaskCNPJ(cnpj)))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgInternalError})
		return
	}

	utils.AddSpanAttribute(span, "found", true)
	c.JSON(http.StatusOK, op)
}

// ListDespesas godoc
// @Summary Listar despesas da operadora
// @Description Retorna as despesas da operadora, do trimestre mais recente para o mais antigo. CNPJ desconhecido resulta em lista vazia com total 0. O parâmetro search filtra pela descrição da despesa, sem diferenciar maiúsculas de minúsculas, e o total passa a contar apenas as despesas filtradas.
// @Tags operadoras
// @Produce json
// @Param cnpj path string true "CNPJ da operadora"
// @Param page query int false "Número da página (padrão: 1)" minimum(1)
// @Param limit query int false "Itens por página (padrão: 10, máximo: 100)" minimum(1) maximum(100)
// @Param search query string false "Trecho da descrição da despesa"
// @Success 200 {object} models.PaginatedDespesas "Lista paginada de despesas"
// @Failure 400 {object} ErrorResponse "Parâmetros de paginação inválidos"
// @Failure 429 {object} ErrorResponse "Limite de requisições excedido"
// @Failure 500 {object} ErrorResponse "Erro interno do servidor"
// @Router /operadoras/{cnpj}/despesas [get]
func (h *OperadoraHandlers) ListDespesas(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ListDespesas")
	defer span.End()

	cnpj := c.Param("cnpj")
	span.SetAttributes(
		attribute.String("operation", "list_despesas"),
		attribute.String("cnpj", observability.MaskCNPJ(cnpj)),
	)
	c.Request = c.Request.WithContext(ctx)

	params, ok := h.parseListParams(c)
	if !ok {
		return
	}

	page, err := h.port.ListDespesas(ctx, cnpj, params)
	if err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"operation": "list_despesas"})
		h.logger.Error("failed to list despesas", zap.Error(err), zap.String("cnpj", observability.MaskCNPJ(cnpj)))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgInternalError})
		return
	}

	utils.AddSpanAttribute(span, "results_count", len(page.Items))
	c.JSON(http.StatusOK, models.NewPaginatedDespesas(page, params))
}

// GetEstatisticas godoc
// @Summary Estatísticas de despesas
// @Description Total e média das despesas agregadas, com as 5 operadoras e os 5 estados de maior despesa.
// @Tags estatisticas
// @Produce json
// @Success 200 {object} models.EstatisticasResponse "Resumo estatístico"
// @Failure 429 {object} ErrorResponse "Limite de requisições excedido"
// @Failure 500 {object} ErrorResponse "Erro interno do servidor"
// @Router /estatisticas [get]
func (h *OperadoraHandlers) GetEstatisticas(c *gin.Context) {
	startTime := time.Now()
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetEstatisticas")
	defer span.End()

	span.SetAttributes(attribute.String("operation", "get_estatisticas"))

	stats, err := h.port.GetStatistics(ctx)
	if err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"operation": "get_estatisticas"})
		h.logger.Error("failed to compute estatisticas", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgInternalError})
		return
	}

	c.JSON(http.StatusOK, models.NewEstatisticasResponse(*stats))
	utils.AddTimingToSpan(span, startTime)
}
