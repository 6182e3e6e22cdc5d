package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/intuitive-care/operadoras-api/internal/models"
	"github.com/intuitive-care/operadoras-api/internal/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// TopN is the size of both rankings in the statistics summary
const TopN = 5

type totalsRow struct {
	Total decimal.Decimal `gorm:"column:total"`
	Count int64           `gorm:"column:count"`
}

type topOperadoraRow struct {
	RazaoSocial string          `gorm:"column:razao_social"`
	ValorTotal  decimal.Decimal `gorm:"column:valor_total"`
	RegistroANS *string         `gorm:"column:registro_ans"`
}

type topEstadoRow struct {
	UF    string          `gorm:"column:uf"`
	Total decimal.Decimal `gorm:"column:total"`
}

// mediaGeral divides total by count, treating an empty table as count 1.
func mediaGeral(total decimal.Decimal, count int64) decimal.Decimal {
	if count <= 0 {
		count = 1
	}
	return total.Div(decimal.NewFromInt(count))
}

// GetStatistics summarizes despesas_agregadas: grand total, mean per
// aggregated row, and the top operators and states by total. The three
// queries run concurrently on the pool.
func (s *OperadoraService) GetStatistics(ctx context.Context) (stats *models.Estatisticas, err error) {
	ctx, done := s.begin(ctx, "get_estatisticas")
	defer func() { done(err) }()

	ctx, span := utils.TraceBusinessLogic(ctx, "estatisticas")
	defer span.End()

	var (
		totals totalsRow
		topOps []topOperadoraRow
		topUFs []topEstadoRow
	)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := s.db.WithContext(gctx).
			Model(&models.DespesaAgregada{}).
			Select("COALESCE(SUM(valor_total), 0) AS total, COUNT(*) AS count").
			Scan(&totals).Error
		if err != nil {
			return fmt.Errorf("sum despesas agregadas: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		err := s.db.WithContext(gctx).
			Table("despesas_agregadas AS a").
			Select("a.razao_social, a.valor_total, o.registro_ans").
			Joins("LEFT JOIN operadoras AS o ON o.razao_social = a.razao_social").
			Order("a.valor_total DESC").
			Order("a.razao_social ASC").
			Limit(TopN).
			Scan(&topOps).Error
		if err != nil {
			return fmt.Errorf("rank operadoras: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		err := s.db.WithContext(gctx).
			Model(&models.DespesaAgregada{}).
			Select("uf, SUM(valor_total) AS total").
			Group("uf").
			Order("total DESC").
			Order("uf ASC").
			Limit(TopN).
			Scan(&topUFs).Error
		if err != nil {
			return fmt.Errorf("rank estados: %w", err)
		}
		return nil
	})

	if err = g.Wait(); err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		s.logger.Error("failed to compute estatisticas", zap.Error(err))
		return nil, err
	}

	stats = &models.Estatisticas{
		TotalDespesas:   totals.Total,
		MediaTrimestral: mediaGeral(totals.Total, totals.Count),
		TopOperadoras:   make([]models.TopOperadora, 0, len(topOps)),
		TopEstados:      make([]models.TopEstado, 0, len(topUFs)),
	}
	for _, row := range topOps {
		registro := models.RegistroANSIndisponivel
		if row.RegistroANS != nil && *row.RegistroANS != "" {
			registro = *row.RegistroANS
		}
		stats.TopOperadoras = append(stats.TopOperadoras, models.TopOperadora{
			RegistroANS: registro,
			RazaoSocial: row.RazaoSocial,
			ValorTotal:  row.ValorTotal,
		})
	}
	for _, row := range topUFs {
		stats.TopEstados = append(stats.TopEstados, models.TopEstado{UF: row.UF, Total: row.Total})
	}

	utils.AddSpanAttribute(span, "aggregated_rows", totals.Count)
	return stats, nil
}

// ComputeEstatisticas derives the statistics summary from aggregated rows
// held in memory. registroByRazao maps a legal name to every registration
// code carrying it, mirroring the outer join used on the database.
func ComputeEstatisticas(rows []models.DespesaAgregada, registroByRazao map[string][]string) *models.Estatisticas {
	total := decimal.Zero
	byUF := make(map[string]decimal.Decimal)
	for _, r := range rows {
		total = total.Add(r.ValorTotal)
		byUF[r.UF] = byUF[r.UF].Add(r.ValorTotal)
	}

	var ranked []models.TopOperadora
	for _, r := range rows {
		registros := registroByRazao[r.RazaoSocial]
		if len(registros) == 0 {
			registros = []string{models.RegistroANSIndisponivel}
		}
		for _, reg := range registros {
			ranked = append(ranked, models.TopOperadora{RegistroANS: reg, RazaoSocial: r.RazaoSocial, ValorTotal: r.ValorTotal})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if c := ranked[i].ValorTotal.Cmp(ranked[j].ValorTotal); c != 0 {
			return c > 0
		}
		return ranked[i].RazaoSocial < ranked[j].RazaoSocial
	})
	if len(ranked) > TopN {
		ranked = ranked[:TopN]
	}

	estados := make([]models.TopEstado, 0, len(byUF))
	for uf, sum := range byUF {
		estados = append(estados, models.TopEstado{UF: uf, Total: sum})
	}
	sort.Slice(estados, func(i, j int) bool {
		if c := estados[i].Total.Cmp(estados[j].Total); c != 0 {
			return c > 0
		}
		return estados[i].UF < estados[j].UF
	})
	if len(estados) > TopN {
		estados = estados[:TopN]
	}

	if ranked == nil {
		ranked = []models.TopOperadora{}
	}
	return &models.Estatisticas{
		TotalDespesas:   total,
		MediaTrimestral: mediaGeral(total, int64(len(rows))),
		TopOperadoras:   ranked,
		TopEstados:      estados,
	}
}
