package etl

import (
	"math"
	"sort"

	"github.com/intuitive-care/operadoras-api/internal/models"
	"github.com/shopspring/decimal"
)

type groupKey struct {
	razaoSocial string
	uf          string
}

// Aggregate groups records by (RazaoSocial, UF) and computes total, mean,
// sample standard deviation and count. Results are sorted by total, largest
// first. Monetary values are rounded to cents.
func Aggregate(records []Record) []models.DespesaAgregada {
	groups := make(map[groupKey][]decimal.Decimal)
	for _, r := range records {
		key := groupKey{razaoSocial: r.RazaoSocial, uf: r.UF}
		groups[key] = append(groups[key], r.Valor)
	}

	out := make([]models.DespesaAgregada, 0, len(groups))
	for key, values := range groups {
		total := decimal.Sum(decimal.Zero, values...)
		mean := total.Div(decimal.NewFromInt(int64(len(values))))
		out = append(out, models.DespesaAgregada{
			RazaoSocial:     key.razaoSocial,
			UF:              key.uf,
			ValorTotal:      total.Round(2),
			MediaTrimestral: mean.Round(2),
			DesvioPadrao:    sampleStdDev(values, mean).Round(2),
			QtdRegistros:    len(values),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if c := out[i].ValorTotal.Cmp(out[j].ValorTotal); c != 0 {
			return c > 0
		}
		if out[i].RazaoSocial != out[j].RazaoSocial {
			return out[i].RazaoSocial < out[j].RazaoSocial
		}
		return out[i].UF < out[j].UF
	})
	return out
}

// sampleStdDev is zero for fewer than two values
func sampleStdDev(values []decimal.Decimal, mean decimal.Decimal) decimal.Decimal {
	if len(values) < 2 {
		return decimal.Zero
	}
	sumSquares := decimal.Zero
	for _, v := range values {
		d := v.Sub(mean)
		sumSquares = sumSquares.Add(d.Mul(d))
	}
	variance := sumSquares.Div(decimal.NewFromInt(int64(len(values) - 1)))
	return decimal.NewFromFloat(math.Sqrt(variance.InexactFloat64()))
}
