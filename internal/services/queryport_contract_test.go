package services

import (
	"context"
	"errors"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/intuitive-care/operadoras-api/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var loadedAt = time.Date(2025, 2, 1, 3, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedOperadoras() []models.Operadora {
	return []models.Operadora{
		{RegistroANS: "100003", CNPJ: "33000167000101", RazaoSocial: "GAMA ODONTO", Modalidade: "Odontologia de Grupo", UF: "MG"},
		{RegistroANS: "100001", CNPJ: "11222333000181", RazaoSocial: "ALFA SAUDE LTDA", Modalidade: "Medicina de Grupo", UF: "SP"},
		{RegistroANS: "100004", CNPJ: "92693118000160", RazaoSocial: "DELTA_100% COOPERATIVA", Modalidade: "Cooperativa Médica", UF: "RS"},
		{RegistroANS: "100002", CNPJ: "29309127000179", RazaoSocial: "BETA ASSISTENCIA MEDICA SA", Modalidade: "Medicina de Grupo", UF: "RJ"},
	}
}

func seedDespesas() []models.DespesaDetalhada {
	return []models.DespesaDetalhada{
		{ID: 1, RegistroANS: "100001", Ano: 2023, Trimestre: 4, Valor: dec("100.00"), Descricao: "EVENTOS CONHECIDOS", DataCarga: loadedAt},
		{ID: 2, RegistroANS: "100001", Ano: 2024, Trimestre: 1, Valor: dec("200.50"), Descricao: "EVENTOS CONHECIDOS", DataCarga: loadedAt},
		{ID: 3, RegistroANS: "100001", Ano: 2024, Trimestre: 3, Valor: dec("300.00"), Descricao: "DESPESAS ADMINISTRATIVAS", DataCarga: loadedAt},
		{ID: 4, RegistroANS: "100001", Ano: 2024, Trimestre: 2, Valor: dec("50.25"), Descricao: "eventos avisados", DataCarga: loadedAt},
		{ID: 5, RegistroANS: "100001", Ano: 2024, Trimestre: 3, Valor: dec("10.00"), Descricao: "PROVISAO", DataCarga: loadedAt},
		{ID: 6, RegistroANS: "100002", Ano: 2024, Trimestre: 1, Valor: dec("999.99"), Descricao: "EVENTOS", DataCarga: loadedAt},
	}
}

func seedAgregadas() []models.DespesaAgregada {
	row := func(razao, uf, total string) models.DespesaAgregada {
		return models.DespesaAgregada{
			RazaoSocial: razao, UF: uf, ValorTotal: dec(total),
			MediaTrimestral: dec(total), DesvioPadrao: decimal.Zero, QtdRegistros: 1,
		}
	}
	return []models.DespesaAgregada{
		row("ALFA SAUDE LTDA", "SP", "660.75"),
		row("BETA ASSISTENCIA MEDICA SA", "RJ", "999.99"),
		row("OPERADORA DESCONHECIDA/INATIVA", "ND", "500.00"),
		row("GAMA ODONTO", "MG", "0.01"),
		row("EPSILON", "SP", "100.00"),
		row("ZETA", "RJ", "50.00"),
		row("ETA", "BA", "10.00"),
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func razoes(ops []models.Operadora) []string {
	out := make([]string, 0, len(ops))
	for _, op := range ops {
		out = append(out, op.RazaoSocial)
	}
	return out
}

func despesaIDs(ds []models.DespesaDetalhada) []int64 {
	out := make([]int64, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.ID)
	}
	return out
}

// runQueryPortContract checks the behavior every QueryPort must share,
// against a store seeded with the seed* fixtures.
func runQueryPortContract(t *testing.T, port QueryPort) {
	ctx := context.Background()
	p := func(page, limit int, search string) models.ListParams {
		return models.ListParams{Page: page, Limit: limit, Search: search}
	}

	t.Run("list orders by razao_social", func(t *testing.T) {
		page, err := port.ListOperadoras(ctx, p(1, 10, ""))
		require.NoError(t, err)
		assert.Equal(t, int64(4), page.Total)
		assert.Equal(t, []string{"ALFA SAUDE LTDA", "BETA ASSISTENCIA MEDICA SA", "DELTA_100% COOPERATIVA", "GAMA ODONTO"}, razoes(page.Items))
	})

	t.Run("list windows without changing total", func(t *testing.T) {
		first, err := port.ListOperadoras(ctx, p(1, 3, ""))
		require.NoError(t, err)
		second, err := port.ListOperadoras(ctx, p(2, 3, ""))
		require.NoError(t, err)
		beyond, err := port.ListOperadoras(ctx, p(5, 3, ""))
		require.NoError(t, err)

		assert.Len(t, first.Items, 3)
		assert.Equal(t, []string{"GAMA ODONTO"}, razoes(second.Items))
		assert.Empty(t, beyond.Items)
		assert.Equal(t, int64(4), first.Total)
		assert.Equal(t, int64(4), second.Total)
		assert.Equal(t, int64(4), beyond.Total, "total is independent of the window")
	})

	t.Run("huge page is empty with unchanged total", func(t *testing.T) {
		params, err := NewListParams(strconv.Itoa(math.MaxInt/models.MaxLimit+1), strconv.Itoa(models.MaxLimit), "")
		require.NoError(t, err)

		ops, err := port.ListOperadoras(ctx, params)
		require.NoError(t, err)
		assert.Empty(t, ops.Items)
		assert.Equal(t, int64(4), ops.Total)

		despesas, err := port.ListDespesas(ctx, "11222333000181", params)
		require.NoError(t, err)
		assert.Empty(t, despesas.Items)
		assert.Equal(t, int64(5), despesas.Total)
	})

	t.Run("search matches razao_social case-insensitively", func(t *testing.T) {
		page, err := port.ListOperadoras(ctx, p(1, 10, "saude"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		assert.Equal(t, []string{"ALFA SAUDE LTDA"}, razoes(page.Items))
	})

	t.Run("search matches formatted cnpj fragment", func(t *testing.T) {
		page, err := port.ListOperadoras(ctx, p(1, 10, "29.309.127"))
		require.NoError(t, err)
		assert.Equal(t, []string{"BETA ASSISTENCIA MEDICA SA"}, razoes(page.Items))
	})

	t.Run("search treats wildcards literally", func(t *testing.T) {
		for _, term := range []string{"%", "_", "100%"} {
			page, err := port.ListOperadoras(ctx, p(1, 10, term))
			require.NoError(t, err)
			assert.Equal(t, []string{"DELTA_100% COOPERATIVA"}, razoes(page.Items), "term %q", term)
		}
	})

	t.Run("search without match is empty", func(t *testing.T) {
		page, err := port.ListOperadoras(ctx, p(1, 10, "inexistente"))
		require.NoError(t, err)
		assert.Zero(t, page.Total)
		assert.Empty(t, page.Items)
	})

	t.Run("get by cnpj accepts formatting", func(t *testing.T) {
		raw, err := port.GetOperadoraByCNPJ(ctx, "11222333000181")
		require.NoError(t, err)
		formatted, err := port.GetOperadoraByCNPJ(ctx, "11.222.333/0001-81")
		require.NoError(t, err)

		assert.Equal(t, "100001", raw.RegistroANS)
		assert.Equal(t, *raw, *formatted)
	})

	t.Run("get by unknown cnpj is not found", func(t *testing.T) {
		for _, cnpj := range []string{"00000000000000", "", "./-"} {
			op, err := port.GetOperadoraByCNPJ(ctx, cnpj)
			assert.Nil(t, op)
			assert.True(t, errors.Is(err, models.ErrOperadoraNotFound), "cnpj %q: got %v", cnpj, err)
		}
	})

	t.Run("despesas most recent first", func(t *testing.T) {
		page, err := port.ListDespesas(ctx, "11.222.333/0001-81", p(1, 10, ""))
		require.NoError(t, err)
		assert.Equal(t, int64(5), page.Total)
		assert.Equal(t, []int64{5, 3, 4, 2, 1}, despesaIDs(page.Items))
		assertDecimal(t, "10.00", page.Items[0].Valor)
	})

	t.Run("despesas window", func(t *testing.T) {
		page, err := port.ListDespesas(ctx, "11222333000181", p(2, 2, ""))
		require.NoError(t, err)
		assert.Equal(t, int64(5), page.Total)
		assert.Equal(t, []int64{4, 2}, despesaIDs(page.Items))
	})

	t.Run("despesas search filters descricao", func(t *testing.T) {
		page, err := port.ListDespesas(ctx, "11222333000181", p(1, 10, "eventos"))
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
		assert.Equal(t, []int64{4, 2, 1}, despesaIDs(page.Items))
	})

	t.Run("despesas only for the resolved operator", func(t *testing.T) {
		page, err := port.ListDespesas(ctx, "29309127000179", p(1, 10, ""))
		require.NoError(t, err)
		assert.Equal(t, []int64{6}, despesaIDs(page.Items))
		for _, d := range page.Items {
			assert.Equal(t, "100002", d.RegistroANS)
		}
	})

	t.Run("despesas for unknown operator is empty, not an error", func(t *testing.T) {
		page, err := port.ListDespesas(ctx, "00.000.000/0000-00", p(1, 10, ""))
		require.NoError(t, err)
		assert.Zero(t, page.Total)
		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
	})

	t.Run("despesas for operator without expenses", func(t *testing.T) {
		page, err := port.ListDespesas(ctx, "33000167000101", p(1, 10, ""))
		require.NoError(t, err)
		assert.Zero(t, page.Total)
		assert.Empty(t, page.Items)
	})

	t.Run("statistics", func(t *testing.T) {
		stats, err := port.GetStatistics(ctx)
		require.NoError(t, err)

		assertDecimal(t, "2320.75", stats.TotalDespesas)
		assertDecimal(t, "2320.75", stats.MediaTrimestral.Mul(decimal.NewFromInt(7)).Round(2), "mean times row count")

		require.Len(t, stats.TopOperadoras, TopN)
		assert.Equal(t, models.TopOperadora{RegistroANS: "100002", RazaoSocial: "BETA ASSISTENCIA MEDICA SA"}, withoutValor(stats.TopOperadoras[0]))
		assert.Equal(t, models.TopOperadora{RegistroANS: "100001", RazaoSocial: "ALFA SAUDE LTDA"}, withoutValor(stats.TopOperadoras[1]))
		assert.Equal(t, models.RegistroANSIndisponivel, stats.TopOperadoras[2].RegistroANS)
		assert.Equal(t, "OPERADORA DESCONHECIDA/INATIVA", stats.TopOperadoras[2].RazaoSocial)
		assert.Equal(t, "EPSILON", stats.TopOperadoras[3].RazaoSocial)
		assert.Equal(t, "ZETA", stats.TopOperadoras[4].RazaoSocial)
		assertDecimal(t, "999.99", stats.TopOperadoras[0].ValorTotal)

		require.Len(t, stats.TopEstados, TopN)
		ufs := make([]string, 0, TopN)
		for _, e := range stats.TopEstados {
			ufs = append(ufs, e.UF)
		}
		assert.Equal(t, []string{"RJ", "SP", "ND", "BA", "MG"}, ufs)
		assertDecimal(t, "1049.99", stats.TopEstados[0].Total)
		assertDecimal(t, "760.75", stats.TopEstados[1].Total)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, port.Ping(ctx))
	})
}

func withoutValor(op models.TopOperadora) models.TopOperadora {
	op.ValorTotal = decimal.Decimal{}
	return op
}
