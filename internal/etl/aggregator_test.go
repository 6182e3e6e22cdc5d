package etl

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(razao, uf, valor string) Record {
	return Record{RazaoSocial: razao, UF: uf, Valor: decimal.RequireFromString(valor)}
}

func TestAggregate(t *testing.T) {
	aggregates := Aggregate([]Record{
		rec("A", "SP", "100"),
		rec("A", "SP", "200"),
		rec("A", "SP", "300"),
		rec("A", "RJ", "50"),
		rec("B", "RJ", "1000"),
	})

	require.Len(t, aggregates, 3)

	assert.Equal(t, "B", aggregates[0].RazaoSocial)
	assert.Equal(t, 1, aggregates[0].QtdRegistros)
	assert.True(t, aggregates[0].DesvioPadrao.IsZero(), "single value has no deviation")

	a := aggregates[1]
	assert.Equal(t, "A", a.RazaoSocial)
	assert.Equal(t, "SP", a.UF)
	assert.Equal(t, "600", a.ValorTotal.String())
	assert.Equal(t, "200", a.MediaTrimestral.String())
	assert.Equal(t, "100", a.DesvioPadrao.String())
	assert.Equal(t, 3, a.QtdRegistros)

	assert.Equal(t, "RJ", aggregates[2].UF)
}

func TestAggregate_RoundsToCents(t *testing.T) {
	aggregates := Aggregate([]Record{rec("A", "SP", "10"), rec("A", "SP", "10"), rec("A", "SP", "11")})

	require.Len(t, aggregates, 1)
	assert.Equal(t, "10.33", aggregates[0].MediaTrimestral.String())
	assert.Equal(t, "0.58", aggregates[0].DesvioPadrao.String())
}

func TestAggregate_TiesAreDeterministic(t *testing.T) {
	aggregates := Aggregate([]Record{rec("B", "SP", "5"), rec("A", "SP", "5"), rec("A", "MG", "5")})

	require.Len(t, aggregates, 3)
	assert.Equal(t, []string{"A/MG", "A/SP", "B/SP"}, []string{
		aggregates[0].RazaoSocial + "/" + aggregates[0].UF,
		aggregates[1].RazaoSocial + "/" + aggregates[1].UF,
		aggregates[2].RazaoSocial + "/" + aggregates[2].UF,
	})
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}
