package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListParams_Offset(t *testing.T) {
	tests := []struct {
		page, limit, want int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{3, 25, 50},
		{1, 100, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ListParams{Page: tt.page, Limit: tt.limit}.Offset())
	}
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "operadoras", Operadora{}.TableName())
	assert.Equal(t, "despesas_detalhadas", DespesaDetalhada{}.TableName())
	assert.Equal(t, "despesas_agregadas", DespesaAgregada{}.TableName())
}

func TestNewPaginatedOperadoras_EmptyDataIsArray(t *testing.T) {
	resp := NewPaginatedOperadoras(OperadoraPage{}, ListParams{Page: 3, Limit: 20})

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"total":0,"page":3,"limit":20}`, string(body))
}

func TestNewPaginatedDespesas_ConvertsValues(t *testing.T) {
	loaded := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	page := DespesaPage{
		Items: []DespesaDetalhada{{
			ID:          7,
			RegistroANS: "123456",
			Trimestre:   2,
			Ano:         2024,
			Valor:       decimal.RequireFromString("1500.25"),
			Descricao:   "EVENTOS",
			DataCarga:   loaded,
		}},
		Total: 1,
	}

	resp := NewPaginatedDespesas(page, ListParams{Page: 1, Limit: 10})
	require.Len(t, resp.Data, 1)
	assert.Equal(t, int64(1), resp.Total)

	body, err := json.Marshal(resp.Data[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"trimestre":2,"ano":2024,"valor":1500.25,"descricao":"EVENTOS","data_carga":"2025-01-10T12:00:00Z"}`, string(body))
}

func TestOperadora_JSONShape(t *testing.T) {
	body, err := json.Marshal(Operadora{
		RegistroANS: "326305",
		CNPJ:        "29309127000179",
		RazaoSocial: "AMIL",
		Modalidade:  "Medicina de Grupo",
		UF:          "SP",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"registro_ans":"326305","cnpj":"29309127000179","razao_social":"AMIL","modalidade":"Medicina de Grupo","uf":"SP"}`, string(body))
}

func TestNewEstatisticasResponse(t *testing.T) {
	stats := Estatisticas{
		TotalDespesas:   decimal.NewFromInt(400),
		MediaTrimestral: decimal.NewFromInt(200),
		TopOperadoras: []TopOperadora{
			{RegistroANS: RegistroANSIndisponivel, RazaoSocial: "B", ValorTotal: decimal.NewFromInt(300)},
		},
		TopEstados: []TopEstado{{UF: "RJ", Total: decimal.NewFromInt(300)}},
	}

	body, err := json.Marshal(NewEstatisticasResponse(stats))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"total_despesas": 400,
		"media_trimestral": 200,
		"top_5_operadoras": [{"registro_ans":"N/D","razao_social":"B","valor_total":300}],
		"top_5_estados": [{"uf":"RJ","total":300}]
	}`, string(body))
}

func TestNewEstatisticasResponse_EmptyRankingsAreArrays(t *testing.T) {
	body, err := json.Marshal(NewEstatisticasResponse(Estatisticas{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_despesas":0,"media_trimestral":0,"top_5_operadoras":[],"top_5_estados":[]}`, string(body))
}
