package models

import "github.com/shopspring/decimal"

// RegistroANSIndisponivel marks a top operator whose name has no match in operadoras
const RegistroANSIndisponivel = "N/D"

// TopOperadora is one entry of the top operators ranking
type TopOperadora struct {
	RegistroANS string
	RazaoSocial string
	ValorTotal  decimal.Decimal
}

// TopEstado is one entry of the top states ranking
type TopEstado struct {
	UF    string
	Total decimal.Decimal
}

// Estatisticas is the computed summary over the aggregated expenses
type Estatisticas struct {
	TotalDespesas   decimal.Decimal
	MediaTrimestral decimal.Decimal
	TopOperadoras   []TopOperadora
	TopEstados      []TopEstado
}

// TopOperadoraResponse is the public shape of a ranked operator
type TopOperadoraResponse struct {
	RegistroANS string  `json:"registro_ans" example:"326305"`
	RazaoSocial string  `json:"razao_social" example:"AMIL ASSISTÊNCIA MÉDICA INTERNACIONAL S.A."`
	ValorTotal  float64 `json:"valor_total" example:"1523400.12"`
}

// TopEstadoResponse is the public shape of a ranked state
type TopEstadoResponse struct {
	UF    string  `json:"uf" example:"SP"`
	Total float64 `json:"total" example:"9876543.21"`
}

// EstatisticasResponse represents the statistics summary response
type EstatisticasResponse struct {
	TotalDespesas   float64                `json:"total_despesas" example:"123456789.01"`
	MediaTrimestral float64                `json:"media_trimestral" example:"98765.43"`
	TopOperadoras   []TopOperadoraResponse `json:"top_5_operadoras"`
	TopEstados      []TopEstadoResponse    `json:"top_5_estados"`
}

// NewEstatisticasResponse converts decimal statistics to their JSON shape
func NewEstatisticasResponse(e Estatisticas) EstatisticasResponse {
	resp := EstatisticasResponse{
		TotalDespesas:   e.TotalDespesas.InexactFloat64(),
		MediaTrimestral: e.MediaTrimestral.InexactFloat64(),
		TopOperadoras:   make([]TopOperadoraResponse, 0, len(e.TopOperadoras)),
		TopEstados:      make([]TopEstadoResponse, 0, len(e.TopEstados)),
	}
	for _, op := range e.TopOperadoras {
		resp.TopOperadoras = append(resp.TopOperadoras, TopOperadoraResponse{
			RegistroANS: op.RegistroANS,
			RazaoSocial: op.RazaoSocial,
			ValorTotal:  op.ValorTotal.InexactFloat64(),
		})
	}
	for _, uf := range e.TopEstados {
		resp.TopEstados = append(resp.TopEstados, TopEstadoResponse{
			UF:    uf.UF,
			Total: uf.Total.InexactFloat64(),
		})
	}
	return resp
}
