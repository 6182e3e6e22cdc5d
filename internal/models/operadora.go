package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operadora represents a health-plan operator registered with ANS
type Operadora struct {
	RegistroANS string `gorm:"column:registro_ans;primaryKey" json:"registro_ans"`
	CNPJ        string `gorm:"column:cnpj;index" json:"cnpj"`
	RazaoSocial string `gorm:"column:razao_social;index" json:"razao_social"`
	Modalidade  string `gorm:"column:modalidade" json:"modalidade"`
	UF          string `gorm:"column:uf" json:"uf"`
}

func (Operadora) TableName() string { return "operadoras" }

// DespesaDetalhada is a single quarterly expense line of an operator
type DespesaDetalhada struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	RegistroANS string          `gorm:"column:registro_ans;index"`
	Trimestre   int             `gorm:"column:trimestre"`
	Ano         int             `gorm:"column:ano"`
	Valor       decimal.Decimal `gorm:"column:valor;type:numeric(18,2)"`
	Descricao   string          `gorm:"column:descricao;type:text"`
	DataCarga   time.Time       `gorm:"column:data_carga"`
}

func (DespesaDetalhada) TableName() string { return "despesas_detalhadas" }

// DespesaAgregada holds the precomputed totals of one (razao_social, uf) group
type DespesaAgregada struct {
	RazaoSocial     string          `gorm:"column:razao_social;primaryKey"`
	UF              string          `gorm:"column:uf;primaryKey"`
	ValorTotal      decimal.Decimal `gorm:"column:valor_total;type:numeric(18,2)"`
	MediaTrimestral decimal.Decimal `gorm:"column:media_trimestral;type:numeric(18,2)"`
	DesvioPadrao    decimal.Decimal `gorm:"column:desvio_padrao;type:numeric(18,2)"`
	QtdRegistros    int             `gorm:"column:qtd_registros"`
}

func (DespesaAgregada) TableName() string { return "despesas_agregadas" }

// DespesaResponse is the public shape of a detailed expense
type DespesaResponse struct {
	Trimestre int       `json:"trimestre" example:"3"`
	Ano       int       `json:"ano" example:"2024"`
	Valor     float64   `json:"valor" example:"15234.55"`
	Descricao string    `json:"descricao" example:"EVENTOS/SINISTROS CONHECIDOS OU AVISADOS"`
	DataCarga time.Time `json:"data_carga"`
}

// NewDespesaResponse converts a stored expense into its response shape
func NewDespesaResponse(d DespesaDetalhada) DespesaResponse {
	return DespesaResponse{
		Trimestre: d.Trimestre,
		Ano:       d.Ano,
		Valor:     d.Valor.InexactFloat64(),
		Descricao: d.Descricao,
		DataCarga: d.DataCarga,
	}
}
