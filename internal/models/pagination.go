package models

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListParams carries validated pagination and the optional search term
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

// Offset returns the number of rows to skip for the requested page
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// OperadoraPage is one window of an operator listing plus the full match count
type OperadoraPage struct {
	Items []Operadora
	Total int64
}

// DespesaPage is one window of an operator's expenses plus the full match count
type DespesaPage struct {
	Items []DespesaDetalhada
	Total int64
}

// PaginatedOperadoras represents a paginated response of operators
type PaginatedOperadoras struct {
	Data  []Operadora `json:"data"`
	Total int64       `json:"total" example:"1250"`
	Page  int         `json:"page" example:"1"`
	Limit int         `json:"limit" example:"10"`
}

// PaginatedDespesas represents a paginated response of expenses
type PaginatedDespesas struct {
	Data  []DespesaResponse `json:"data"`
	Total int64             `json:"total" example:"12"`
	Page  int               `json:"page" example:"1"`
	Limit int               `json:"limit" example:"10"`
}

// NewPaginatedOperadoras builds the response envelope. Data is never null.
func NewPaginatedOperadoras(page OperadoraPage, params ListParams) PaginatedOperadoras {
	data := page.Items
	if data == nil {
		data = []Operadora{}
	}
	return PaginatedOperadoras{Data: data, Total: page.Total, Page: params.Page, Limit: params.Limit}
}

// NewPaginatedDespesas builds the response envelope. Data is never null.
func NewPaginatedDespesas(page DespesaPage, params ListParams) PaginatedDespesas {
	data := make([]DespesaResponse, 0, len(page.Items))
	for _, d := range page.Items {
		data = append(data, NewDespesaResponse(d))
	}
	return PaginatedDespesas{Data: data, Total: page.Total, Page: params.Page, Limit: params.Limit}
}
