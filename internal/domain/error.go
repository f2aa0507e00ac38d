package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Code     int               `json:"code" example:"422"`
	Category string            `json:"category" example:"INSUFFICIENT_QUANTITY"`
	Message  string            `json:"message" example:"Quantidade insuficiente: lote 12 possui 30, solicitado 31."`
	Fields   map[string]string `json:"fields,omitempty"`
}
