// Package params lê parâmetros de rota e de query das requisições.
package params

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"clinicstock/internal/domain"
	apperror "clinicstock/internal/errors"
)

// ID lê o parâmetro de rota {name} como int64 positivo.
func ID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewValidationErrorWithFields("Parâmetro de rota inválido.",
			map[string]string{name: fmt.Sprintf("%q não é um ID válido", raw)})
	}
	return id, nil
}

// OptionalID lê um ID opcional da query string.
func OptionalID(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, apperror.NewValidationErrorWithFields("Parâmetro de consulta inválido.",
			map[string]string{name: fmt.Sprintf("%q não é um ID válido", raw)})
	}
	return &id, nil
}

// Int lê um inteiro da query string, com valor padrão quando ausente.
func Int(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.NewValidationErrorWithFields("Parâmetro de consulta inválido.",
			map[string]string{name: fmt.Sprintf("%q não é um número", raw)})
	}
	return v, nil
}

// Paging lê page e limit da query string. Página acima de domain.MaxPage é rejeitada.
func Paging(r *http.Request) (page, limit int, err error) {
	if page, err = Int(r, "page", 1); err != nil {
		return 0, 0, err
	}
	if page > domain.MaxPage {
		return 0, 0, apperror.NewValidationErrorWithFields("Parâmetro de consulta inválido.",
			map[string]string{"page": fmt.Sprintf("deve ser no máximo %d", domain.MaxPage)})
	}
	if limit, err = Int(r, "limit", 20); err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}

// Bool lê um booleano da query string (ausente = false).
func Bool(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}

// DecodeJSON decodifica o corpo. Com strict, campos desconhecidos são rejeitados.
func DecodeJSON(r *http.Request, dst interface{}, strict bool) error {
	dec := json.NewDecoder(r.Body)
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(dst); err != nil {
		return apperror.NewValidationError(fmt.Sprintf("Payload inválido. Verifique o formato JSON: %v", err))
	}
	return nil
}

// Page agrupa paginação comum às listagens.
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// ListResponse é o envelope das listagens paginadas.
type ListResponse struct {
	Data       interface{} `json:"data"`
	Pagination Page        `json:"pagination"`
}
