// Package response padroniza as respostas JSON de sucesso e erro da API.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"clinicstock/internal/domain"
	apperror "clinicstock/internal/errors"
	"clinicstock/internal/pkg/logger"
)

// JSON escreve o payload com o status informado.
func JSON(w http.ResponseWriter, log logger.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("Falha ao codificar JSON de resposta", err)
	}
}

// Error traduz o erro para o corpo padronizado ErrorResponse.
// Erros 5xx são logados com a causa; 4xx apenas em debug.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= http.StatusInternalServerError {
		log.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		log.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
		})
	}

	body := domain.ErrorResponse{Code: status, Category: category, Message: message}
	if vErr, ok := apperror.As(err); ok {
		if v, isValidation := vErr.(*apperror.ValidationError); isValidation {
			body.Fields = v.Fields
		}
	}
	JSON(w, log, status, body)
}

// Handle é o equivalente ao handleServiceResponse: sucesso com data ou erro padronizado.
func Handle(w http.ResponseWriter, r *http.Request, log logger.Logger, data interface{}, err error, successStatus int) {
	if err != nil {
		Error(w, r, log, err)
		return
	}
	log.Info("Requisição concluída com sucesso", map[string]interface{}{
		"method": r.Method,
		"path":   r.URL.Path,
		"status": successStatus,
	})
	JSON(w, log, successStatus, data)
}
