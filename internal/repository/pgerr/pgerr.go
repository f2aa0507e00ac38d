// Package pgerr classifica erros do driver lib/pq pelos códigos SQLSTATE.
package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// Códigos SQLSTATE usados pelos repositórios.
const (
	NumericOutOfRange    = "22003"
	ForeignKeyViolation  = "23503"
	UniqueViolation      = "23505"
	CheckViolation       = "23514"
	SerializationFailure = "40001"
	RaiseException       = "P0001"
)

// Code devolve o SQLSTATE do erro, ou "" se não for um *pq.Error.
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsForeignKeyViolation indica violação de chave estrangeira (e.g. lote com histórico).
func IsForeignKeyViolation(err error) bool { return Code(err) == ForeignKeyViolation }

// IsCheckViolation indica violação de CHECK (e.g. quantity >= 0).
func IsCheckViolation(err error) bool { return Code(err) == CheckViolation }

// IsSerializationFailure indica que o PostgreSQL abortou a transação por concorrência.
func IsSerializationFailure(err error) bool { return Code(err) == SerializationFailure }

// IsUniqueViolation indica violação de UNIQUE (e.g. número de lote repetido para o item).
func IsUniqueViolation(err error) bool { return Code(err) == UniqueViolation }

// IsNumericOutOfRange indica valor fora da faixa da coluna (e.g. quantity acima de INTEGER).
func IsNumericOutOfRange(err error) bool { return Code(err) == NumericOutOfRange }
