// Package validation traduz as tags `validate` dos payloads em apperror.ValidationError.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperror "clinicstock/internal/errors"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New()
		// Usa o nome JSON do campo nas mensagens.
		instance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return instance
}

// Struct valida o payload e devolve um ValidationError com o mapa campo -> mensagem.
func Struct(payload interface{}) error {
	err := get().Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.NewValidationError(err.Error())
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = message(fe)
	}
	return apperror.NewValidationErrorWithFields("Payload inválido.", fields)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s é obrigatório", fe.Field())
	case "gt":
		return fmt.Sprintf("%s deve ser maior que %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s deve ser maior ou igual a %s", fe.Field(), fe.Param())
	case "min":
		if isNumeric(fe.Kind()) {
			return fmt.Sprintf("%s deve ser no mínimo %s", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s deve ter no mínimo %s caracteres", fe.Field(), fe.Param())
	case "max":
		if isNumeric(fe.Kind()) {
			return fmt.Sprintf("%s deve ser no máximo %s", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s deve ter no máximo %s caracteres", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s deve ser um e-mail válido", fe.Field())
	default:
		return fmt.Sprintf("%s falhou na regra %s", fe.Field(), fe.Tag())
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
