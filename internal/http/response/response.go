// Package response contém tipos e funções auxiliares para a formação
// de respostas JSON unificadas dos handlers HTTP.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Response descreve a estrutura padrão de resposta do servidor.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse — estrutura de erro usada na documentação Swagger.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

const (
	// StatusOK — valor de status para respostas bem-sucedidas.
	StatusOK = "OK"
	// StatusError — valor de status para respostas com erro.
	StatusError = "Error"
)

// StatusOKWithData retorna um Response de sucesso com os dados informados.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error retorna um Response de erro com a mensagem informada.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError monta um Response de erro a partir das violações de
// validação, com textos legíveis unidos por vírgula.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		case "len":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s has a wrong number of items", err.Field()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s has an unsupported value", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(errsMsgs, ", "),
	}
}
