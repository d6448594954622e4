package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Tipos de erro comuns
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrBadRequest         = errors.New("requisição inválida")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrForbidden          = errors.New("acesso negado")
	ErrInternalServer     = errors.New("erro interno do servidor")
	ErrServiceUnavailable = errors.New("serviço indisponível")
	ErrTimeout            = errors.New("tempo de espera excedido")
	ErrDuplicate          = errors.New("recurso já existe")
	ErrConflict           = errors.New("conflito de estado")
	ErrPrecondition       = errors.New("pré-condição não atendida")
)

// Code identifica o tipo do erro na resposta RPC
type Code string

const (
	CodeBadRequest         Code = "BAD_REQUEST"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeForbidden          Code = "FORBIDDEN"
	CodeNotFound           Code = "NOT_FOUND"
	CodeMethodNotSupported Code = "METHOD_NOT_SUPPORTED"
	CodeConflict           Code = "CONFLICT"
	CodePreconditionFailed Code = "PRECONDITION_FAILED"
	CodeTooManyRequests    Code = "TOO_MANY_REQUESTS"
	CodeInternalServer     Code = "INTERNAL_SERVER_ERROR"
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"
)

var codeStatus = map[Code]int{
	CodeBadRequest:         http.StatusBadRequest,
	CodeUnauthorized:       http.StatusUnauthorized,
	CodeForbidden:          http.StatusForbidden,
	CodeNotFound:           http.StatusNotFound,
	CodeMethodNotSupported: http.StatusMethodNotAllowed,
	CodeConflict:           http.StatusConflict,
	CodePreconditionFailed: http.StatusPreconditionFailed,
	CodeTooManyRequests:    http.StatusTooManyRequests,
	CodeInternalServer:     http.StatusInternalServerError,
	CodeServiceUnavailable: http.StatusServiceUnavailable,
}

// APIError representa um erro da API com informações adicionais
type APIError struct {
	Code        Code        `json:"code"`
	Status      int         `json:"-"`
	Message     string      `json:"message"`
	Details     interface{} `json:"details,omitempty"`
	OriginalErr error       `json:"-"`
}

// Error implementa a interface error
func (e *APIError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.OriginalErr)
	}
	return e.Message
}

// Unwrap permite usar errors.Is e errors.As
func (e *APIError) Unwrap() error {
	return e.OriginalErr
}

// New cria um novo APIError
func New(code Code, message string, err error) *APIError {
	status, ok := codeStatus[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	return &APIError{
		Code:        code,
		Status:      status,
		Message:     message,
		OriginalErr: err,
	}
}

// WithDetails adiciona detalhes ao erro
func (e *APIError) WithDetails(details interface{}) *APIError {
	e.Details = details
	return e
}

// NotFound cria um erro 404
func NotFound(resource string, err error) *APIError {
	message := fmt.Sprintf("%s não encontrado", resource)
	return New(CodeNotFound, message, err)
}

// BadRequest cria um erro 400
func BadRequest(message string, err error) *APIError {
	return New(CodeBadRequest, message, err)
}

// Unauthorized cria um erro 401
func Unauthorized(message string, err error) *APIError {
	if message == "" {
		message = "Autenticação necessária"
	}
	return New(CodeUnauthorized, message, err)
}

// Forbidden cria um erro 403
func Forbidden(message string, err error) *APIError {
	if message == "" {
		message = "Acesso negado"
	}
	return New(CodeForbidden, message, err)
}

// Conflict cria um erro 409
func Conflict(message string, err error) *APIError {
	return New(CodeConflict, message, err)
}

// TooManyRequests cria um erro 429
func TooManyRequests(message string) *APIError {
	if message == "" {
		message = "Muitas requisições, tente novamente mais tarde"
	}
	return New(CodeTooManyRequests, message, nil)
}

// ServiceUnavailable cria um erro 503
func ServiceUnavailable(message string, err error) *APIError {
	if message == "" {
		message = "Serviço indisponível"
	}
	return New(CodeServiceUnavailable, message, err)
}

// InternalServer cria um erro 500
func InternalServer(message string, err error) *APIError {
	if message == "" {
		message = "Erro interno do servidor"
	}
	return New(CodeInternalServer, message, err)
}

// FieldError descreve uma falha de validação em um campo
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// fieldPath remove o nome da struct raiz: "CursoInput.nivel" vira "nivel"
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

// FromError converte qualquer erro em APIError.
// Erros já tipados são devolvidos como estão; sentinelas conhecidas são mapeadas.
func FromError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, FieldError{Field: fieldPath(fe.Namespace()), Rule: fe.Tag(), Param: fe.Param()})
		}
		return BadRequest("Dados de entrada inválidos", err).WithDetails(fields)
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return New(CodeNotFound, err.Error(), err)
	case errors.Is(err, ErrBadRequest):
		return New(CodeBadRequest, err.Error(), err)
	case errors.Is(err, ErrUnauthorized):
		return Unauthorized("", err)
	case errors.Is(err, ErrForbidden):
		return Forbidden("", err)
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate):
		return New(CodeConflict, err.Error(), err)
	case errors.Is(err, ErrPrecondition):
		return New(CodePreconditionFailed, err.Error(), err)
	case errors.Is(err, ErrServiceUnavailable):
		return ServiceUnavailable("Banco de dados indisponível", err)
	case errors.Is(err, ErrTimeout):
		return New(CodeServiceUnavailable, err.Error(), err)
	}

	return InternalServer("", err)
}
