package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/diillson/dancart-api/internal/app/auth"
	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/internal/domain/repository"
	apperrors "github.com/diillson/dancart-api/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// Kind separa leituras (GET) de escritas (POST)
type Kind string

const (
	KindQuery    Kind = "query"
	KindMutation Kind = "mutation"
)

// Call dá ao procedimento acesso à requisição e à identidade resolvida
type Call struct {
	ctx     context.Context
	User    *model.User
	Request *http.Request
	cookies []*http.Cookie
}

// Context devolve o contexto da requisição
func (c *Call) Context() context.Context {
	return c.ctx
}

// SetCookie agenda um cookie para a resposta
func (c *Call) SetCookie(cookie *http.Cookie) {
	c.cookies = append(c.cookies, cookie)
}

// Procedure é um procedimento registrado no roteador
type Procedure struct {
	Name    string
	Kind    Kind
	Tier    auth.Tier
	Limited bool

	run func(call *Call, raw []byte, v *validator.Validate) (any, error)
}

// RateLimited marca o procedimento para limite por IP
func (p Procedure) RateLimited() Procedure {
	p.Limited = true
	return p
}

// HandlerFunc executa um procedimento com a entrada já validada
type HandlerFunc[I any] func(call *Call, in I) (any, error)

// NoInput é a entrada de procedimentos sem parâmetros
type NoInput struct{}

// IDInput identifica um registro
type IDInput struct {
	ID int64 `json:"id" validate:"required,min=1"`
}

// UpdateInput é a entrada dos procedimentos update: {id, data}
type UpdateInput[P any] struct {
	ID   int64 `json:"id" validate:"required,min=1"`
	Data P     `json:"data"`
}

// CreatedResult é a resposta dos procedimentos create
type CreatedResult struct {
	ID int64 `json:"id"`
}

// SuccessResult é a resposta de update, delete e logout
type SuccessResult struct {
	Success bool `json:"success"`
}

var success = SuccessResult{Success: true}

// NewQuery cria um procedimento de leitura
func NewQuery[I any](name string, tier auth.Tier, fn HandlerFunc[I]) Procedure {
	return newProcedure(name, KindQuery, tier, fn)
}

// NewMutation cria um procedimento de escrita
func NewMutation[I any](name string, tier auth.Tier, fn HandlerFunc[I]) Procedure {
	return newProcedure(name, KindMutation, tier, fn)
}

func newProcedure[I any](name string, kind Kind, tier auth.Tier, fn HandlerFunc[I]) Procedure {
	return Procedure{
		Name: name,
		Kind: kind,
		Tier: tier,
		run: func(call *Call, raw []byte, v *validator.Validate) (any, error) {
			in, err := bind[I](raw, v)
			if err != nil {
				return nil, err
			}
			return fn(call, in)
		},
	}
}

// bind decodifica e valida a entrada. Aceita o envelope {"json": ...} enviado por clientes com superjson.
func bind[I any](raw []byte, v *validator.Validate) (I, error) {
	var in I

	raw = unwrapJSON(bytes.TrimSpace(raw))
	if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		if err := json.Unmarshal(raw, &in); err != nil {
			return in, apperrors.BadRequest("Entrada inválida", err)
		}
	}

	if reflect.Indirect(reflect.ValueOf(&in)).Kind() == reflect.Struct {
		if err := v.Struct(in); err != nil {
			return in, apperrors.FromError(err)
		}
	}
	return in, nil
}

func unwrapJSON(raw []byte) []byte {
	if len(raw) == 0 || raw[0] != '{' {
		return raw
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope) > 2 {
		return raw
	}
	inner, found := envelope["json"]
	if !found {
		return raw
	}
	if _, hasMeta := envelope["meta"]; len(envelope) == 2 && !hasMeta {
		return raw
	}
	return inner
}

// newValidator usa o nome JSON dos campos nos detalhes de erro
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// orNull converte a ausência do registro em null, como o cliente espera de getById
func orNull[T any](v *T, err error) (any, error) {
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}
