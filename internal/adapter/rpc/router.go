package rpc

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/diillson/dancart-api/internal/app/auth"
	"github.com/diillson/dancart-api/internal/infra/metrics"
	"github.com/diillson/dancart-api/internal/observability"
	apperrors "github.com/diillson/dancart-api/pkg/errors"
	"github.com/diillson/dancart-api/pkg/logging"
	"github.com/diillson/dancart-api/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const maxBodySize = 1 << 20

// Options configura o roteador
type Options struct {
	Limiter      ratelimit.Limiter
	PublicLimit  int
	PublicPeriod time.Duration
	Metrics      *metrics.APIMetrics
}

// Router despacha /api/trpc/<namespace>.<procedimento> para os procedimentos registrados
type Router struct {
	procedures map[string]Procedure
	validate   *validator.Validate
	opts       Options
	tracer     trace.Tracer
	logger     *logging.ContextLogger
}

type resultBody struct {
	Data any `json:"data"`
}

type successEnvelope struct {
	Result resultBody `json:"result"`
}

type errorEnvelope struct {
	Error *apperrors.APIError `json:"error"`
}

// NewRouter cria um roteador vazio
func NewRouter(opts Options, logger *zap.Logger) *Router {
	if opts.PublicLimit <= 0 {
		opts.PublicLimit = 10
	}
	if opts.PublicPeriod <= 0 {
		opts.PublicPeriod = time.Minute
	}
	return &Router{
		procedures: make(map[string]Procedure),
		validate:   newValidator(),
		opts:       opts,
		tracer:     otel.GetTracerProvider().Tracer("dancart.rpc"),
		logger:     logging.NewContextLogger(logger),
	}
}

// Register adiciona procedimentos. Nome repetido é erro de programação.
func (r *Router) Register(procs ...Procedure) {
	for _, p := range procs {
		if _, exists := r.procedures[p.Name]; exists {
			panic(fmt.Sprintf("procedimento registrado duas vezes: %s", p.Name))
		}
		r.procedures[p.Name] = p
	}
}

// Procedures devolve os procedimentos registrados
func (r *Router) Procedures() map[string]Procedure {
	return r.procedures
}

// Mount liga o roteador ao grupo informado (tipicamente /api/trpc)
func (r *Router) Mount(g gin.IRoutes) {
	g.GET("/:procedure", r.Handle)
	g.POST("/:procedure", r.Handle)
}

// Handle executa um procedimento: autorização, limite, validação e execução, nessa ordem
func (r *Router) Handle(c *gin.Context) {
	name := c.Param("procedure")

	p, found := r.procedures[name]
	if !found {
		r.fail(c, name, "", apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("Procedimento não encontrado: %s", name), nil))
		return
	}

	if expected := kindOf(c.Request.Method); expected != p.Kind {
		r.fail(c, name, p.Kind, apperrors.New(apperrors.CodeMethodNotSupported,
			fmt.Sprintf("Método %s não suportado para %s %s", c.Request.Method, p.Kind, name), nil))
		return
	}

	ctx, span := r.tracer.Start(c.Request.Context(), "rpc."+name,
		trace.WithAttributes(
			attribute.String("rpc.procedure", name),
			attribute.String("rpc.kind", string(p.Kind)),
			attribute.String("rpc.tier", p.Tier.String()),
		),
	)
	defer span.End()

	user := auth.UserFromContext(ctx)
	if err := auth.Authorize(p.Tier, user); err != nil {
		span.SetStatus(codes.Error, "unauthorized")
		r.fail(c, name, p.Kind, err)
		return
	}

	if p.Limited && !r.allow(c, name) {
		span.SetStatus(codes.Error, "rate limited")
		r.fail(c, name, p.Kind, apperrors.TooManyRequests(""))
		return
	}

	raw, err := r.input(c, p.Kind)
	if err != nil {
		r.fail(c, name, p.Kind, err)
		return
	}

	call := &Call{ctx: ctx, User: user, Request: c.Request}
	data, err := p.run(call, raw, r.validate)
	for _, cookie := range call.cookies {
		http.SetCookie(c.Writer, cookie)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.fail(c, name, p.Kind, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	if r.opts.Metrics != nil {
		r.opts.Metrics.ProcedureCalled(name, string(p.Kind), "OK")
	}
	c.JSON(http.StatusOK, successEnvelope{Result: resultBody{Data: data}})
}

func kindOf(method string) Kind {
	if method == http.MethodGet {
		return KindQuery
	}
	return KindMutation
}

// input lê ?input= nas queries e o corpo nas mutations
func (r *Router) input(c *gin.Context, kind Kind) ([]byte, error) {
	if kind == KindQuery {
		return []byte(c.Query("input")), nil
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize))
	if err != nil {
		return nil, apperrors.BadRequest("Corpo da requisição inválido", err)
	}
	return body, nil
}

// allow aplica o limite por IP dos formulários públicos. Falha do limitador não bloqueia.
func (r *Router) allow(c *gin.Context, name string) bool {
	if r.opts.Limiter == nil {
		return true
	}

	allowed, limit, remaining, resetAfter, err := r.opts.Limiter.Allow(c.Request.Context(), ratelimit.LimitConfig{
		Key:    "rpc:" + name + ":" + c.ClientIP(),
		Limit:  r.opts.PublicLimit,
		Period: r.opts.PublicPeriod,
	})
	if err != nil {
		r.logger.ErrorCtx(c.Request.Context(), "erro ao verificar rate limit", zap.String("procedure", name), zap.Error(err))
		return true
	}

	c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(resetAfter).Unix(), 10))

	if !allowed {
		c.Header("Retry-After", strconv.Itoa(int(resetAfter.Seconds())))
		if r.opts.Metrics != nil {
			r.opts.Metrics.RateLimitExceeded(name, "procedure")
		}
		r.logger.WarnCtx(c.Request.Context(), "Limite de requisições excedido",
			zap.String("procedure", name),
			zap.String("ip", c.ClientIP()))
	}
	return allowed
}

func (r *Router) fail(c *gin.Context, name string, kind Kind, err error) {
	apiErr := apperrors.FromError(err)

	if apiErr.Status >= http.StatusInternalServerError {
		r.logger.ErrorCtx(c.Request.Context(), "Falha no procedimento",
			zap.String("procedure", name),
			zap.String("code", string(apiErr.Code)),
			zap.Error(err))
		_ = c.Error(err)
		observability.CaptureErr(err)
		if r.opts.Metrics != nil {
			r.opts.Metrics.RequestError(c.FullPath(), c.Request.Method, string(apiErr.Code))
		}
	} else {
		r.logger.DebugCtx(c.Request.Context(), "Procedimento rejeitado",
			zap.String("procedure", name),
			zap.String("code", string(apiErr.Code)),
			zap.Error(err))
	}

	if r.opts.Metrics != nil && kind != "" {
		r.opts.Metrics.ProcedureCalled(name, string(kind), string(apiErr.Code))
	}

	c.AbortWithStatusJSON(apiErr.Status, errorEnvelope{Error: apiErr})
}
