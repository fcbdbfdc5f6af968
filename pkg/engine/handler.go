// Package engine provides the core request-resolution engine: it matches
// an incoming request to an endpoint, scores the endpoint's candidate
// responses, renders the winner's body, and runs its actions.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/getmockd/reflectd/internal/routing"
	"github.com/getmockd/reflectd/internal/storage"
	"github.com/getmockd/reflectd/pkg/actions"
	"github.com/getmockd/reflectd/pkg/endpoint"
	"github.com/getmockd/reflectd/pkg/logging"
	"github.com/getmockd/reflectd/pkg/rules"
	"github.com/getmockd/reflectd/pkg/session"
	"github.com/getmockd/reflectd/pkg/template"
)

// maxBodyBytes caps how much of a request body is read.
const maxBodyBytes = 10 << 20

// Fixed messages for configuration-error outcomes. All-disqualified is
// deliberately indistinguishable from having no active responses.
const (
	msgNoSuchPath       = "no endpoint is registered for this path"
	msgMethodNotAllowed = "this path is not registered for this method"
	msgNoResponses      = "no responses are configured for this endpoint"
)

// Handler resolves mock requests. It implements http.Handler and is safe
// for concurrent use.
type Handler struct {
	store    storage.EndpointStore
	sessions *session.Store
	renderer *template.Engine
	executor *actions.Executor
	log      *slog.Logger
}

// HandlerConfig wires a Handler's collaborators.
type HandlerConfig struct {
	Store    storage.EndpointStore
	Sessions *session.Store
	Executor *actions.Executor
	Logger   *slog.Logger
}

// NewHandler creates a request handler. Store is required; the other
// collaborators get working defaults.
func NewHandler(cfg HandlerConfig) *Handler {
	sessions := cfg.Sessions
	if sessions == nil {
		sessions = session.New()
	}
	executor := cfg.Executor
	if executor == nil {
		executor = actions.NewExecutor(actions.Config{Store: sessions, Logger: cfg.Logger})
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Handler{
		store:    cfg.Store,
		sessions: sessions,
		renderer: template.New(),
		executor: executor,
		log:      log,
	}
}

// Sessions exposes the ephemeral keyed store, for the admin API's reset
// operation.
func (h *Handler) Sessions() *session.Store {
	return h.sessions
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	match := routing.Match(h.store.List(), r.Method, r.URL.Path)
	switch match.Outcome {
	case routing.NoSuchPath:
		h.log.Debug("no endpoint for path", "method", r.Method, "path", r.URL.Path)
		h.writeError(w, http.StatusNotFound, msgNoSuchPath)
		return
	case routing.MethodNotAllowed:
		h.log.Debug("method not allowed", "method", r.Method, "path", r.URL.Path)
		h.writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}
	ep := match.Endpoint

	active := activeResponses(ep)
	if len(active) == 0 {
		h.log.Warn("endpoint has no active responses", "endpoint", ep.ID)
		h.writeError(w, http.StatusNotImplemented, msgNoResponses)
		return
	}

	namespace := routing.Namespace(ep.Path)
	ctx := template.NewContext(match.Params, r.URL.Query(), template.ParseJSONBody(body), r.Header)
	ctx.SetStore(h.sessions, namespace)

	candidates := make([][]rules.ScoringRule, len(active))
	for i, rsp := range active {
		candidates[i] = rsp.ScoringRules()
	}

	idx, err := rules.SelectBest(h.renderer, ctx, candidates)
	if err != nil {
		if errors.Is(err, rules.ErrNoneQualified) {
			h.log.Warn("every response was disqualified", "endpoint", ep.ID)
			h.writeError(w, http.StatusNotImplemented, msgNoResponses)
			return
		}
		h.log.Error("rule evaluation failed", "endpoint", ep.ID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "rule evaluation failed: "+err.Error())
		return
	}
	chosen := active[idx]

	rendered, err := h.renderer.Render(chosen.Content, ctx)
	if err != nil {
		// Rendering failures are terminal: the response was never
		// delivered, so its actions do not run.
		h.log.Error("response rendering failed", "endpoint", ep.ID, "response", chosen.ID, "error", err)
		h.writeError(w, http.StatusInternalServerError, renderErrorMessage(err))
		return
	}

	h.executor.Run(chosen.ExecutableActions(), actions.Inputs{
		Namespace:       namespace,
		RequestBody:     string(body),
		RenderedContent: rendered,
	})

	h.log.Debug("request resolved",
		"method", r.Method,
		"path", r.URL.Path,
		"endpoint", ep.ID,
		"response", chosen.ID,
		"status", chosen.StatusCode)

	w.Header().Set("Content-Type", chosen.ContentType)
	w.WriteHeader(chosen.StatusCode)
	_, _ = io.WriteString(w, rendered)
}

func activeResponses(ep *endpoint.Endpoint) []*endpoint.Response {
	active := make([]*endpoint.Response, 0, len(ep.Responses))
	for _, r := range ep.Responses {
		if r.Active() {
			active = append(active, r)
		}
	}
	return active
}

// renderErrorMessage maps a render failure to its category-specific
// client-facing message.
func renderErrorMessage(err error) string {
	var terr *template.Error
	if errors.As(err, &terr) {
		switch terr.Kind {
		case template.ErrUndefinedReference:
			return "undefined template reference: " + terr.Expr
		case template.ErrSyntax:
			return fmt.Sprintf("template syntax error in %q: %s", terr.Expr, terr.Message)
		}
	}
	return "template rendering failed: " + err.Error()
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, msg)
}
