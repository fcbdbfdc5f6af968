// Package actions executes the side effects attached to a selected
// response: DELAY blocks the handler, CALLBACK posts to an external URL,
// STORE writes to the ephemeral keyed store. Actions run in declaration
// order and their failures are logged, never surfaced to the client.
package actions

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/getmockd/reflectd/pkg/logging"
	"github.com/getmockd/reflectd/pkg/session"
)

// Kind identifies an action type.
type Kind string

const (
	KindDelay    Kind = "DELAY"
	KindCallback Kind = "CALLBACK"
	KindStore    Kind = "STORE"
)

// Kinds lists every supported action kind, for validation messages.
var Kinds = []Kind{KindDelay, KindCallback, KindStore}

// IsValid reports whether k is a known action kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindDelay, KindCallback, KindStore:
		return true
	}
	return false
}

// Action is one side effect attached to a response.
type Action struct {
	Kind      Kind
	Arguments []string
}

// Inputs carries the per-request data the dispatcher hands to actions.
type Inputs struct {
	Namespace       string // keyed store namespace for STORE writes
	RequestBody     string
	RenderedContent string
}

// Config configures an Executor.
type Config struct {
	MaxDelay   time.Duration // DELAY ceiling; 0 means unlimited
	SessionTTL time.Duration // STORE entry lifetime; 0 means no expiry
	Client     *http.Client  // callback client; defaults to a 5s-timeout client
	Store      *session.Store
	Logger     *slog.Logger
}

const callbackTimeout = 5 * time.Second

// Executor runs response actions. It is safe for concurrent use.
type Executor struct {
	maxDelay   time.Duration
	sessionTTL time.Duration
	client     *http.Client
	store      *session.Store
	log        *slog.Logger

	sleep func(time.Duration) // swapped out in tests
}

// NewExecutor creates an executor from cfg, filling in defaults for the
// client and logger.
func NewExecutor(cfg Config) *Executor {
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: callbackTimeout}
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Executor{
		maxDelay:   cfg.MaxDelay,
		sessionTTL: cfg.SessionTTL,
		client:     client,
		store:      cfg.Store,
		log:        log,
		sleep:      time.Sleep,
	}
}

// Run executes the actions in declaration order, synchronously. A failing
// action is logged and skipped; later actions still run.
func (e *Executor) Run(acts []Action, in Inputs) {
	for _, a := range acts {
		switch a.Kind {
		case KindDelay:
			e.runDelay(a.Arguments)
		case KindCallback:
			e.runCallback(a.Arguments, in)
		case KindStore:
			e.runStore(a.Arguments, in)
		default:
			e.log.Warn("skipping unknown action kind", "kind", string(a.Kind))
		}
	}
}
