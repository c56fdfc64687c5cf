package reqscope

import (
	"context"
	"sync"

	"github.com/dmitrymomot/reqscope/pkg/cloudtrace"
	"github.com/dmitrymomot/reqscope/pkg/logger"
)

const (
	// TraceHeader is the default inbound header carrying the trace context.
	TraceHeader = cloudtrace.Header
	// TraceAttribute is the request annotation key holding the derived trace id.
	TraceAttribute = "x-cloud-trace-context"
)

// Request is the handle of a request being processed.
type Request interface {
	// Header returns the first value of the named header, or "" when absent.
	// Name matching is case-insensitive.
	Header(name string) string
	// Attribute returns the annotation stored under key.
	Attribute(key string) (any, bool)
	// SetAttribute stores an annotation under key.
	SetAttribute(key string, value any)
}

// Scope tracks the active requests of one unit of work, most recent last,
// and the trace id derived for the outermost of them.
type Scope struct {
	opts *options

	mu       sync.RWMutex
	stack    []Request
	traceID  string
	hasTrace bool
}

// New returns an idle Scope.
func New(opts ...Option) *Scope {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logger.Discard()
	}
	return &Scope{opts: o}
}

// Enter pushes r onto the scope. When the scope was idle the trace id is
// derived from r and replaces the previous one. A nil r is ignored.
// reason is informational only.
func (s *Scope) Enter(ctx context.Context, r Request, reason any) {
	if s == nil || r == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s.mu.Lock()
	if len(s.stack) == 0 {
		s.traceID, s.hasTrace = s.deriveTraceID(ctx, r)
	}
	s.stack = append(s.stack, r)
	depth, id := len(s.stack), s.traceID
	s.mu.Unlock()

	s.opts.logger.DebugContext(ctx, "enter scope",
		logger.Reason(reason),
		logger.Depth(depth),
		logger.TraceID(id),
	)
}

// Exit pops the most recent request. The popped entry is not compared with r.
// A nil r is ignored. Exiting an idle scope follows the configured ExitPolicy.
func (s *Scope) Exit(ctx context.Context, r Request) {
	if s == nil || r == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s.mu.Lock()
	n := len(s.stack)
	if n == 0 {
		s.mu.Unlock()
		if s.opts.policy == ExitPanic {
			panic(ErrUnbalancedExit)
		}
		s.opts.logger.WarnContext(ctx, "exit scope without matching enter", logger.Error(ErrUnbalancedExit))
		return
	}
	s.stack[n-1] = nil
	s.stack = s.stack[:n-1]
	s.mu.Unlock()

	s.opts.logger.DebugContext(ctx, "exit scope", logger.Depth(n-1))
}

// CurrentRequest returns the most recently entered request, or nil when idle.
func (s *Scope) CurrentRequest() Request {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

// TraceID returns the trace id set by the most recent outermost Enter.
// It stays available after the scope becomes idle.
func (s *Scope) TraceID() (string, bool) {
	if s == nil {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.traceID, s.hasTrace
}

// Depth returns the number of active requests.
func (s *Scope) Depth() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stack)
}

// deriveTraceID prefers the cached annotation, then the trace header, then
// the configured fallbacks. Whatever it finds is cached on r.
func (s *Scope) deriveTraceID(ctx context.Context, r Request) (string, bool) {
	if v, ok := r.Attribute(TraceAttribute); ok {
		if id, ok := v.(string); ok && id != "" {
			return id, true
		}
	}

	id := cloudtrace.TraceID(r.Header(s.opts.header))
	if id == "" {
		for _, fb := range s.opts.fallbacks {
			if v, ok := fb(ctx, r); ok && v != "" {
				id = v
				break
			}
		}
	}
	if id == "" {
		return "", false
	}

	r.SetAttribute(TraceAttribute, id)
	return id, true
}

