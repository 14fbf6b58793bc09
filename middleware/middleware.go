// Package middleware validates JSON request bodies against a schema before
// they reach a net/http handler.
package middleware

import (
	"context"
	"net/http"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	fbskema "github.com/reoring/fbskema"
)

// ctxKeyDecoded is a typed context key for storing Decoded[T].
// Using a generic struct type ensures uniqueness per T.
type ctxKeyDecoded[T any] struct{}

// ContextWithDecoded attaches a Decoded[T] to the context.
func ContextWithDecoded[T any](ctx context.Context, db fbskema.Decoded[T]) context.Context {
	return context.WithValue(ctx, ctxKeyDecoded[T]{}, db)
}

// DecodedFromContext retrieves a Decoded[T] from context.
func DecodedFromContext[T any](ctx context.Context) (fbskema.Decoded[T], bool) {
	v, ok := ctx.Value(ctxKeyDecoded[T]{}).(fbskema.Decoded[T])
	return v, ok
}

// DefaultParseOpt returns the defaults for HTTP JSON boundaries:
// duplicate keys are errors, bodies are capped at 10 MiB, presence is kept.
func DefaultParseOpt() fbskema.ParseOpt {
	return fbskema.ParseOpt{
		Strictness: fbskema.Strictness{OnDuplicateKey: fbskema.Error},
		MaxBytes:   10 << 20,
		Presence:   fbskema.PresenceOpt{Collect: true},
	}
}

// IssueJSON is the wire form of one issue.
type IssueJSON struct {
	Path    string         `json:"path"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Hint    string         `json:"hint,omitempty"`
	Rule    string         `json:"rule,omitempty"`
	Params  map[string]any `json:"params,omitempty"`
}

// ErrorBody is the response body of a rejected request.
type ErrorBody struct {
	Issues []IssueJSON `json:"issues"`
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(issues fbskema.Issues) ErrorBody {
	out := ErrorBody{Issues: make([]IssueJSON, len(issues))}
	for i, it := range issues {
		out.Issues[i] = IssueJSON{Path: it.Path, Code: it.Code, Message: it.Message, Hint: it.Hint, Rule: it.Rule, Params: it.Params}
	}
	return out
}

type options struct {
	logger   *zap.Logger
	parseOpt fbskema.ParseOpt
}

// Option configures Validate.
type Option func(*options)

// WithLogger logs rejected requests. The default logger discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithParseOpt replaces DefaultParseOpt.
func WithParseOpt(opt fbskema.ParseOpt) Option {
	return func(o *options) { o.parseOpt = opt }
}

// Validate parses the request body with s. On success the Decoded[T] is
// stored in the request context for DecodedFromContext; otherwise the request
// is answered with 422 and the issue list (413 when the body is too large).
func Validate[T any](s fbskema.Schema[T], opts ...Option) func(http.Handler) http.Handler {
	o := options{logger: zap.NewNop(), parseOpt: DefaultParseOpt()}
	for _, fn := range opts {
		fn(&o)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			dm, err := fbskema.ParseFromWithMeta(r.Context(), s, fbskema.JSONReader(r.Body), o.parseOpt)
			if err != nil {
				iss, ok := fbskema.AsIssues(err)
				if !ok {
					o.logger.Warn("request body decode failed", zap.String("path", r.URL.Path), zap.Error(err))
					iss = fbskema.IssuesFromError("/", err)
				}
				status := statusFor(iss)
				o.logger.Info("request rejected",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("issues", len(iss)),
					zap.Int("status", status))
				WriteJSON(w, status, ErrorPayload(iss))
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithDecoded(r.Context(), dm)))
		})
	}
}

func statusFor(iss fbskema.Issues) int {
	for _, it := range iss {
		if it.Code == fbskema.CodeTruncated {
			return http.StatusRequestEntityTooLarge
		}
	}
	return http.StatusUnprocessableEntity
}

// WriteJSON writes v as a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
