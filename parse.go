package fbskema

import (
	"context"
	"errors"
	"io"

	eng "github.com/reoring/fbskema/internal/engine"
)

// ParseFrom is the primary entry point. It consumes tokens from src under the
// enforcement options, builds a wire value, and delegates to s.
func ParseFrom[T any](ctx context.Context, s Schema[T], src Source, opts ...ParseOpt) (T, error) {
	var zero T
	if s == nil {
		return zero, singleIssue(CodeParseError, "nil schema")
	}
	opt := lastOpt(opts)
	ctx = withParseOpt(ctx, opt)
	v, err := decodeAnyFromSource(src, opt)
	if err != nil {
		return zero, toIssues(err)
	}
	return s.Parse(ctx, v)
}

// ParseFromWithMeta is ParseFrom that also returns presence metadata.
// Presence collection is on unless the options configure it explicitly.
func ParseFromWithMeta[T any](ctx context.Context, s Schema[T], src Source, opts ...ParseOpt) (Decoded[T], error) {
	var zero Decoded[T]
	if s == nil {
		return zero, singleIssue(CodeParseError, "nil schema")
	}
	opt := lastOpt(opts)
	if !opt.Presence.Collect && len(opt.Presence.Include) == 0 && len(opt.Presence.Exclude) == 0 {
		opt.Presence.Collect = true
	}
	ctx = withParseOpt(ctx, opt)
	v, err := decodeAnyFromSource(src, opt)
	if err != nil {
		return zero, toIssues(err)
	}
	dm, err := s.ParseWithMeta(ctx, v)
	dm.Presence = applyPresenceOptions(mergePresence(dm.Presence, collectPresenceMapFromValue(v)), opt.Presence)
	return dm, err
}

// StreamParse validates input read from r. When MaxBytes is set the size cap
// is enforced before decoding.
func StreamParse[T any](ctx context.Context, s Schema[T], r io.Reader, opts ...ParseOpt) (T, error) {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 {
		var zero T
		data, err := io.ReadAll(io.LimitReader(r, opt.MaxBytes+1))
		if err != nil {
			return zero, singleIssue(CodeParseError, err.Error())
		}
		if int64(len(data)) > opt.MaxBytes {
			return zero, singleIssue(CodeTruncated, "max bytes exceeded")
		}
		return ParseFrom(ctx, s, JSONBytes(data), opts...)
	}
	return ParseFrom(ctx, s, JSONReader(r), opts...)
}

// DecodeWire decodes src into a wire value without schema validation,
// applying the same enforcement as ParseFrom.
func DecodeWire(src Source, opts ...ParseOpt) (any, error) {
	v, err := decodeAnyFromSource(src, lastOpt(opts))
	if err != nil {
		return nil, toIssues(err)
	}
	return v, nil
}

func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}

func decodeAnyFromSource(src Source, opt ParseOpt) (any, error) {
	enforced := eng.WrapWithEnforcement(engineTokenSource(src), enforceOptions(opt))
	if src.NumberMode() == NumberFloat64 {
		return eng.DecodeAnyFromSourceAsFloat64(enforced)
	}
	return eng.DecodeAnyFromSource(enforced)
}

func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return Issues{{Code: ie.Code, Path: ie.Path, Message: ie.Message}}
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return Issues{{Path: "/", Code: CodeParseError, Message: "unexpected end of input", Cause: err}}
	}
	return Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
}

func singleIssue(code, msg string) Issues { return Issues{{Path: "/", Code: code, Message: msg}} }
