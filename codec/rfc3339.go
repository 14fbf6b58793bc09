package codec

import (
	"context"
	"time"

	fbskema "github.com/reoring/fbskema"
)

// TimeRFC3339 converts RFC 3339 strings to time.Time. Timestamps without a
// zone offset are read as UTC. Encode always emits UTC with nanosecond
// precision, trailing zeros trimmed.
func TimeRFC3339() fbskema.Codec[string, time.Time] {
	return rfc3339Codec{in: wireString{format: "date-time"}, out: domainValue[time.Time]{format: "date-time"}}
}

const naiveLayout = "2006-01-02T15:04:05.999999999"

type rfc3339Codec struct {
	in  wireString
	out domainValue[time.Time]
}

func (c rfc3339Codec) In() fbskema.Schema[string]     { return c.in }
func (c rfc3339Codec) Out() fbskema.Schema[time.Time] { return c.out }

func (c rfc3339Codec) Decode(ctx context.Context, a string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, a)
	if err != nil {
		naive, nerr := time.ParseInLocation(naiveLayout, a, time.UTC)
		if nerr != nil {
			return time.Time{}, invalid("date-time", err)
		}
		return naive, nil
	}
	return t, nil
}

func (c rfc3339Codec) Encode(ctx context.Context, b time.Time) (string, error) {
	return FormatTime(b), nil
}

// FormatTime renders t the way TimeRFC3339 encodes it.
func FormatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }
