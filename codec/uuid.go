package codec

import (
	"context"

	"github.com/google/uuid"

	fbskema "github.com/reoring/fbskema"
)

// UUIDString converts UUID strings to uuid.UUID. Decode accepts the forms
// uuid.Parse accepts; Encode emits the canonical lowercase hyphenated form.
func UUIDString() fbskema.Codec[string, uuid.UUID] {
	return uuidCodec{in: wireString{format: "uuid"}, out: domainValue[uuid.UUID]{format: "uuid"}}
}

type uuidCodec struct {
	in  wireString
	out domainValue[uuid.UUID]
}

func (c uuidCodec) In() fbskema.Schema[string]     { return c.in }
func (c uuidCodec) Out() fbskema.Schema[uuid.UUID] { return c.out }

func (c uuidCodec) Decode(ctx context.Context, a string) (uuid.UUID, error) {
	id, err := uuid.Parse(a)
	if err != nil {
		return uuid.Nil, invalid("uuid", err)
	}
	return id, nil
}

func (c uuidCodec) Encode(ctx context.Context, b uuid.UUID) (string, error) { return b.String(), nil }
