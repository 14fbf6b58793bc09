package feedback

import (
	"time"

	"github.com/google/uuid"
	fbskema "github.com/reoring/fbskema"
	g "github.com/reoring/fbskema/dsl"
)

// ResponseValue wraps the answer to one question. Value is free-form.
type ResponseValue struct {
	Value any `json:"value"`
}

type Response struct {
	ID         uuid.UUID                `json:"id"`
	Values     map[string]ResponseValue `json:"values"`
	Status     ResponseStatus           `json:"status"`
	UserID     uuid.UUID                `json:"user_id"`
	InsertedAt time.Time                `json:"inserted_at"`
	UpdatedAt  time.Time                `json:"updated_at"`
}

// UserResponseCreate is a response submitted along with a new record,
// discriminated by "status". Drafts cannot be created this way.
type UserResponseCreate interface {
	ResponseStatus() ResponseStatus
	ResponseUserID() uuid.UUID
}

type UserSubmittedResponseCreate struct {
	UserID uuid.UUID                `json:"user_id"`
	Values map[string]ResponseValue `json:"values"`
	Status ResponseStatus           `json:"status"`
}

type UserDiscardedResponseCreate struct {
	UserID uuid.UUID                `json:"user_id"`
	Values map[string]ResponseValue `json:"values"`
	Status ResponseStatus           `json:"status"`
}

func (UserSubmittedResponseCreate) ResponseStatus() ResponseStatus { return ResponseStatusSubmitted }
func (r UserSubmittedResponseCreate) ResponseUserID() uuid.UUID    { return r.UserID }
func (UserDiscardedResponseCreate) ResponseStatus() ResponseStatus { return ResponseStatusDiscarded }
func (r UserDiscardedResponseCreate) ResponseUserID() uuid.UUID    { return r.UserID }

var (
	responseValueSchema = g.ObjectOf[ResponseValue]().
				Field("value", g.SchemaOf(g.Any()).Nullable()).
				UnknownStrip().
				MustBind()

	responseValues = g.Map(responseValueSchema)

	responseSchema = g.ObjectOf[Response]().
			Field("id", g.SchemaOf(g.UUID())).Required().
			Field("values", g.SchemaOf(responseValues).Nullable()).
			Field("status", g.SchemaOf(g.Enum(ResponseStatusDraft, ResponseStatusSubmitted, ResponseStatusDiscarded))).Required().
			Field("user_id", g.SchemaOf(g.UUID())).Required().
			Field("inserted_at", g.SchemaOf(g.Time())).Required().
			Field("updated_at", g.SchemaOf(g.Time())).Required().
			UnknownStrip().
			MustBind()

	userResponseCreateSchema = g.Union[UserResponseCreate]("status",
		g.Case[UserResponseCreate]("submitted", g.ObjectOf[UserSubmittedResponseCreate]().
			Field("user_id", g.SchemaOf(g.UUID())).Required().
			Field("values", g.SchemaOf(responseValues)).Required().
			Field("status", g.SchemaOf(g.Literal(ResponseStatusSubmitted))).Required().
			UnknownStrip().
			MustBind()),
		g.Case[UserResponseCreate]("discarded", g.ObjectOf[UserDiscardedResponseCreate]().
			Field("user_id", g.SchemaOf(g.UUID())).Required().
			Field("values", g.SchemaOf(responseValues).Nullable()).
			Field("status", g.SchemaOf(g.Literal(ResponseStatusDiscarded))).Required().
			UnknownStrip().
			MustBind()),
	)
)

func ResponseSchema() fbskema.Schema[Response] { return responseSchema }

// UserResponseCreateSchema dispatches on "status": submitted requires values,
// discarded accepts them as optional.
func UserResponseCreateSchema() fbskema.Schema[UserResponseCreate] {
	return userResponseCreateSchema
}
