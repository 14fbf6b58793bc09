package fbskema

import "context"

// ApplyRefine calls Refiner[T] if s implements it.
func ApplyRefine[T any](ctx context.Context, v T, s any) error {
	if r, ok := s.(Refiner[T]); ok {
		return r.Refine(ctx, v)
	}
	return nil
}
