package domain

import "encoding/json"

// Optional carries a patch value that distinguishes "omitted" (Present
// false, leave the field untouched) from "explicitly null" (Present true,
// Valid false, clear the field) from "set" (Present and Valid true).
type Optional[T any] struct {
	Present bool
	Valid   bool
	Value   T
}

// Some builds a set Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Present: true, Valid: true, Value: v}
}

// Null builds an explicit-clear Optional.
func Null[T any]() Optional[T] {
	return Optional[T]{Present: true}
}

// Ptr returns the value as a pointer, nil when absent or null.
func (o Optional[T]) Ptr() *T {
	if !o.Present || !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// UnmarshalJSON is only invoked for keys present in the payload, so
// Present is false exactly when the caller omitted the field.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Valid = false
		var zero T
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// MarshalJSON round-trips the tri-state as value-or-null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
