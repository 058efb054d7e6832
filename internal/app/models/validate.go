package models

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
)

// validate is shared; validator.Validate caches struct metadata and is
// safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a decoded record against its validate tags.
func Validate(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("response failed validation: %w", err)
	}
	return nil
}

// DecodeValid decodes JSON from r into dst and validates it. Responses are
// deserialize-or-reject: a body missing required fields never reaches the
// app layer. Unknown fields are ignored, matching the backend's habit of
// growing responses without versioning.
func DecodeValid(r io.Reader, dst interface{}) error {
	if err := json.NewDecoder(r).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return Validate(dst)
}

// DecodeValidSlice decodes a JSON array from r into dst (a pointer to a
// slice) and validates every element.
func DecodeValidSlice[T any](r io.Reader, dst *[]T) error {
	if err := json.NewDecoder(r).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	for i := range *dst {
		if err := validate.Struct((*dst)[i]); err != nil {
			return fmt.Errorf("response element %d failed validation: %w", i, err)
		}
	}
	return nil
}
