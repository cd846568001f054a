// Package yamlutil wraps YAML parsing behind a minimal interface so the
// external dependency stays in one place.
//
// All entry points validate their input before touching the parser: nil or
// oversized payloads are rejected up front with sentinel errors that callers
// can match with errors.Is.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize bounds the accepted YAML payload. Configuration files are
// small; anything beyond this is rejected rather than parsed.
const MaxInputSize = 1 << 20 // 1 MiB

var (
	// ErrNilData is returned when the YAML payload is nil.
	ErrNilData = errors.New("yaml data is nil")

	// ErrNilDestination is returned when the unmarshal target is nil.
	ErrNilDestination = errors.New("yaml destination is nil")

	// ErrInputTooLarge is returned when the payload exceeds MaxInputSize.
	ErrInputTooLarge = errors.New("yaml input exceeds size limit")
)

func validateInput(data []byte, v any) error {
	if data == nil {
		return ErrNilData
	}
	if v == nil {
		return ErrNilDestination
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	return nil
}

// Unmarshal parses YAML data into v, ignoring unknown fields.
func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

// UnmarshalStrict parses YAML data into v and fails on unknown fields.
// Configuration files go through this path so typos surface as errors
// instead of being silently dropped.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	return yaml.UnmarshalWithOptions(data, v, yaml.Strict())
}

// Marshal serializes v to YAML.
func Marshal(v any) ([]byte, error) {
	if v == nil {
		return nil, ErrNilDestination
	}
	return yaml.Marshal(v)
}
