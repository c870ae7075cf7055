package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const PrefixRun = "run"

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

// NewRunID identifies one flattening run, as returned by the service.
func NewRunID() string { return New(PrefixRun) }

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
