package hub

import "fmt"

// ValidationMode controls how strictly payloads are checked.
type ValidationMode int

const (
	// ValidationDisabled skips every check.
	ValidationDisabled ValidationMode = iota
	// ValidationLenient reports problems but never fails.
	ValidationLenient
	// ValidationStrict fails on the first structural problem.
	ValidationStrict
)

// Direction names which side of a provider call a payload belongs to.
type Direction string

const (
	DirectionRequest  Direction = "request"
	DirectionResponse Direction = "response"
)

// ValidationAdapter performs structural checks on provider payloads.
type ValidationAdapter struct {
	Mode ValidationMode
}

func NewValidationAdapter(mode ValidationMode) *ValidationAdapter {
	return &ValidationAdapter{Mode: mode}
}

// Validate checks payload structure for the given provider and direction.
// In lenient mode problems are swallowed; in disabled mode nothing runs.
func (v *ValidationAdapter) Validate(provider string, payload map[string]any, direction Direction) error {
	if v == nil || v.Mode == ValidationDisabled {
		return nil
	}
	err := v.check(provider, payload, direction)
	if err != nil && v.Mode == ValidationLenient {
		return nil
	}
	return err
}

func (v *ValidationAdapter) check(provider string, payload map[string]any, direction Direction) error {
	if payload == nil {
		return fmt.Errorf("%s %s payload is nil", provider, direction)
	}
	switch direction {
	case DirectionRequest:
		if _, ok := payload["model"]; !ok {
			return fmt.Errorf("%s request missing model", provider)
		}
	case DirectionResponse:
		if _, ok := payload["id"]; !ok {
			return fmt.Errorf("%s response missing id", provider)
		}
	default:
		return fmt.Errorf("unknown direction %q", direction)
	}
	return nil
}
