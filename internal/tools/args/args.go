package args

import (
	"math"
	"strings"

	"github.com/teemow/google-workspace-mcp/internal/workspace"
)

// RequiredString returns a non-blank string argument.
func RequiredString(args map[string]any, name string) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return "", workspace.Validation("%s is required", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", workspace.Validation("%s must be a string", name)
	}
	if strings.TrimSpace(s) == "" {
		return "", workspace.Validation("%s cannot be empty", name)
	}
	return s, nil
}

// OptionalString returns the argument, or "" when it is absent.
func OptionalString(args map[string]any, name string) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", workspace.Validation("%s must be a string", name)
	}
	return s, nil
}

// OptionalBool returns the argument, or false when it is absent.
func OptionalBool(args map[string]any, name string) (bool, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, workspace.Validation("%s must be a boolean", name)
	}
	return b, nil
}

// OptionalPositiveNumber returns the argument and whether it was given. A
// given value must be greater than zero.
func OptionalPositiveNumber(args map[string]any, name string) (float64, bool, error) {
	f, present, err := optionalNumber(args, name)
	if err != nil || !present {
		return 0, present, err
	}
	if f <= 0 {
		return 0, true, workspace.Validation("%s must be greater than 0, got %v", name, f)
	}
	return f, true, nil
}

// OptionalPositiveInt returns the argument and whether it was given. A given
// value must be a whole number of at least 1. Values beyond MaxInt32 are
// capped; callers clamp further to their own page limits.
func OptionalPositiveInt(args map[string]any, name string) (int64, bool, error) {
	f, present, err := optionalNumber(args, name)
	if err != nil || !present {
		return 0, present, err
	}
	if f < 1 {
		return 0, true, workspace.Validation("%s must be at least 1, got %v", name, f)
	}
	if f != math.Trunc(f) {
		return 0, true, workspace.Validation("%s must be a whole number, got %v", name, f)
	}
	return int64(min(f, math.MaxInt32)), true, nil
}

func optionalNumber(args map[string]any, name string) (float64, bool, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return 0, false, nil
	}
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, true, workspace.Validation("%s must be a number", name)
	}
	return f, true, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	return 0, false
}
