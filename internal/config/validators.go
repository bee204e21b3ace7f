package config

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Validator normalizes a configuration value. An empty value yields the
// default; an invalid one yields an error and validate falls back to the
// default with a warning.
type Validator func(key, value, defaultValue string) (normalized string, err error)

var (
	validatorsMu sync.RWMutex
	validators   = make(map[string]Validator)
)

// RegisterValidator registers a validator for a configuration key.
// Panics if a validator is already registered for the key.
func RegisterValidator(key string, validator Validator) {
	validatorsMu.Lock()
	defer validatorsMu.Unlock()
	if _, exists := validators[key]; exists {
		panic(fmt.Sprintf("validator already registered for key: %s", key))
	}
	validators[key] = validator
}

func getValidator(key string) Validator {
	validatorsMu.RLock()
	defer validatorsMu.RUnlock()
	return validators[key]
}

// IntRangeValidator accepts integers in [lo, hi].
func IntRangeValidator(lo, hi int) Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return "", fmt.Errorf("%q is not an integer", value)
		}
		if n < lo || n > hi {
			if hi == math.MaxInt {
				return "", fmt.Errorf("%d must be at least %d", n, lo)
			}
			return "", fmt.Errorf("%d must be between %d and %d", n, lo, hi)
		}
		return strconv.Itoa(n), nil
	}
}

// PositiveIntValidator accepts integers greater than zero.
func PositiveIntValidator() Validator {
	return IntRangeValidator(1, math.MaxInt)
}

// EnumValidator accepts one of values, case-insensitively, and returns it
// lowercased.
func EnumValidator(values ...string) Validator {
	allowed := make(map[string]bool, len(values))
	for _, v := range values {
		allowed[v] = true
	}
	listed := append([]string(nil), values...)
	sort.Strings(listed)
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		lower := strings.ToLower(strings.TrimSpace(value))
		if !allowed[lower] {
			return "", fmt.Errorf("%q must be one of: %s", value, strings.Join(listed, ", "))
		}
		return lower, nil
	}
}

// BoolValidator accepts 1/0, true/false, yes/no and on/off.
func BoolValidator() Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		normalized := normalizeBool(value)
		if normalized != "true" && normalized != "false" {
			return "", fmt.Errorf("%q is not a boolean (1, true, yes, on, 0, false, no, off)", value)
		}
		return normalized, nil
	}
}

// URLValidator accepts absolute http(s) URLs and drops a trailing slash.
func URLValidator() Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		u, err := url.Parse(strings.TrimSpace(value))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "", fmt.Errorf("%q is not an absolute http(s) URL", value)
		}
		return strings.TrimRight(u.String(), "/"), nil
	}
}

func initValidators() {
	RegisterValidator("api_base_url", URLValidator())
	RegisterValidator("request_timeout", IntRangeValidator(1, 300))
	RegisterValidator("list_concurrency", IntRangeValidator(1, 16))
	RegisterValidator("start_page", PositiveIntValidator())
	RegisterValidator("logging_max_files", PositiveIntValidator())

	enums := map[string][]string{
		"storage_backend":       {"toml", "sqlite"},
		"default_sort_by":       {"name", "created"},
		"default_sort_order":    {"asc", "desc"},
		"default_status_filter": {"all", "alive", "dead", "unknown"},
		"logging_level":         {"debug", "info", "warn", "error"},
	}
	for key, values := range enums {
		RegisterValidator(key, EnumValidator(values...))
	}

	for _, key := range []string{"logging_enabled", "debug", "quiet"} {
		RegisterValidator(key, BoolValidator())
	}
}

// normalizeBool converts the accepted boolean spellings to "true"/"false".
// Anything else is returned unchanged.
func normalizeBool(val string) string {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true", "yes", "on":
		return "true"
	case "0", "false", "no", "off":
		return "false"
	default:
		return val
	}
}
