// Package parse holds parse-or-default combinators for untrusted query values.
// A Parser reports ok=false for anything it does not accept; callers then
// fall back to a default instead of failing the request.
package parse

import (
	"math"
	"strconv"
	"strings"
)

type Parser[T any] func(raw string) (T, bool)

// OrDefault returns p(raw) when it is accepted, def otherwise.
func OrDefault[T any](raw string, p Parser[T], def T) T {
	if v, ok := p(raw); ok {
		return v
	}
	return def
}

// Optional returns nil when raw is rejected.
func Optional[T any](raw string, p Parser[T]) *T {
	if v, ok := p(raw); ok {
		return &v
	}
	return nil
}

func PositiveInt(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func NonNegativeFloat(raw string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func NonEmpty(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	return s, s != ""
}

func Bool(raw string) (bool, bool) {
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, false
	}
	return b, true
}

// OneOf accepts only the listed values (exact match after trimming).
func OneOf(allowed ...string) Parser[string] {
	return func(raw string) (string, bool) {
		s := strings.TrimSpace(raw)
		for _, a := range allowed {
			if s == a {
				return s, true
			}
		}
		return "", false
	}
}
