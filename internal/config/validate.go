package config

import (
	"fmt"
	"strings"
	"time"
)

// oneOf checks value against a closed set of allowed values.
func oneOf(name, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("invalid %s: %q (must be: %s)", name, value, strings.Join(allowed, ", "))
}

func positive(name string, d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%s must be greater than 0", name)
	}
	return nil
}
