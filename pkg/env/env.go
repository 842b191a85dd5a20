// Package env reads process environment values that live outside the
// envconfig-managed configuration, such as the platform-injected PORT.
package env

import "os"

// Get returns the named variable's value, or fallback when it is unset or
// empty.
func Get(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
