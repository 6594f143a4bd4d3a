package config

import (
	"fmt"
	"io"
	"reflect"
	"strings"
)

// GetKnownKeys returns all valid configuration keys based on the schema
func GetKnownKeys() map[string]bool {
	known := make(map[string]bool)
	addKnownKeysByType("", reflect.TypeOf(ConfigSchema{}), known)
	return known
}

// addKnownKeysByType recursively adds keys by examining the struct type
func addKnownKeysByType(prefix string, t reflect.Type, known map[string]bool) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// Convert the key to lowercase since viper lowercases all keys
		key = strings.ToLower(key)
		known[key] = true

		switch field.Type.Kind() {
		case reflect.Struct:
			if field.Type.String() != "time.Time" {
				addKnownKeysByType(key, field.Type, known)
			}
		case reflect.Map:
			// For simple maps allow any nested fields
			known[key+".*"] = true
		}
	}
}

// matchesWildcard checks if a key matches a wildcard pattern
func matchesWildcard(pattern, key string) bool {
	// Convert both to lowercase for case-insensitive matching
	pattern = strings.ToLower(pattern)
	key = strings.ToLower(key)

	// Split into parts
	patternParts := strings.Split(pattern, ".")
	keyParts := strings.Split(key, ".")

	// Must have same number of parts
	if len(patternParts) != len(keyParts) {
		return false
	}

	// Check each part
	for i := range patternParts {
		if patternParts[i] != "*" && patternParts[i] != keyParts[i] {
			return false
		}
	}
	return true
}

// IsKnownKey checks if a key is known, including wildcard matches
func IsKnownKey(known map[string]bool, key string) bool {
	// Check direct match first
	if known[strings.ToLower(key)] {
		return true
	}

	// Check wildcard patterns
	for pattern := range known {
		if strings.Contains(pattern, "*") && matchesWildcard(pattern, key) {
			return true
		}
	}
	return false
}

// PrintConfig prints the configuration with optional sources in YAML format
func (s *ConfigSchema) PrintConfig(w io.Writer, includeSources bool) {
	s.printValue(w, reflect.ValueOf(*s), "", "", includeSources, 0)
}

func (s *ConfigSchema) printValue(w io.Writer, v reflect.Value, key, path string, includeSources bool, indent int) {
	t := v.Type()

	switch v.Kind() {
	case reflect.Struct:
		if key != "" {
			fmt.Fprintf(w, "%s%s:\n", strings.Repeat("  ", indent), key)
			indent++
		}
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() || field.Tag.Get("mapstructure") == "" {
				continue
			}
			fieldValue := v.Field(i)
			if !fieldValue.IsZero() {
				tag := field.Tag.Get("mapstructure")
				childPath := tag
				if path != "" {
					childPath = path + "." + tag
				}
				s.printValue(w, fieldValue, tag, childPath, includeSources, indent)
			}
		}

	default:
		if isSecretKey(key) {
			fmt.Fprintf(w, "%s%s: [REDACTED]", strings.Repeat("  ", indent), key)
		} else {
			fmt.Fprintf(w, "%s%s: %v", strings.Repeat("  ", indent), key, v.Interface())
		}
		s.printSourceInfo(w, path, includeSources)
		fmt.Fprintln(w)
	}
}

func (s *ConfigSchema) printSourceInfo(w io.Writer, path string, includeSources bool) {
	if !includeSources {
		return
	}

	if sources, ok := s.sources[strings.ToLower(path)]; ok && len(sources) > 0 {
		fmt.Fprintf(w, " # (%s)", sources[len(sources)-1].source)
		return
	}
	fmt.Fprintf(w, " # (default)")
}

func isSecretKey(key string) bool {
	key = strings.ToLower(key)
	return strings.HasSuffix(key, "key") ||
		strings.Contains(key, "secret") ||
		strings.Contains(key, "password") ||
		strings.Contains(key, "token")
}
