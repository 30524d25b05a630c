// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/davetashner/sheetboard/internal/pipeline"
)

// GetValue retrieves a value from a Config by dot-notation key path.
// It returns scalar values as-is, and maps/slices for intermediate nodes.
func GetValue(cfg *Config, keyPath string) (any, error) {
	m, err := configToMap(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return navigateMap(m, keyPath)
}

// SetValue sets a value in a raw YAML map by dot-notation key path,
// creating intermediate maps as needed.
func SetValue(data map[string]any, keyPath string, rawValue string) error {
	parts := strings.Split(keyPath, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		child, ok := current[part]
		if !ok {
			next := make(map[string]any)
			current[part] = next
			current = next
			continue
		}
		next, ok := child.(map[string]any)
		if !ok {
			return fmt.Errorf("key %q is not a map", part)
		}
		current = next
	}
	current[parts[len(parts)-1]] = coerceValue(rawValue)
	return nil
}

// FlattenMap recursively flattens a nested map to dot-notation keys.
func FlattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			for sk, sv := range FlattenMap(sub, key) {
				result[sk] = sv
			}
		} else {
			result[key] = v
		}
	}
	return result
}

// ValidateKeyPath checks that a dot-notation key path names a settable
// scalar of Config.
func ValidateKeyPath(keyPath string) error {
	parts := strings.Split(keyPath, ".")
	if keyPath == "" {
		return fmt.Errorf("empty key path")
	}

	topKeys := yamlKeys(reflect.TypeOf(Config{}))
	first := parts[0]
	if !topKeys[first] {
		return fmt.Errorf("unknown key %q; valid top-level keys: %s", first, joinKeys(topKeys))
	}

	switch first {
	case "source":
		return checkSub(keyPath, parts, reflect.TypeOf(SourceConfig{}))
	case "market":
		if len(parts) == 2 && parts[1] == "symbols" {
			return fmt.Errorf("market.symbols cannot be set via config set; edit %s directly", FileName)
		}
		return checkSub(keyPath, parts, reflect.TypeOf(MarketConfig{}))
	case "views":
		if len(parts) < 3 {
			return fmt.Errorf("views requires a view name and field (e.g. views.mindshare.color)")
		}
		if _, ok := pipeline.DefaultViews()[parts[1]]; !ok {
			return fmt.Errorf("unknown view %q; available views: %s",
				parts[1], strings.Join(pipeline.ViewNames(pipeline.DefaultViews()), ", "))
		}
		if parts[2] == "weights" {
			if len(parts) != 4 || (parts[3] != "a" && parts[3] != "b") {
				return fmt.Errorf("weights are set per component: views.%s.weights.a or .b", parts[1])
			}
			return nil
		}
		return checkSub(keyPath, parts[1:], reflect.TypeOf(ViewConfig{}))
	}

	if len(parts) > 1 {
		return fmt.Errorf("key %q is a scalar; cannot use sub-keys", first)
	}
	return nil
}

func checkSub(keyPath string, parts []string, t reflect.Type) error {
	if len(parts) != 2 {
		return fmt.Errorf("key path %q must name one field of %s", keyPath, parts[0])
	}
	keys := yamlKeys(t)
	if !keys[parts[1]] {
		return fmt.Errorf("unknown field %q; valid fields: %s", parts[1], joinKeys(keys))
	}
	return nil
}

// configToMap marshals a Config to a map via YAML round-trip.
func configToMap(cfg *Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = make(map[string]any)
	}
	return m, nil
}

// navigateMap traverses a nested map using a dot-notation key path.
func navigateMap(m map[string]any, keyPath string) (any, error) {
	var current any = m
	for _, part := range strings.Split(keyPath, ".") {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("key %q: parent is not a map", part)
		}
		val, exists := cm[part]
		if !exists {
			return nil, fmt.Errorf("key %q not found", keyPath)
		}
		current = val
	}
	return current, nil
}

// coerceValue parses a string into bool, int, float64, or keeps it as string.
func coerceValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

// yamlKeys extracts yaml tag names from a struct type.
func yamlKeys(t reflect.Type) map[string]bool {
	keys := make(map[string]bool)
	for i := range t.NumField() {
		tag := t.Field(i).Tag.Get("yaml")
		if tag == "" || tag == "-" {
			continue
		}
		if name := strings.Split(tag, ",")[0]; name != "" {
			keys[name] = true
		}
	}
	return keys
}

func joinKeys(m map[string]bool) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
