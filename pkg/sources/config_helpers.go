package sources

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ConfigString returns the trimmed string value for key from source.Config or a fallback.
func ConfigString(src Source, key, fallback string) string {
	if src.Config != nil {
		if raw, ok := src.Config[key]; ok {
			if val, ok := raw.(string); ok {
				if trimmed := strings.TrimSpace(val); trimmed != "" {
					return trimmed
				}
			}
		}
	}
	return fallback
}

// ConfigInt returns the integer value for key from source.Config or a fallback.
// YAML ints, JSON numbers and numeric strings are accepted.
func ConfigInt(src Source, key string, fallback int) int {
	if src.Config == nil {
		return fallback
	}
	switch v := src.Config[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

const (
	ConfigUserAgentKey    = "user_agent"
	ConfigAcceptKey       = "accept"
	ConfigCacheControlKey = "cache_control"
)

// Headers builds the optional request headers from a source config (skips empty values).
func Headers(src Source) map[string]string {
	headers := make(map[string]string, 3)

	if v := ConfigString(src, ConfigUserAgentKey, ""); v != "" {
		headers["User-Agent"] = v
	}
	if v := ConfigString(src, ConfigAcceptKey, ""); v != "" {
		headers["Accept"] = v
	}
	if v := ConfigString(src, ConfigCacheControlKey, ""); v != "" {
		headers["Cache-Control"] = v
	}

	return headers
}
