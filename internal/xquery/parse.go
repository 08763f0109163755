package xquery

import (
	"net/url"
	"strconv"
	"strings"
)

func ParseInt(query url.Values, name string, defaultValue int) int {
	value := strings.TrimSpace(query.Get(name))
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return parsed
}

// ParseIntMin is ParseInt clamped to at least minValue.
func ParseIntMin(query url.Values, name string, minValue int) int {
	return max(minValue, ParseInt(query, name, minValue))
}
