package main

import (
	"errors"
	"strings"
)

var errMissingName = errors.New("add-in name is required")

// resolveQuery picks the positional argument, falling back to the configured
// default query. An explicit empty argument matches every add-in.
func resolveQuery(args []string, defaultQuery string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if q := strings.TrimSpace(defaultQuery); q != "" {
		return q, nil
	}
	return "", errMissingName
}
