package handler

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy strips all HTML from user supplied free text before it is
// stored or echoed back.
var strictPolicy = bluemonday.StrictPolicy()

func sanitize(value string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(value))
}

func sanitizePtr(value *string) *string {
	if value == nil {
		return nil
	}
	clean := sanitize(*value)
	return &clean
}
