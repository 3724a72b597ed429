package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// uuidParam reads a URL parameter and validates it as a UUID so malformed
// ids fail fast with a 400 instead of reaching the database.
func uuidParam(r *http.Request, name string) (string, error) {
	value := chi.URLParam(r, name)
	if _, err := uuid.Parse(value); err != nil {
		return "", fmt.Errorf("invalid %s", name)
	}
	return value, nil
}

func floatQuery(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return &value, nil
}
