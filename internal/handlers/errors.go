package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/queryviz/core/internal/parser"
	"github.com/queryviz/core/internal/render"
)

// Error categories reported to clients, one per pipeline failure kind, so a
// user can tell unsupported SQL apart from a diagram tool failure apart from
// an empty submission.
const (
	CategoryEmptyInput         = "empty_input"
	CategoryUnsupportedFeature = "unsupported_feature"
	CategoryParseFailure       = "parse_failure"
	CategoryEmptyGraph         = "empty_graph"
	CategoryRenderFailure      = "render_failure"
)

type ErrorResponse struct {
	Error    string `json:"error"`
	Category string `json:"category"`
}

// writeQueryError maps a pipeline error to its category and HTTP status.
func writeQueryError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	category := "internal"

	var unsupportedErr *parser.UnsupportedError
	var parseErr *parser.ParseError
	var renderErr *render.RenderError

	switch {
	case errors.Is(err, parser.ErrEmptyQuery):
		status, category = http.StatusBadRequest, CategoryEmptyInput
	case errors.As(err, &unsupportedErr):
		status, category = http.StatusUnprocessableEntity, CategoryUnsupportedFeature
	case errors.As(err, &parseErr):
		status, category = http.StatusUnprocessableEntity, CategoryParseFailure
	case errors.Is(err, render.ErrEmptyGraph):
		status, category = http.StatusUnprocessableEntity, CategoryEmptyGraph
	case errors.As(err, &renderErr):
		status, category = http.StatusBadGateway, CategoryRenderFailure
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error(), Category: category}); encodeErr != nil {
		log.Printf("Error encoding error response: %v", encodeErr)
	}
}
