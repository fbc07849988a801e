package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/queryviz/core/internal/models"
	"github.com/queryviz/core/internal/parser"
	"github.com/queryviz/core/internal/render"
)

type VisualizeResponse struct {
	SVG    string              `json:"svg"`
	Parsed *models.ParsedQuery `json:"parsed"`
}

// VisualizeHandler runs the full pipeline on the SQL query in the request
// body (gate, parse, graph build, render) and returns the SVG diagram
// alongside the parsed structure.
func VisualizeHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	parsed, err := parser.ParseSQL(string(body))
	if err != nil {
		writeQueryError(w, err)
		return
	}

	graph := parser.BuildGraph(parsed)

	svg, err := render.RenderSVG(graph)
	if err != nil {
		writeQueryError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(VisualizeResponse{SVG: svg, Parsed: parsed}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
