// Package handlers provides HTTP request handlers for the API endpoints.
// It defines the response formatting and error categorization for the
// query visualization pipeline.
package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/queryviz/core/internal/models"
	"github.com/queryviz/core/internal/parser"
)

type GraphResponse struct {
	Nodes []*models.TableNode `json:"nodes"`
	Edges []models.JoinEdge   `json:"edges"`
}

type ParseResponse struct {
	Parsed *models.ParsedQuery `json:"parsed"`
	Graph  GraphResponse       `json:"graph"`
}

// ParseHandler parses the SQL query in the request body and returns its
// structural description plus the resolved graph, without rendering.
func ParseHandler(w http.ResponseWriter, r *http.Request) {
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

	w.Header().Set("Content-Type", "application/json")

	encoder := json.NewEncoder(w)
	if r.URL.Query().Get("pretty") == "true" {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(ParseResponse{Parsed: parsed, Graph: newGraphResponse(graph)}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// newGraphResponse serializes a graph with nodes in insertion order.
func newGraphResponse(graph *models.SQLGraph) GraphResponse {
	resp := GraphResponse{
		Nodes: []*models.TableNode{},
		Edges: []models.JoinEdge{},
	}
	for _, name := range graph.NodeNames() {
		resp.Nodes = append(resp.Nodes, graph.Nodes[name])
	}
	resp.Edges = append(resp.Edges, graph.Edges...)
	return resp
}
