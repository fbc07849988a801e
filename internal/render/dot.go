// Package render turns a query graph into an SVG diagram. It generates DOT
// source and pipes it through the graphviz `dot` tool; the tool is the only
// place the core performs real I/O.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/queryviz/core/internal/models"
)

// ErrEmptyGraph is returned when the graph has no nodes to render. It is
// checked before the external tool is invoked.
var ErrEmptyGraph = errors.New("graph has no nodes to render")

// RenderError is any failure at the diagram tool boundary. Output carries
// the truncated raw tool output for diagnostics.
type RenderError struct {
	Reason string
	Output string
	Err    error
}

func (e *RenderError) Error() string {
	msg := "render failed: " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Output != "" {
		msg += " (output: " + e.Output + ")"
	}
	return msg
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// RunDot pipes DOT source into `dot -Tsvg` and returns the raw output.
// It is a variable so tests can substitute the subprocess.
var RunDot = func(dotSource string) ([]byte, error) {
	path, err := exec.LookPath("dot")
	if err != nil {
		return nil, fmt.Errorf("graphviz dot executable not found: %w", err)
	}

	cmd := exec.Command(path, "-Tsvg")
	cmd.Stdin = strings.NewReader(dotSource)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("dot failed: %w: %s", err, truncate(stderr.String(), 200))
	}
	return stdout.Bytes(), nil
}

// RenderSVG renders the graph as a standalone SVG fragment. It fails with
// ErrEmptyGraph for a graph with no nodes, and with a *RenderError for any
// failure at the tool boundary: tool missing, empty output, output that is
// not a recognizable image, or output missing the <svg> root element.
func RenderSVG(graph *models.SQLGraph) (string, error) {
	if len(graph.NodeNames()) == 0 {
		return "", ErrEmptyGraph
	}

	out, err := RunDot(BuildDOT(graph))
	if err != nil {
		return "", &RenderError{Reason: "diagram tool unavailable or failed", Err: err}
	}

	svg := string(out)
	if strings.TrimSpace(svg) == "" {
		return "", &RenderError{Reason: "diagram tool returned empty output"}
	}

	return extractSVG(svg)
}

// extractSVG pulls the <svg> element out of the tool's XML document and
// injects an xmlns declaration if absent.
func extractSVG(out string) (string, error) {
	start := strings.Index(out, "<svg")
	if start < 0 {
		// An output echoing the query back is a tool failure, not a diagram.
		if looksLikeSQL(out) {
			return "", &RenderError{Reason: "diagram tool echoed query text instead of an image", Output: truncate(out, 200)}
		}
		return "", &RenderError{Reason: "no <svg> element found in diagram tool output", Output: truncate(out, 200)}
	}

	end := strings.LastIndex(out, "</svg>")
	if end < start {
		return "", &RenderError{Reason: "could not extract <svg> element from diagram tool output", Output: truncate(out, 200)}
	}

	svg := out[start : end+len("</svg>")]
	if !strings.Contains(svg, "xmlns=") {
		svg = strings.Replace(svg, "<svg", `<svg xmlns="http://www.w3.org/2000/svg"`, 1)
	}
	return svg, nil
}

var sqlKeywords = []string{"SELECT", "FROM", "WHERE", "JOIN", "ON"}

func looksLikeSQL(out string) bool {
	upper := strings.ToUpper(out)
	for _, kw := range sqlKeywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
