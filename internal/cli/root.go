// Package cli implements the queryviz command line interface. It runs the
// same parse and render pipeline as the HTTP API, reading SQL from an
// argument, a file, or stdin, and writing the diagram to a file or stdout.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/queryviz/core/internal/parser"
	"github.com/queryviz/core/internal/render"
)

type rootOptions struct {
	file   string
	format string
	output string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "queryviz [sql]",
		Short: "Render a SQL SELECT query as a visual diagram",
		Long: `queryviz parses a single SQL SELECT query and renders the tables,
joins, filters, and aggregations it references as a diagram.

The query is taken from the first argument, from --file, or from stdin.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sql, err := readQuery(cmd, args, opts.file)
			if err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), sql, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read the SQL query from a file")
	cmd.Flags().StringVar(&opts.format, "format", "svg", "output format: svg, dot, or json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write output to a file instead of stdout")

	return cmd
}

// readQuery resolves the SQL source: positional argument, --file, or stdin.
func readQuery(cmd *cobra.Command, args []string, file string) (string, error) {
	if len(args) == 1 && file != "" {
		return "", fmt.Errorf("pass the query as an argument or via --file, not both")
	}
	if len(args) == 1 {
		return args[0], nil
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read query file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read query from stdin: %w", err)
	}
	return string(data), nil
}

func run(stdout io.Writer, sql string, opts *rootOptions) error {
	parsed, err := parser.ParseSQL(sql)
	if err != nil {
		return err
	}

	graph := parser.BuildGraph(parsed)

	var out []byte
	switch strings.ToLower(opts.format) {
	case "svg":
		svg, err := render.RenderSVG(graph)
		if err != nil {
			return err
		}
		out = []byte(svg)
	case "dot":
		out = []byte(render.BuildDOT(graph))
	case "json":
		out, err = json.MarshalIndent(parsed, "", "  ")
		if err != nil {
			return err
		}
		out = append(out, '\n')
	default:
		return fmt.Errorf("unknown format %q: expected svg, dot, or json", opts.format)
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, out, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return nil
	}

	_, err = stdout.Write(out)
	return err
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
