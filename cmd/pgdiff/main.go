// Package main is the pgdiff CLI: diff two schema sources, parse a DDL
// file and report errors, or introspect a live database and print its
// schema back out as DDL. It uses cobra for command dispatch, the same
// way smf's CLI does.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"pgschemadiff/internal/ast"
	"pgschemadiff/internal/compare"
	"pgschemadiff/internal/config"
	"pgschemadiff/internal/introspect/postgres"
	"pgschemadiff/internal/output"
	"pgschemadiff/internal/parser"
	"pgschemadiff/internal/render"
)

type diffFlags struct {
	format     string
	outFile    string
	configFile string
}

type parseFlags struct {
	outFile string
}

type introspectFlags struct {
	schema  string
	format  string
	outFile string
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "pgdiff",
		Short: "PostgreSQL-family schema comparison tool",
	}

	rootCmd.AddCommand(diffCmd())
	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(introspectCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func diffCmd() *cobra.Command {
	flags := &diffFlags{}
	cmd := &cobra.Command{
		Use:   "diff <source> <target>",
		Short: "Compare two schemas",
		Long: `Compare two schemas and report the differences.

Each of <source> and <target> is either a path to a .sql file containing
CREATE TABLE/CREATE TYPE statements, or a postgres:// connection string,
distinguished by a "://" in the argument.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runDiff(args[0], args[1], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "Output format: human or json")
	cmd.Flags().StringVarP(&flags.outFile, "output", "o", "", "Output file for the diff (default: stdout)")
	cmd.Flags().StringVarP(&flags.configFile, "config", "c", "", "Path to a pgdiff TOML config file")

	return cmd
}

func runDiff(sourceArg, targetArg string, flags *diffFlags) error {
	cfg := config.Default()
	if flags.configFile != "" {
		loaded, err := config.ParseFile(flags.configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	format := flags.format
	if format == "" {
		format = cfg.OutputFormat
	}

	sourceSchema, err := loadSchema(sourceArg)
	if err != nil {
		return fmt.Errorf("loading source: %w", err)
	}
	targetSchema, err := loadSchema(targetArg)
	if err != nil {
		return fmt.Errorf("loading target: %w", err)
	}

	sink := compare.SinkFunc(func(f string, args ...any) {
		fmt.Fprintf(os.Stderr, "warning: "+f+"\n", args...)
	})
	schemaDiff := compare.CompareSchemas(sourceSchema, targetSchema, cfg.Compare, sink)

	formatter, err := output.NewFormatter(format)
	if err != nil {
		return err
	}
	formatted, err := formatter.FormatDiff(schemaDiff)
	if err != nil {
		return fmt.Errorf("formatting diff: %w", err)
	}

	if err := writeOutput(formatted, flags.outFile); err != nil {
		return err
	}
	if schemaDiff.CriticalCount > 0 {
		os.Exit(1)
	}
	return nil
}

// loadSchema resolves arg as a DSN (contains "://") or a DDL file path.
func loadSchema(arg string) (*ast.Schema, error) {
	if strings.Contains(arg, "://") {
		return introspectDSN(arg, "public")
	}
	return parseFile(arg)
}

func parseFile(path string) (*ast.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	schema, errs := parser.ParseSource(string(data))
	if len(errs) > 0 {
		return nil, fmt.Errorf("%s: %w", path, firstError(errs))
	}
	return schema, nil
}

func firstError(errs []parser.ParseError) error {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("%d parse error(s): %s", len(errs), strings.Join(msgs, "; "))
}

func introspectDSN(dsn, schemaName string) (*ast.Schema, error) {
	introspecter, err := postgres.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting: %w", err)
	}
	defer func() { _ = introspecter.Close() }()

	return introspecter.Introspect(context.Background(), schemaName)
}

func parseCmd() *cobra.Command {
	flags := &parseFlags{}
	cmd := &cobra.Command{
		Use:   "parse <file.sql>",
		Short: "Parse a DDL file and report any errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runParse(args[0], flags)
		},
	}
	cmd.Flags().StringVarP(&flags.outFile, "output", "o", "", "Output file for the rendered schema (default: stdout)")
	return cmd
}

func runParse(path string, flags *parseFlags) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	schema, errs := parser.ParseSource(string(data))
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, e.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d parse error(s) in %s", len(errs), path)
	}

	return writeOutput(renderSchema(schema), flags.outFile)
}

func renderSchema(schema *ast.Schema) string {
	var sb strings.Builder
	for _, tbl := range schema.Tables {
		sb.WriteString(render.Table(tbl))
		sb.WriteString("\n")
	}
	for _, typ := range schema.Types {
		if s := render.Type(typ); s != "" {
			sb.WriteString(s)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func introspectCmd() *cobra.Command {
	flags := &introspectFlags{}
	cmd := &cobra.Command{
		Use:   "introspect <dsn>",
		Short: "Introspect a live database and print its schema as DDL",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runIntrospect(args[0], flags)
		},
	}
	cmd.Flags().StringVarP(&flags.schema, "schema", "s", "public", "Schema name to introspect")
	cmd.Flags().StringVarP(&flags.outFile, "output", "o", "", "Output file (default: stdout)")
	return cmd
}

func runIntrospect(dsn string, flags *introspectFlags) error {
	schema, err := introspectDSN(dsn, flags.schema)
	if err != nil {
		return err
	}
	return writeOutput(renderSchema(schema), flags.outFile)
}

func writeOutput(content, outFile string) error {
	if outFile == "" {
		_, err := io.WriteString(os.Stdout, content)
		return err
	}
	if err := os.WriteFile(outFile, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outFile, err)
	}
	fmt.Fprintf(os.Stderr, "output saved to %s\n", outFile)
	return nil
}
