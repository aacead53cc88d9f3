// Package compiler renders schema-change nodes into PostgreSQL DDL.
//
// This is a thin wrapper around internal/sqlgen/postgres that adds the
// caller-side concerns the generator deliberately leaves out: storing the
// rendered ALTER TABLE into its DDL slot, batching, logging, and writing a
// reviewable script. It never connects to a database.
package compiler

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/pthm/pgddl/internal/sqlgen/postgres"
	"github.com/pthm/pgddl/pkg/quoting"
	"github.com/pthm/pgddl/pkg/schema"
)

// Options configures a Compiler. The zero value is ready to use.
type Options struct {
	// QuoteExclusionNames quotes exclusion constraint names like every other
	// identifier. Off by default, which keeps names exactly as given.
	QuoteExclusionNames bool

	// Quoter overrides the quoting service. Defaults to quoting.Default.
	Quoter quoting.Quoter

	// Logger receives a debug record per rendered statement. Nil disables
	// logging.
	Logger *slog.Logger
}

// Compiler renders nodes. It is safe for concurrent use on distinct nodes.
type Compiler struct {
	gen    *postgres.Generator
	logger *slog.Logger
}

// New creates a Compiler.
func New(opts Options) *Compiler {
	var genOpts []postgres.Option
	if opts.QuoteExclusionNames {
		genOpts = append(genOpts, postgres.WithQuotedExclusionNames())
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Compiler{
		gen:    postgres.New(opts.Quoter, genOpts...),
		logger: logger,
	}
}

// Compile renders a single node. When n is an *schema.AlterTable the result
// is also stored in its DDL field. An AlterTable with no action at all is
// rejected, since PostgreSQL would refuse the bare statement.
func (c *Compiler) Compile(n schema.Node) (string, error) {
	if n == nil {
		return "", fmt.Errorf("%w: nil node", schema.ErrUnsupportedNode)
	}
	if alter, ok := n.(*schema.AlterTable); ok && alter.IsEmpty() {
		return "", fmt.Errorf("render %s: %w", Describe(n),
			&schema.ConfigurationError{Table: alter.Name, Reason: "alter table has no changes"})
	}
	sql, err := c.gen.Accept(n)
	if err != nil {
		c.logger.Debug("render failed", "node", Describe(n), "error", err)
		return "", fmt.Errorf("render %s: %w", Describe(n), err)
	}
	if alter, ok := n.(*schema.AlterTable); ok {
		alter.DDL = sql
	}
	c.logger.Debug("rendered statement", "node", Describe(n), "sql", sql)
	return sql, nil
}

// CompileAll renders nodes in order. The first error aborts the batch and
// no statements are returned.
func (c *Compiler) CompileAll(nodes []schema.Node) ([]string, error) {
	out := make([]string, 0, len(nodes))
	for i, n := range nodes {
		sql, err := c.Compile(n)
		if err != nil {
			return nil, fmt.Errorf("change %d: %w", i, err)
		}
		out = append(out, sql)
	}
	c.logger.Info("rendered changes", "count", len(out))
	return out, nil
}

// Describe returns a short human label for a node, used in errors and logs.
func Describe(n schema.Node) string {
	switch n := n.(type) {
	case *schema.TableDefinition:
		return "create table " + n.Name
	case *schema.AlterTable:
		return "alter table " + n.Name
	case *schema.CreateIndexDefinition:
		if n.Index != nil {
			return "create index " + n.Index.IndexName()
		}
	}
	return fmt.Sprintf("%T", n)
}

// ScriptOptions controls WriteScript output.
type ScriptOptions struct {
	// Terminator ends every statement with a semicolon.
	Terminator bool
	// Header writes a comment block naming the source and statement count.
	Header bool
	// Source is shown in the header, typically the change file path.
	Source string
	// Version is shown in the header when set.
	Version string
}

// WriteScript renders nodes and writes one statement per line to w.
// Nothing is written if any node fails to render.
func (c *Compiler) WriteScript(w io.Writer, nodes []schema.Node, opts ScriptOptions) error {
	statements, err := c.CompileAll(nodes)
	if err != nil {
		return err
	}

	if opts.Header {
		_, _ = fmt.Fprintf(w, "-- pgddl script\n")
		if opts.Version != "" {
			_, _ = fmt.Fprintf(w, "-- Version: %s\n", opts.Version)
		}
		if opts.Source != "" {
			_, _ = fmt.Fprintf(w, "-- Source: %s\n", opts.Source)
		}
		_, _ = fmt.Fprintf(w, "-- Statements: %d\n\n", len(statements))
	}

	term := ""
	if opts.Terminator {
		term = ";"
	}
	for _, stmt := range statements {
		if _, err := fmt.Fprintf(w, "%s%s\n", stmt, term); err != nil {
			return fmt.Errorf("write script: %w", err)
		}
	}
	return nil
}
