package sqlgen

import (
	"errors"

	"github.com/pthm/pgddl/internal/sqlgen/sqldsl"
	"github.com/pthm/pgddl/pkg/quoting"
	"github.com/pthm/pgddl/pkg/schema"
)

// Visitor is the dispatch surface a dialect generator exposes to the base
// generator.
type Visitor interface {
	// Accept renders any node.
	Accept(n schema.Node) (string, error)
	// ColumnOptions renders everything after "<name> <type>" in a column
	// definition, including the leading space.
	ColumnOptions(col *schema.ColumnDefinition) (string, error)
	// TableModifierInCreate returns the token placed between CREATE and
	// TABLE, including its leading space, or "".
	TableModifierInCreate(t *schema.TableDefinition) string
}

// Generator is the dialect-neutral base generator.
// It holds no mutable state after construction and is safe for concurrent use.
type Generator struct {
	Quoter quoting.Quoter
	outer  Visitor
}

// New creates a base generator. A nil quoter selects quoting.Default.
func New(q quoting.Quoter) *Generator {
	if q == nil {
		q = quoting.Default
	}
	g := &Generator{Quoter: q}
	g.outer = g
	return g
}

// Wrap routes child dispatch and hooks through outer.
// Dialect generators call it once with themselves after construction.
func (g *Generator) Wrap(outer Visitor) {
	g.outer = outer
}

// Accept renders n.
func (g *Generator) Accept(n schema.Node) (string, error) {
	switch n := n.(type) {
	case *schema.TableDefinition:
		return g.visitTableDefinition(n)
	case *schema.AlterTable:
		return g.visitAlterTable(n)
	case *schema.ColumnDefinition:
		return g.visitColumnDefinition(n)
	case *schema.AddColumnDefinition:
		if n.Column == nil {
			return "", missingDefinition("column")
		}
		return g.prefixed("ADD", n.Column)
	case *schema.DropColumn:
		return "DROP COLUMN " + g.Quoter.QuoteIdentifier(n.Name), nil
	case *schema.ChangeColumnDefinition:
		return g.visitChangeColumnDefinition(n)
	case *schema.PrimaryKeyDefinition:
		return "PRIMARY KEY " + g.quotedColumns(n.Columns), nil
	case *schema.ForeignKeyDefinition:
		return g.visitForeignKeyDefinition(n)
	case *schema.AddForeignKey:
		if n.ForeignKey == nil {
			return "", missingDefinition("foreign key")
		}
		return g.prefixed("ADD", n.ForeignKey)
	case *schema.DropForeignKey:
		return g.dropConstraint(n.Name), nil
	case *schema.CheckConstraintDefinition:
		return g.visitCheckConstraintDefinition(n), nil
	case *schema.AddCheckConstraint:
		if n.Constraint == nil {
			return "", missingDefinition("check constraint")
		}
		return g.prefixed("ADD", n.Constraint)
	case *schema.DropCheckConstraint:
		return g.dropConstraint(n.Name), nil
	case *schema.CreateIndexDefinition:
		return g.visitCreateIndexDefinition(n)
	default:
		return "", schema.UnsupportedNodeError("base generator", n)
	}
}

// prefixed renders child through the outer visitor behind a keyword.
func (g *Generator) prefixed(keyword string, child schema.Node) (string, error) {
	sql, err := g.outer.Accept(child)
	if err != nil {
		return "", err
	}
	return keyword + " " + sql, nil
}

// missingDefinition reports an ADD wrapper with no definition inside.
func missingDefinition(kind string) error {
	return &schema.ConfigurationError{Reason: "missing " + kind + " definition"}
}

func (g *Generator) visitAlterTable(n *schema.AlterTable) (string, error) {
	tokens := sqldsl.Tokens{"ALTER TABLE", g.Quoter.QuoteTableName(n.Name)}
	for _, change := range n.Changes {
		sql, err := g.outer.Accept(change)
		if err != nil {
			return "", err
		}
		tokens = append(tokens, sql)
	}
	return tokens.SQL(), nil
}

func (g *Generator) dropConstraint(name string) string {
	return "DROP CONSTRAINT " + g.Quoter.QuoteIdentifier(name)
}

func (g *Generator) quotedColumns(columns []string) string {
	return sqldsl.ParenList(sqldsl.Map(columns, g.Quoter.QuoteIdentifier))
}

// TypeSQL renders a column type, naming the column in configuration errors.
func (g *Generator) TypeSQL(column string, t schema.ColumnType, opts schema.TypeOptions) (string, error) {
	sql, err := g.Quoter.TypeToSQL(t, opts)
	if err != nil {
		return "", withColumn(column, err)
	}
	return sql, nil
}

func withColumn(column string, err error) error {
	var cfgErr *schema.ConfigurationError
	if errors.As(err, &cfgErr) && cfgErr.Column == "" {
		named := *cfgErr
		named.Column = column
		return &named
	}
	return err
}
