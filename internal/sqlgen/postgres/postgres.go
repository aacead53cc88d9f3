// Package postgres is the PostgreSQL dialect generator.
//
// It wraps the base generator and overrides the node kinds where PostgreSQL
// syntax differs or goes further: deferrable and NOT VALID constraints,
// constraint validation, exclusion constraints, ALTER COLUMN ... TYPE with
// USING and attribute changes, collations, stored generated columns, and
// UNLOGGED tables. Every other node kind is rendered by the base generator
// unchanged.
package postgres

import (
	"github.com/pthm/pgddl/internal/sqlgen"
	"github.com/pthm/pgddl/internal/sqlgen/sqldsl"
	"github.com/pthm/pgddl/pkg/quoting"
	"github.com/pthm/pgddl/pkg/schema"
)

// Option configures a Generator.
type Option func(*Generator)

// WithQuotedExclusionNames quotes exclusion constraint names through the
// quoter. By default they are emitted as given.
func WithQuotedExclusionNames() Option {
	return func(g *Generator) {
		g.quoteExclusionNames = true
	}
}

// Generator renders nodes as PostgreSQL DDL.
type Generator struct {
	*sqlgen.Generator

	quoteExclusionNames bool
}

// New creates a PostgreSQL generator. A nil quoter selects quoting.Default.
func New(q quoting.Quoter, opts ...Option) *Generator {
	g := &Generator{Generator: sqlgen.New(q)}
	g.Wrap(g)
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Accept renders n. Node kinds without a PostgreSQL override are passed to
// the base generator.
func (g *Generator) Accept(n schema.Node) (string, error) {
	switch n := n.(type) {
	case *schema.AlterTable:
		return g.visitAlterTable(n)
	case *schema.AddForeignKey:
		return g.visitAddForeignKey(n)
	case *schema.CheckConstraintDefinition:
		return g.visitCheckConstraintDefinition(n)
	case *schema.ValidateConstraint:
		return "VALIDATE CONSTRAINT " + g.Quoter.QuoteIdentifier(n.Name), nil
	case *schema.ExclusionConstraintDefinition:
		return g.visitExclusionConstraintDefinition(n)
	case *schema.AddExclusionConstraint:
		sql, err := g.visitExclusionConstraintDefinition(n.Constraint)
		if err != nil {
			return "", err
		}
		return "ADD " + sql, nil
	case *schema.DropExclusionConstraint:
		return "DROP CONSTRAINT " + g.Quoter.QuoteIdentifier(n.Name), nil
	case *schema.ChangeColumnDefinition:
		return g.visitChangeColumnDefinition(n)
	default:
		return g.Generator.Accept(n)
	}
}

// visitAlterTable appends validations, then exclusion adds, then exclusion
// drops to the base fragment.
func (g *Generator) visitAlterTable(n *schema.AlterTable) (string, error) {
	base, err := g.Generator.Accept(n)
	if err != nil {
		return "", err
	}

	clauses := make([]schema.Node, 0, len(n.ConstraintValidations)+len(n.ExclusionConstraintAdds)+len(n.ExclusionConstraintDrops))
	for _, name := range n.ConstraintValidations {
		clauses = append(clauses, &schema.ValidateConstraint{Name: name})
	}
	for _, c := range n.ExclusionConstraintAdds {
		clauses = append(clauses, &schema.AddExclusionConstraint{Constraint: c})
	}
	for _, name := range n.ExclusionConstraintDrops {
		clauses = append(clauses, &schema.DropExclusionConstraint{Name: name})
	}

	tokens := sqldsl.Tokens{base}
	for _, c := range clauses {
		sql, err := g.Accept(c)
		if err != nil {
			return "", err
		}
		tokens = append(tokens, sql)
	}
	return tokens.SQL(), nil
}

func (g *Generator) visitAddForeignKey(n *schema.AddForeignKey) (string, error) {
	sql, err := g.Generator.Accept(n)
	if err != nil {
		return "", err
	}
	fk := n.ForeignKey
	if fk.Deferrable.Enabled() {
		sql += " DEFERRABLE"
		if mode, ok := fk.Deferrable.Mode(); ok {
			sql += " INITIALLY " + sqldsl.Keyword(string(mode))
		}
	}
	if !fk.Validate() {
		sql += " NOT VALID"
	}
	return sql, nil
}

func (g *Generator) visitCheckConstraintDefinition(c *schema.CheckConstraintDefinition) (string, error) {
	sql, err := g.Generator.Accept(c)
	if err != nil {
		return "", err
	}
	if !c.Validate() {
		sql += " NOT VALID"
	}
	return sql, nil
}

func (g *Generator) visitExclusionConstraintDefinition(c *schema.ExclusionConstraintDefinition) (string, error) {
	if c == nil {
		return "", &schema.ConfigurationError{Reason: "missing exclusion constraint definition"}
	}
	if c.Expression == "" {
		return "", &schema.ConfigurationError{Table: c.Table, Reason: "exclusion constraint needs an expression"}
	}
	name := c.ConstraintName()
	if g.quoteExclusionNames {
		name = g.Quoter.QuoteIdentifier(name)
	}
	return sqldsl.Tokens{
		"CONSTRAINT", name,
		"EXCLUDE",
		sqldsl.Optf(c.Using != "", "USING %s", c.Using),
		sqldsl.Paren{Expr: sqldsl.Raw(c.Expression)}.SQL(),
		sqldsl.Optf(c.Where != "", "WHERE (%s)", c.Where),
	}.SQL(), nil
}
