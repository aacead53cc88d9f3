// Package sqlgen renders schema-change nodes into dialect-neutral DDL.
//
// # Overview
//
// Generator is the base visitor. Accept switches on the node's concrete type
// and renders one fragment per node kind: CREATE TABLE, ALTER TABLE and its
// sub-changes, column definitions, primary and foreign keys, check
// constraints, and CREATE INDEX. Node kinds that only exist in a dialect
// (constraint validation, exclusion constraints) are rejected with
// schema.ErrUnsupportedNode.
//
// # Dialect Generators
//
// A dialect generator embeds *Generator and calls Wrap with itself. From then
// on every child the base generator renders (the sub-changes of an ALTER
// TABLE, the columns of a CREATE TABLE, the definition inside an ADD) is
// dispatched through the dialect's Accept, and column options and the CREATE
// modifier go through the dialect's hooks:
//
//	type Generator struct {
//	    *sqlgen.Generator
//	}
//
//	func New(q quoting.Quoter) *Generator {
//	    g := &Generator{Generator: sqlgen.New(q)}
//	    g.Wrap(g)
//	    return g
//	}
//
// An override renders the base fragment by calling g.Generator.Accept on the
// same node and then appends to it. Node kinds the dialect does not recognise
// are passed to g.Generator.Accept unchanged.
//
// # Quoting
//
// Every identifier goes through the configured quoting.Quoter. Expressions
// (check bodies, index predicates, USING clauses) are caller-supplied SQL and
// are emitted verbatim.
package sqlgen
