// Package schema provides the schema-change node model rendered by pgddl.
//
// Each node describes one intended schema operation: create a table, alter a
// table, add or change a column, add or drop a constraint, create an index.
// Nodes are plain values built once by the caller (a migration DSL, a change
// file, a test) and passed through exactly one render pass. Generators read
// nodes; they never mutate them.
//
// # Node Kinds
//
// All node types implement Node. The set is closed: the interface carries an
// unexported marker method so only this package can add kinds, which lets
// generators dispatch with an exhaustive type switch.
//
//	*TableDefinition            CREATE TABLE
//	*AlterTable                 ALTER TABLE with ordered sub-changes
//	*ColumnDefinition           column fragment used by CREATE and ADD
//	*ChangeColumnDefinition     ALTER COLUMN ... TYPE ...
//	*ForeignKeyDefinition       CONSTRAINT ... FOREIGN KEY ...
//	*CheckConstraintDefinition  CONSTRAINT ... CHECK (...)
//	*ExclusionConstraintDefinition  CONSTRAINT ... EXCLUDE ...
//	*CreateIndexDefinition      CREATE INDEX
//
// Sub-changes of an ALTER TABLE additionally implement AlterChange.
//
// # Tri-state Options
//
// Options that distinguish "not requested" from an explicit value use small
// value types instead of pointers:
//
//	Default      unset | clear (DROP DEFAULT) | set(value)
//	Nullability  unset | nullable | not nullable
//	Deferrable   not deferrable | DEFERRABLE | DEFERRABLE INITIALLY <mode>
//
// Zero values always mean "not requested".
package schema

// Node is a schema-change intent that a generator can render.
type Node interface {
	node()
}

// AlterChange is a sub-change carried by an AlterTable.
type AlterChange interface {
	Node
	alterChange()
}
