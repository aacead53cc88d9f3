// Package pgddl renders schema-change intents into PostgreSQL DDL.
//
// A caller describes the change it wants (create a table, alter a table, add
// a constraint, create an index) as a tree of nodes from pkg/schema and
// passes the root to Render. The result is one SQL statement. pgddl never
// connects to a database; executing the statement is the caller's job.
//
// # Module Structure
//
//   - github.com/pthm/pgddl: this facade. Render, node aliases, errors.
//   - github.com/pthm/pgddl/pkg/schema: the node model.
//   - github.com/pthm/pgddl/pkg/quoting: identifier, literal and type quoting.
//   - github.com/pthm/pgddl/pkg/compiler: batches, logging, scripts.
//   - github.com/pthm/pgddl/pkg/changefile: YAML/JSON change files.
//
// # Basic Usage
//
//	alter := &pgddl.AlterTable{Name: "posts"}
//	alter.Changes = append(alter.Changes, &pgddl.AddForeignKey{
//	    ForeignKey: &pgddl.ForeignKeyDefinition{
//	        FromTable:  "posts",
//	        ToTable:    "authors",
//	        Columns:    []string{"author_id"},
//	        Deferrable: pgddl.DeferrableInitially(pgddl.DeferDeferred),
//	        NotValid:   true,
//	    },
//	})
//	alter.ValidateConstraint("chk_title_present")
//
//	sql, err := pgddl.Render(alter)
//	// ALTER TABLE "posts" ADD CONSTRAINT "fk_rails_..." FOREIGN KEY ("author_id")
//	//   REFERENCES "authors" ("id") DEFERRABLE INITIALLY DEFERRED NOT VALID
//	//   VALIDATE CONSTRAINT "chk_title_present"
//
// Render stores an ALTER TABLE's statement in its DDL field as well.
//
// # Multiple Clauses
//
// Every sub-change and queued clause of an AlterTable is joined with a single
// space, mirroring the order they were requested in. PostgreSQL separates
// actions of one ALTER TABLE with commas, so build one AlterTable per action
// when the output is executed directly.
//
// # Errors
//
// Requests the database cannot express, such as a virtual generated column,
// fail with an error wrapping ErrInvalidConfiguration and no SQL:
//
//	_, err := pgddl.Render(node)
//	if pgddl.IsInvalidConfigurationErr(err) {
//	    // fix the change definition
//	}
package pgddl

import (
	"github.com/pthm/pgddl/pkg/compiler"
	"github.com/pthm/pgddl/pkg/schema"
)

// Node kinds.
type (
	Node                          = schema.Node
	AlterChange                   = schema.AlterChange
	TableDefinition               = schema.TableDefinition
	AlterTable                    = schema.AlterTable
	ColumnDefinition              = schema.ColumnDefinition
	AddColumnDefinition           = schema.AddColumnDefinition
	DropColumn                    = schema.DropColumn
	ChangeColumnDefinition        = schema.ChangeColumnDefinition
	PrimaryKeyDefinition          = schema.PrimaryKeyDefinition
	ForeignKeyDefinition          = schema.ForeignKeyDefinition
	AddForeignKey                 = schema.AddForeignKey
	DropForeignKey                = schema.DropForeignKey
	CheckConstraintDefinition     = schema.CheckConstraintDefinition
	AddCheckConstraint            = schema.AddCheckConstraint
	DropCheckConstraint           = schema.DropCheckConstraint
	ExclusionConstraintDefinition = schema.ExclusionConstraintDefinition
	ValidateConstraint            = schema.ValidateConstraint
	AddExclusionConstraint        = schema.AddExclusionConstraint
	DropExclusionConstraint       = schema.DropExclusionConstraint
	IndexDefinition               = schema.IndexDefinition
	IndexColumn                   = schema.IndexColumn
	CreateIndexDefinition         = schema.CreateIndexDefinition
)

// Options.
type (
	ColumnType       = schema.ColumnType
	TypeOptions      = schema.TypeOptions
	Default          = schema.Default
	Expr             = schema.Expr
	Nullability      = schema.Nullability
	Deferrable       = schema.Deferrable
	DeferralMode     = schema.DeferralMode
	ForeignKeyAction = schema.ForeignKeyAction
)

const (
	NullUnset   = schema.NullUnset
	Nullable    = schema.Nullable
	NotNullable = schema.NotNullable

	DeferImmediate = schema.DeferImmediate
	DeferDeferred  = schema.DeferDeferred

	Nullify  = schema.Nullify
	Cascade  = schema.Cascade
	Restrict = schema.Restrict
)

// Option constructors.
var (
	DropDefault          = schema.DropDefault
	DefaultTo            = schema.DefaultTo
	DefaultExpr          = schema.DefaultExpr
	DeferrableConstraint = schema.DeferrableConstraint
	DeferrableInitially  = schema.DeferrableInitially
)

var defaultCompiler = compiler.New(compiler.Options{})

// Render renders n as PostgreSQL DDL with default options.
// An *AlterTable also receives the statement in its DDL field.
func Render(n Node) (string, error) {
	return defaultCompiler.Compile(n)
}

// RenderAll renders nodes in order, stopping at the first error.
func RenderAll(nodes ...Node) ([]string, error) {
	return defaultCompiler.CompileAll(nodes)
}
