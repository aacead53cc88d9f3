package changefile_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/pgddl/pkg/changefile"
	"github.com/pthm/pgddl/pkg/compiler"
	"github.com/pthm/pgddl/pkg/schema"
)

const bookings = `
changes:
  - create_table:
      name: bookings
      unlogged: true
      columns:
        - {name: id, type: primary_key}
        - {name: room_id, type: bigint, "null": false}
        - {name: during, type: tstzrange, "null": false}
        - {name: status, type: string, limit: 20, default: pending}
      exclusion_constraints:
        - {name: no_overlap, using: gist, expression: "room_id WITH =, during WITH &&"}
  - alter_table:
      name: bookings
      changes:
        - add_column: {name: note, type: text, collation: C}
        - add_foreign_key: {to_table: rooms, columns: [room_id], name: fk_bookings_room, deferrable: deferred, validate: false}
        - change_column: {name: status, type: string, default: null, "null": true}
      validate_constraints: [fk_bookings_room]
  - create_index:
      table: bookings
      columns: [{name: room_id}, {name: status, order: desc}]
      concurrently: true
`

func TestParse(t *testing.T) {
	f, err := changefile.Parse([]byte(bookings))
	require.NoError(t, err)
	require.Len(t, f.Changes, 3)

	table, ok := f.Changes[0].(*schema.TableDefinition)
	require.True(t, ok)
	assert.Equal(t, "bookings", table.Name)
	assert.True(t, table.Unlogged)
	require.Len(t, table.Columns, 4)
	assert.Equal(t, schema.NotNullable, table.Columns[1].Null)
	assert.Equal(t, schema.NullUnset, table.Columns[3].Null)
	assert.Equal(t, "pending", table.Columns[3].Default.Value())
	require.Len(t, table.ExclusionConstraints, 1)
	assert.Equal(t, "bookings", table.ExclusionConstraints[0].Table)

	alter, ok := f.Changes[1].(*schema.AlterTable)
	require.True(t, ok)
	require.Len(t, alter.Changes, 3)
	fk := alter.Changes[1].(*schema.AddForeignKey).ForeignKey
	assert.Equal(t, "bookings", fk.FromTable)
	assert.True(t, fk.NotValid)
	mode, ok := fk.Deferrable.Mode()
	assert.True(t, ok)
	assert.Equal(t, schema.DeferDeferred, mode)

	change := alter.Changes[2].(*schema.ChangeColumnDefinition)
	assert.True(t, change.Default.IsClear(), "default: null drops the default")
	assert.Equal(t, schema.Nullable, change.Null)
	assert.Equal(t, []string{"fk_bookings_room"}, alter.ConstraintValidations)

	idx, ok := f.Changes[2].(*schema.CreateIndexDefinition)
	require.True(t, ok)
	assert.True(t, idx.Concurrently)
	assert.Equal(t, schema.SortOrder("desc"), idx.Index.Columns[1].Order)
}

func TestParseAndRender(t *testing.T) {
	f, err := changefile.Parse([]byte(bookings))
	require.NoError(t, err)

	stmts, err := compiler.New(compiler.Options{}).CompileAll(f.Changes)
	require.NoError(t, err)
	assert.Equal(t, []string{
		`CREATE UNLOGGED TABLE "bookings" ("id" bigserial primary key, "room_id" bigint NOT NULL, ` +
			`"during" tstzrange NOT NULL, "status" character varying(20) DEFAULT 'pending', ` +
			`CONSTRAINT no_overlap EXCLUDE USING gist (room_id WITH =, during WITH &&))`,
		`ALTER TABLE "bookings" ADD "note" text COLLATE "C" ` +
			`ADD CONSTRAINT "fk_bookings_room" FOREIGN KEY ("room_id") REFERENCES "rooms" ("id") DEFERRABLE INITIALLY DEFERRED NOT VALID ` +
			`ALTER COLUMN "status" TYPE character varying, ALTER COLUMN "status" DROP DEFAULT, ALTER COLUMN "status" DROP NOT NULL ` +
			`VALIDATE CONSTRAINT "fk_bookings_room"`,
		`CREATE INDEX CONCURRENTLY "index_bookings_on_room_id_and_status" ON "bookings" ("room_id", "status" DESC)`,
	}, stmts)
}

func TestParseJSON(t *testing.T) {
	doc := `{"changes": [{"alter_table": {"name": "users", "changes": [` +
		`{"add_column": {"name": "age", "type": "integer", "limit": 2, "default": 18, "null": false}}, ` +
		`{"add_check_constraint": {"expression": "age >= 0", "validate": false}}` +
		`]}}]}`

	f, err := changefile.Parse([]byte(doc))
	require.NoError(t, err)
	alter := f.Changes[0].(*schema.AlterTable)

	col := alter.Changes[0].(*schema.AddColumnDefinition).Column
	assert.Equal(t, int64(18), col.Default.Value())
	assert.Equal(t, 2, col.TypeOptions.Limit)

	chk := alter.Changes[1].(*schema.AddCheckConstraint).Constraint
	assert.Equal(t, "users", chk.Table)
	assert.True(t, chk.NotValid)
}

func TestDefaultForms(t *testing.T) {
	tests := []struct {
		name      string
		column    string
		requested bool
		clear     bool
		value     any
	}{
		{"absent", `{name: a, type: text}`, false, false, nil},
		{"null", `{name: a, type: text, default: null}`, true, true, nil},
		{"drop flag", `{name: a, type: text, drop_default: true}`, true, true, nil},
		{"expression", `{name: a, type: datetime, default_expr: "now()"}`, true, false, schema.Expr("now()")},
		{"bool", `{name: a, type: boolean, default: true}`, true, false, true},
		{"float", `{name: a, type: float, default: 1.5}`, true, false, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := changefile.Parse([]byte("changes:\n  - create_table:\n      name: t\n      columns:\n        - " + tt.column + "\n"))
			require.NoError(t, err)
			col := f.Changes[0].(*schema.TableDefinition).Columns[0]
			assert.Equal(t, tt.requested, col.Default.Requested())
			assert.Equal(t, tt.clear, col.Default.IsClear())
			assert.Equal(t, tt.value, col.Default.Value())
		})
	}
}

func TestDeferrableForms(t *testing.T) {
	tests := []struct {
		value       string
		wantEnabled bool
		wantMode    schema.DeferralMode
	}{
		{"true", true, ""},
		{"false", false, ""},
		{"immediate", true, schema.DeferImmediate},
		{"deferred", true, schema.DeferDeferred},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			doc := "changes:\n  - alter_table:\n      name: a\n      changes:\n        - add_foreign_key: {to_table: b, columns: [b_id], deferrable: " + tt.value + "}\n"
			f, err := changefile.Parse([]byte(doc))
			require.NoError(t, err)
			fk := f.Changes[0].(*schema.AlterTable).Changes[0].(*schema.AddForeignKey).ForeignKey
			assert.Equal(t, tt.wantEnabled, fk.Deferrable.Enabled())
			mode, _ := fk.Deferrable.Mode()
			assert.Equal(t, tt.wantMode, mode)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{
			name:    "unknown key",
			doc:     "changes:\n  - create_table: {name: t, colums: []}\n",
			wantMsg: "colums",
		},
		{
			name:    "two kinds in one entry",
			doc:     "changes:\n  - create_table: {name: t}\n    alter_table: {name: t}\n",
			wantMsg: "changes[0]",
		},
		{
			name:    "empty entry",
			doc:     "changes:\n  - {}\n",
			wantMsg: "exactly one of",
		},
		{
			name:    "two actions in one alter change",
			doc:     "changes:\n  - alter_table:\n      name: t\n      changes:\n        - {drop_column: {name: a}, drop_foreign_key: {name: b}}\n",
			wantMsg: "exactly one action",
		},
		{
			name:    "conflicting defaults",
			doc:     "changes:\n  - create_table:\n      name: t\n      columns:\n        - {name: a, type: text, default: x, drop_default: true}\n",
			wantMsg: "mutually exclusive",
		},
		{
			name:    "bad deferrable mode",
			doc:     "changes:\n  - alter_table:\n      name: a\n      changes:\n        - add_foreign_key: {to_table: b, columns: [b_id], deferrable: later}\n",
			wantMsg: "later",
		},
		{
			name:    "column without type",
			doc:     "changes:\n  - create_table:\n      name: t\n      columns:\n        - {name: a}\n",
			wantMsg: "needs a type",
		},
		{
			name:    "alter table without changes",
			doc:     "changes:\n  - alter_table: {name: posts}\n",
			wantMsg: "alter_table posts has no changes",
		},
		{
			name:    "index without table",
			doc:     "changes:\n  - create_index: {columns: [{name: a}]}\n",
			wantMsg: "needs a table",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := changefile.Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, changefile.ErrInvalidChangeFile))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "changes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(bookings), 0o644))

	f, err := changefile.Load(path)
	require.NoError(t, err)
	assert.Len(t, f.Changes, 3)

	_, err = changefile.Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Unwrap(err)))
}
