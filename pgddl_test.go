package pgddl_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/pgddl"
)

func TestRender(t *testing.T) {
	alter := &pgddl.AlterTable{Name: "posts"}
	alter.Changes = append(alter.Changes, &pgddl.AddForeignKey{
		ForeignKey: &pgddl.ForeignKeyDefinition{
			FromTable:  "posts",
			ToTable:    "authors",
			Columns:    []string{"author_id"},
			Deferrable: pgddl.DeferrableInitially(pgddl.DeferDeferred),
			NotValid:   true,
		},
	})
	alter.ValidateConstraint("chk_title_present")

	sql, err := pgddl.Render(alter)
	require.NoError(t, err)
	assert.Equal(t, `ALTER TABLE "posts" ADD CONSTRAINT "fk_rails_04d13ef8c7" FOREIGN KEY ("author_id") `+
		`REFERENCES "authors" ("id") DEFERRABLE INITIALLY DEFERRED NOT VALID VALIDATE CONSTRAINT "chk_title_present"`, sql)
	assert.Equal(t, sql, alter.DDL)
}

func TestRenderVirtualGeneratedColumn(t *testing.T) {
	col := &pgddl.ColumnDefinition{Name: "full_name", Type: "text", As: "first || ' ' || last"}

	sql, err := pgddl.Render(col)
	assert.Empty(t, sql)
	assert.True(t, pgddl.IsInvalidConfigurationErr(err))
	assert.Contains(t, err.Error(), "full_name")
}

func TestRenderAll(t *testing.T) {
	stmts, err := pgddl.RenderAll(
		&pgddl.TableDefinition{Name: "cache", Unlogged: true, Columns: []*pgddl.ColumnDefinition{
			{Name: "key", Type: "text", PrimaryKey: true},
			{Name: "value", Type: "jsonb", Default: pgddl.DefaultExpr("'{}'::jsonb"), Null: pgddl.NotNullable},
		}},
		&pgddl.CreateIndexDefinition{Index: &pgddl.IndexDefinition{
			Table: "cache", Using: "gin", Columns: []pgddl.IndexColumn{{Name: "value"}},
		}},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{
		`CREATE UNLOGGED TABLE "cache" ("key" text PRIMARY KEY, "value" jsonb DEFAULT '{}'::jsonb NOT NULL)`,
		`CREATE INDEX "index_cache_on_value" ON "cache" USING gin ("value")`,
	}, stmts)
}

func ExampleRender() {
	change := &pgddl.ChangeColumnDefinition{
		Name:    "status",
		Type:    "string",
		Default: pgddl.DefaultTo("active"),
		Null:    pgddl.NotNullable,
	}
	sql, err := pgddl.Render(&pgddl.AlterTable{Name: "accounts", Changes: []pgddl.AlterChange{change}})
	if err != nil {
		panic(err)
	}
	fmt.Println(sql)
	// Output: ALTER TABLE "accounts" ALTER COLUMN "status" TYPE character varying, ALTER COLUMN "status" SET DEFAULT 'active', ALTER COLUMN "status" SET NOT NULL
}
