package compiler_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/pgddl/pkg/compiler"
	"github.com/pthm/pgddl/pkg/schema"
)

func TestCompileStoresAlterTableDDL(t *testing.T) {
	alter := &schema.AlterTable{Name: "posts"}
	alter.ValidateConstraint("fk_posts_author")

	sql, err := compiler.New(compiler.Options{}).Compile(alter)
	require.NoError(t, err)
	assert.Equal(t, `ALTER TABLE "posts" VALIDATE CONSTRAINT "fk_posts_author"`, sql)
	assert.Equal(t, sql, alter.DDL)
}

func TestCompileLeavesDDLOnError(t *testing.T) {
	alter := &schema.AlterTable{Name: "orders", DDL: "previous"}
	alter.AddColumn("total", schema.TypeInteger).As = "a + b"

	_, err := compiler.New(compiler.Options{}).Compile(alter)
	require.Error(t, err)
	assert.True(t, schema.IsInvalidConfigurationErr(err))
	assert.Contains(t, err.Error(), "render alter table orders")
	assert.Equal(t, "previous", alter.DDL)
}

func TestCompileNil(t *testing.T) {
	_, err := compiler.New(compiler.Options{}).Compile(nil)
	assert.True(t, schema.IsUnsupportedNodeErr(err))
}

func TestCompileRejectsEmptyAlterTable(t *testing.T) {
	alter := &schema.AlterTable{Name: "posts"}

	sql, err := compiler.New(compiler.Options{}).Compile(alter)
	require.Error(t, err)
	assert.Empty(t, sql)
	assert.True(t, schema.IsInvalidConfigurationErr(err))
	assert.Contains(t, err.Error(), "alter table posts")
	assert.Empty(t, alter.DDL)
}

func TestCompileMissingDefinitions(t *testing.T) {
	changes := []schema.AlterChange{
		&schema.AddColumnDefinition{},
		&schema.AddForeignKey{},
		&schema.AddCheckConstraint{},
	}
	for _, change := range changes {
		t.Run(fmt.Sprintf("%T", change), func(t *testing.T) {
			alter := &schema.AlterTable{Name: "posts", Changes: []schema.AlterChange{change}}
			_, err := compiler.New(compiler.Options{}).Compile(alter)
			require.Error(t, err)
			assert.True(t, schema.IsInvalidConfigurationErr(err))
			assert.Contains(t, err.Error(), "missing")
		})
	}
}

func TestQuoteExclusionNames(t *testing.T) {
	c := &schema.ExclusionConstraintDefinition{Name: "no_overlap", Expression: "during WITH &&"}

	plain, err := compiler.New(compiler.Options{}).Compile(c)
	require.NoError(t, err)
	assert.Equal(t, "CONSTRAINT no_overlap EXCLUDE (during WITH &&)", plain)

	quoted, err := compiler.New(compiler.Options{QuoteExclusionNames: true}).Compile(c)
	require.NoError(t, err)
	assert.Equal(t, `CONSTRAINT "no_overlap" EXCLUDE (during WITH &&)`, quoted)
}

func TestCompileAll(t *testing.T) {
	table := &schema.TableDefinition{Name: "users"}
	table.Column("id", schema.TypePrimaryKey)
	alter := &schema.AlterTable{Name: "users"}
	alter.AddColumn("email", schema.TypeString)

	stmts, err := compiler.New(compiler.Options{}).CompileAll([]schema.Node{table, alter})
	require.NoError(t, err)
	assert.Equal(t, []string{
		`CREATE TABLE "users" ("id" bigserial primary key)`,
		`ALTER TABLE "users" ADD "email" character varying`,
	}, stmts)
}

func TestCompileAllAbortsOnFirstError(t *testing.T) {
	good := &schema.AlterTable{Name: "a"}
	good.ValidateConstraint("c")
	bad := &schema.ForeignKeyDefinition{FromTable: "b", ToTable: "c", Columns: []string{"c_id"}, OnUpdate: "bogus"}

	stmts, err := compiler.New(compiler.Options{}).CompileAll([]schema.Node{good, bad})
	require.Error(t, err)
	assert.Nil(t, stmts)
	assert.Contains(t, err.Error(), "change 1")
	assert.True(t, schema.IsInvalidConfigurationErr(err))
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := compiler.New(compiler.Options{Logger: logger}).CompileAll([]schema.Node{
		&schema.DropColumn{Name: "legacy"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "rendered statement")
	assert.Contains(t, out, "*schema.DropColumn")
	assert.Contains(t, out, "count=1")
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		node schema.Node
		want string
	}{
		{&schema.TableDefinition{Name: "users"}, "create table users"},
		{&schema.AlterTable{Name: "users"}, "alter table users"},
		{&schema.CreateIndexDefinition{Index: &schema.IndexDefinition{Table: "users", Name: "idx"}}, "create index idx"},
		{&schema.DropColumn{Name: "x"}, "*schema.DropColumn"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, compiler.Describe(tt.node))
	}
}

func TestWriteScript(t *testing.T) {
	alter := &schema.AlterTable{Name: "users"}
	alter.AddColumn("age", schema.TypeInteger)

	var buf bytes.Buffer
	err := compiler.New(compiler.Options{}).WriteScript(&buf, []schema.Node{alter}, compiler.ScriptOptions{
		Terminator: true,
		Header:     true,
		Source:     "changes.yaml",
	})
	require.NoError(t, err)

	want := "-- pgddl script\n" +
		"-- Source: changes.yaml\n" +
		"-- Statements: 1\n\n" +
		`ALTER TABLE "users" ADD "age" integer;` + "\n"
	assert.Equal(t, want, buf.String())

	buf.Reset()
	err = compiler.New(compiler.Options{}).WriteScript(&buf, []schema.Node{alter}, compiler.ScriptOptions{
		Header:  true,
		Version: "v0.2.0",
	})
	require.NoError(t, err)
	assert.Equal(t, "-- pgddl script\n-- Version: v0.2.0\n-- Statements: 1\n\n"+
		`ALTER TABLE "users" ADD "age" integer`+"\n", buf.String())
}

func TestWriteScriptWritesNothingOnError(t *testing.T) {
	var buf bytes.Buffer
	err := compiler.New(compiler.Options{}).WriteScript(&buf, []schema.Node{
		&schema.DropColumn{Name: "ok"},
		&schema.ValidateConstraint{},
		&schema.ExclusionConstraintDefinition{Name: "missing_expression"},
	}, compiler.ScriptOptions{Header: true})
	require.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestConcurrentCompile(t *testing.T) {
	c := compiler.New(compiler.Options{})

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			alter := &schema.AlterTable{Name: fmt.Sprintf("t%d", i)}
			alter.ValidateConstraint("c")
			sql, err := c.Compile(alter)
			if err == nil {
				results[i] = sql
			}
		}(i)
	}
	wg.Wait()

	for i, sql := range results {
		assert.True(t, strings.HasPrefix(sql, fmt.Sprintf(`ALTER TABLE "t%d" `, i)), sql)
	}
}
