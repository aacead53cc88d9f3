package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/pgddl/internal/cli"
)

const changes = `
changes:
  - create_table:
      name: bookings
      columns:
        - {name: id, type: primary_key}
        - {name: room_id, type: bigint, "null": false}
        - {name: during, type: tstzrange}
      exclusion_constraints:
        - {name: no_overlap, using: gist, expression: "room_id WITH =, during WITH &&"}
  - create_index:
      table: bookings
      columns: [{name: room_id}]
`

// run executes the CLI in a fresh repository root and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	renderFile, renderOutput = "", ""
	renderQuoteExclusionNames, renderTerminator, renderHeader = false, false, false
	validateFile, validateQuoteExclusionNames = "", false
	configShowSource, versionCheck = false, false
	cfgFile, verbose, quiet = "", 0, true

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return stdout.String(), err
}

func workspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "changes.yaml"), []byte(changes), 0o644))

	oldCwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(oldCwd) })
	return root
}

func TestRender(t *testing.T) {
	workspace(t)

	out, err := run(t, "", "render", "-q")
	require.NoError(t, err)
	assert.Equal(t,
		`CREATE TABLE "bookings" ("id" bigserial primary key, "room_id" bigint NOT NULL, "during" tstzrange, `+
			`CONSTRAINT no_overlap EXCLUDE USING gist (room_id WITH =, during WITH &&))`+"\n"+
			`CREATE INDEX "index_bookings_on_room_id" ON "bookings" ("room_id")`+"\n",
		out)
}

func TestRenderFlags(t *testing.T) {
	workspace(t)

	out, err := run(t, "", "render", "-q", "-f", "changes.yaml", "--quote-exclusion-names", "--terminator", "--header")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "-- pgddl script\n"), out)
	assert.Contains(t, out, "-- Source: changes.yaml\n-- Statements: 2\n\n")
	assert.Contains(t, out, `CONSTRAINT "no_overlap" EXCLUDE`)
	assert.True(t, strings.HasSuffix(out, `ON "bookings" ("room_id");`+"\n"), out)
}

func TestRenderConfigFile(t *testing.T) {
	root := workspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "pgddl.yaml"), []byte(`
render:
  terminator: true
  output: out/schema.sql
`), 0o644))

	out, err := run(t, "", "render")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(filepath.Join(root, "out", "schema.sql"))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), ";\n"))
}

func TestRenderStdin(t *testing.T) {
	workspace(t)

	doc := `{"changes": [{"alter_table": {"name": "users", "changes": [{"remove_column": {"name": "age"}}]}}]}`
	_, err := run(t, doc, "render", "-f", "-")
	require.Error(t, err)
	assert.Equal(t, cli.ExitChangeFile, cli.ExitCode(err))

	doc = `{"changes": [{"alter_table": {"name": "users", "changes": [{"drop_column": {"name": "age"}}]}}]}`
	out, err := run(t, doc, "render", "-f", "-")
	require.NoError(t, err)
	assert.Equal(t, `ALTER TABLE "users" DROP COLUMN "age"`+"\n", out)
}

func TestRenderErrors(t *testing.T) {
	root := workspace(t)

	_, err := run(t, "", "render", "-f", "missing.yaml")
	require.Error(t, err)
	assert.Equal(t, cli.ExitChangeFile, cli.ExitCode(err))
	assert.Contains(t, err.Error(), "change file not found")

	bad := "changes:\n  - create_table:\n      name: people\n      columns:\n        - {name: full_name, type: text, as: \"first || last\"}\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "virtual.yaml"), []byte(bad), 0o644))
	out, err := run(t, "", "render", "-f", "virtual.yaml")
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Equal(t, cli.ExitGeneral, cli.ExitCode(err))
	assert.Contains(t, err.Error(), "full_name")

	_, err = run(t, "", "render", "--config", "nope.yaml")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfig, cli.ExitCode(err))
}

func TestValidate(t *testing.T) {
	workspace(t)

	out, err := run(t, "", "validate")
	require.NoError(t, err)
	assert.Empty(t, out)

	quiet = false
	rootCmd.SetArgs([]string{"validate"})
	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "Change file is valid. Found 2 changes:\n"+
		"  - create table bookings\n"+
		"  - create index index_bookings_on_room_id\n", stdout.String())
}

func TestConfigShow(t *testing.T) {
	workspace(t)

	out, err := run(t, "", "config", "show", "--source")
	require.NoError(t, err)
	assert.Contains(t, out, "Config file: (none, using defaults)")
	assert.Contains(t, out, "changes: changes.yaml")
	assert.Contains(t, out, "quote_exclusion_names: false")
	assert.Contains(t, out, "level: warn")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "pgddl "), out)
}
