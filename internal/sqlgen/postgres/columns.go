package postgres

import (
	"strings"

	"github.com/pthm/pgddl/internal/sqlgen/sqldsl"
	"github.com/pthm/pgddl/pkg/schema"
)

// visitChangeColumnDefinition renders
//
//	ALTER COLUMN "c" TYPE t [COLLATE "x"] [USING expr | USING CAST("c" AS t)]
//	[, ALTER COLUMN "c" DROP DEFAULT | SET DEFAULT v]
//	[, ALTER COLUMN "c" DROP NOT NULL | SET NOT NULL]
//
// Using wins over CastAs when both are set.
func (g *Generator) visitChangeColumnDefinition(n *schema.ChangeColumnDefinition) (string, error) {
	sqlType, err := g.TypeSQL(n.Name, n.Type, n.TypeOptions)
	if err != nil {
		return "", err
	}
	column := g.Quoter.QuoteIdentifier(n.Name)

	var castAs string
	if n.Using == "" && n.CastAs != "" {
		if castAs, err = g.TypeSQL(n.Name, n.CastAs, n.TypeOptions); err != nil {
			return "", err
		}
	}

	typeClause := sqldsl.Tokens{
		"ALTER COLUMN", column, "TYPE", sqlType,
		sqldsl.Optf(n.Collation != "", "COLLATE %s", g.Quoter.QuoteIdentifier(n.Collation)),
		sqldsl.Optf(n.Using != "", "USING %s", n.Using),
		sqldsl.Optf(castAs != "", "USING CAST(%s AS %s)", column, castAs),
	}
	clauses := sqldsl.List{typeClause.SQL()}

	if n.Default.Requested() {
		if n.Default.IsClear() {
			clauses = append(clauses, "ALTER COLUMN "+column+" DROP DEFAULT")
		} else {
			def, err := g.DefaultSQL(n.Name, n.Default.Value(), n.Type)
			if err != nil {
				return "", err
			}
			clauses = append(clauses, "ALTER COLUMN "+column+" SET DEFAULT "+def)
		}
	}

	switch n.Null {
	case schema.Nullable:
		clauses = append(clauses, "ALTER COLUMN "+column+" DROP NOT NULL")
	case schema.NotNullable:
		clauses = append(clauses, "ALTER COLUMN "+column+" SET NOT NULL")
	}

	return clauses.SQL(), nil
}

// ColumnOptions adds COLLATE and stored generated columns in front of the
// generic options.
func (g *Generator) ColumnOptions(col *schema.ColumnDefinition) (string, error) {
	var sb strings.Builder
	if col.Collation != "" {
		sb.WriteString(" COLLATE ")
		sb.WriteString(g.Quoter.QuoteIdentifier(col.Collation))
	}
	if col.As != "" {
		if !col.Stored {
			return "", &schema.ConfigurationError{
				Column: col.Name,
				Reason: "PostgreSQL does not support VIRTUAL (not persisted) generated columns, mark the column as stored",
			}
		}
		sb.WriteString(" GENERATED ALWAYS AS (")
		sb.WriteString(col.As)
		sb.WriteString(") STORED")
	}

	generic, err := g.Generator.ColumnOptions(col)
	if err != nil {
		return "", err
	}
	sb.WriteString(generic)
	return sb.String(), nil
}

// TableModifierInCreate returns " TEMPORARY", " UNLOGGED" or "".
// Temporary tables are never WAL-logged, so TEMPORARY wins when both are set.
func (g *Generator) TableModifierInCreate(t *schema.TableDefinition) string {
	switch {
	case t.Temporary:
		return " TEMPORARY"
	case t.Unlogged:
		return " UNLOGGED"
	}
	return ""
}
