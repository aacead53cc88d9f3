package sqlgen

import (
	"strings"

	"github.com/pthm/pgddl/pkg/schema"
)

func (g *Generator) visitColumnDefinition(col *schema.ColumnDefinition) (string, error) {
	sqlType := col.SQLType
	if sqlType == "" {
		var err error
		if sqlType, err = g.TypeSQL(col.Name, col.Type, col.TypeOptions); err != nil {
			return "", err
		}
	}

	sql := g.Quoter.QuoteIdentifier(col.Name) + " " + sqlType
	if col.Type == schema.TypePrimaryKey {
		return sql, nil
	}
	opts, err := g.outer.ColumnOptions(col)
	if err != nil {
		return "", err
	}
	return sql + opts, nil
}

// ColumnOptions renders the generic column options: DEFAULT, NOT NULL and
// PRIMARY KEY, in that order.
//
// A cleared default renders DEFAULT NULL, except on a NOT NULL column where
// it is omitted.
func (g *Generator) ColumnOptions(col *schema.ColumnDefinition) (string, error) {
	var sb strings.Builder
	if includeDefault(col) {
		def, err := g.DefaultSQL(col.Name, col.Default.Value(), col.Type)
		if err != nil {
			return "", err
		}
		sb.WriteString(" DEFAULT ")
		sb.WriteString(def)
	}
	if col.Null == schema.NotNullable {
		sb.WriteString(" NOT NULL")
	}
	if col.PrimaryKey {
		sb.WriteString(" PRIMARY KEY")
	}
	return sb.String(), nil
}

func includeDefault(col *schema.ColumnDefinition) bool {
	if !col.Default.Requested() {
		return false
	}
	return !(col.Default.IsClear() && col.Null == schema.NotNullable)
}

// DefaultSQL quotes a default value, naming the column in configuration
// errors.
func (g *Generator) DefaultSQL(column string, v any, t schema.ColumnType) (string, error) {
	sql, err := g.Quoter.QuoteDefault(v, t)
	if err != nil {
		return "", withColumn(column, err)
	}
	return sql, nil
}

// visitChangeColumnDefinition renders the portable type change only.
// Dialects extend it with USING, default and nullability clauses.
func (g *Generator) visitChangeColumnDefinition(n *schema.ChangeColumnDefinition) (string, error) {
	sqlType, err := g.TypeSQL(n.Name, n.Type, n.TypeOptions)
	if err != nil {
		return "", err
	}
	return "ALTER COLUMN " + g.Quoter.QuoteIdentifier(n.Name) + " SET DATA TYPE " + sqlType, nil
}
