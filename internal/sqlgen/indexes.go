package sqlgen

import (
	"github.com/pthm/pgddl/internal/sqlgen/sqldsl"
	"github.com/pthm/pgddl/pkg/schema"
)

func (g *Generator) visitCreateIndexDefinition(n *schema.CreateIndexDefinition) (string, error) {
	idx := n.Index
	if idx == nil {
		return "", missingDefinition("index")
	}
	if idx.Expression == "" && len(idx.Columns) == 0 {
		return "", &schema.ConfigurationError{Table: idx.Table, Reason: "index needs columns or an expression"}
	}

	return sqldsl.Tokens{
		"CREATE",
		sqldsl.Optf(idx.Unique, "UNIQUE"),
		"INDEX",
		sqldsl.Optf(n.Concurrently, "CONCURRENTLY"),
		sqldsl.Optf(n.IfNotExists, "IF NOT EXISTS"),
		g.Quoter.QuoteIdentifier(idx.IndexName()),
		"ON", g.Quoter.QuoteTableName(idx.Table),
		sqldsl.Optf(idx.Using != "", "USING %s", idx.Using),
		g.indexKey(idx),
		sqldsl.Optf(len(idx.Include) > 0, "INCLUDE %s", g.quotedColumns(idx.Include)),
		sqldsl.Optf(idx.NullsNotDistinct, "NULLS NOT DISTINCT"),
		sqldsl.Optf(idx.Where != "", "WHERE %s", idx.Where),
	}.SQL(), nil
}

func (g *Generator) indexKey(idx *schema.IndexDefinition) string {
	if idx.Expression != "" {
		return sqldsl.Paren{Expr: sqldsl.Raw(idx.Expression)}.SQL()
	}
	columns := make([]string, 0, len(idx.Columns))
	for _, c := range idx.Columns {
		columns = append(columns, sqldsl.Tokens{
			g.Quoter.QuoteIdentifier(c.Name),
			c.Opclass,
			sqldsl.Keyword(string(c.Order)),
		}.SQL())
	}
	return sqldsl.ParenList(columns)
}
