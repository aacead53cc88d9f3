package sqlgen

import (
	"github.com/pthm/pgddl/internal/sqlgen/sqldsl"
	"github.com/pthm/pgddl/pkg/schema"
)

func (g *Generator) visitTableDefinition(t *schema.TableDefinition) (string, error) {
	var elements []string
	for _, col := range t.Columns {
		sql, err := g.outer.Accept(col)
		if err != nil {
			return "", err
		}
		elements = append(elements, sql)
	}
	if t.PrimaryKey != nil {
		sql, err := g.outer.Accept(t.PrimaryKey)
		if err != nil {
			return "", err
		}
		elements = append(elements, sql)
	}
	for _, fk := range t.ForeignKeys {
		sql, err := g.outer.Accept(foreignKeyInCreate(t.Name, fk))
		if err != nil {
			return "", err
		}
		elements = append(elements, sql)
	}
	for _, chk := range t.CheckConstraints {
		sql, err := g.outer.Accept(checkInCreate(t.Name, chk))
		if err != nil {
			return "", err
		}
		elements = append(elements, sql)
	}
	for _, exc := range t.ExclusionConstraints {
		sql, err := g.outer.Accept(exc)
		if err != nil {
			return "", err
		}
		elements = append(elements, sql)
	}

	return sqldsl.Tokens{
		"CREATE" + g.outer.TableModifierInCreate(t) + " TABLE",
		sqldsl.Optf(t.IfNotExists, "IF NOT EXISTS"),
		g.Quoter.QuoteTableName(t.Name),
		sqldsl.Optf(len(elements) > 0, "%s", sqldsl.ParenList(elements)),
		t.Options,
		sqldsl.Optf(t.As != "", "AS %s", t.As),
	}.SQL(), nil
}

// foreignKeyInCreate fills in the referencing table of a key declared
// inline, so its default name matches the one ADD would derive.
func foreignKeyInCreate(table string, fk *schema.ForeignKeyDefinition) *schema.ForeignKeyDefinition {
	if fk.FromTable != "" {
		return fk
	}
	inline := *fk
	inline.FromTable = table
	return &inline
}

func checkInCreate(table string, c *schema.CheckConstraintDefinition) *schema.CheckConstraintDefinition {
	if c.Table != "" {
		return c
	}
	inline := *c
	inline.Table = table
	return &inline
}

// TableModifierInCreate returns " TEMPORARY" for temporary tables.
func (g *Generator) TableModifierInCreate(t *schema.TableDefinition) string {
	if t.Temporary {
		return " TEMPORARY"
	}
	return ""
}
