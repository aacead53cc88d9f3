package sqlgen

import (
	"fmt"

	"github.com/pthm/pgddl/internal/sqlgen/sqldsl"
	"github.com/pthm/pgddl/pkg/schema"
)

func (g *Generator) visitForeignKeyDefinition(fk *schema.ForeignKeyDefinition) (string, error) {
	onDelete, err := actionSQL(fk, "DELETE", fk.OnDelete)
	if err != nil {
		return "", err
	}
	onUpdate, err := actionSQL(fk, "UPDATE", fk.OnUpdate)
	if err != nil {
		return "", err
	}
	return sqldsl.Tokens{
		"CONSTRAINT", g.Quoter.QuoteIdentifier(fk.ConstraintName()),
		"FOREIGN KEY", g.quotedColumns(fk.Columns),
		"REFERENCES", g.Quoter.QuoteTableName(fk.ToTable), g.quotedColumns(fk.ReferencedColumns()),
		onDelete,
		onUpdate,
	}.SQL(), nil
}

func actionSQL(fk *schema.ForeignKeyDefinition, event string, action schema.ForeignKeyAction) (string, error) {
	switch action {
	case schema.NoAction:
		return "", nil
	case schema.Nullify:
		return "ON " + event + " SET NULL", nil
	case schema.Cascade:
		return "ON " + event + " CASCADE", nil
	case schema.Restrict:
		return "ON " + event + " RESTRICT", nil
	}
	return "", &schema.ConfigurationError{
		Table:  fk.FromTable,
		Reason: fmt.Sprintf("%q is not supported for ON %s, use nullify, cascade or restrict", action, event),
	}
}

func (g *Generator) visitCheckConstraintDefinition(c *schema.CheckConstraintDefinition) string {
	return sqldsl.Tokens{
		"CONSTRAINT", g.Quoter.QuoteIdentifier(c.ConstraintName()),
		"CHECK", sqldsl.Paren{Expr: sqldsl.Raw(c.Expression)}.SQL(),
	}.SQL()
}
