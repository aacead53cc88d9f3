package changefile

import (
	"errors"
	"fmt"

	"github.com/pthm/pgddl/pkg/schema"
)

// The document types mirror the node model in snake_case. sigs.k8s.io/yaml
// converts YAML to JSON first, so they carry json tags.

type document struct {
	Changes []changeEntry `json:"changes"`
}

type changeEntry struct {
	CreateTable *tableDoc       `json:"create_table,omitempty"`
	AlterTable  *alterDoc       `json:"alter_table,omitempty"`
	CreateIndex *createIndexDoc `json:"create_index,omitempty"`
}

type typeDoc struct {
	Type      string `json:"type"`
	Limit     int    `json:"limit,omitempty"`
	Precision *int   `json:"precision,omitempty"`
	Scale     *int   `json:"scale,omitempty"`
	Array     bool   `json:"array,omitempty"`
}

func (t typeDoc) options() schema.TypeOptions {
	return schema.TypeOptions{Limit: t.Limit, Precision: t.Precision, Scale: t.Scale, Array: t.Array}
}

type columnDoc struct {
	Name string `json:"name"`
	typeDoc
	SQLType     string       `json:"sql_type,omitempty"`
	Default     defaultValue `json:"default"`
	DefaultExpr string       `json:"default_expr,omitempty"`
	DropDefault bool         `json:"drop_default,omitempty"`
	Null        *bool        `json:"null,omitempty"`
	PrimaryKey  bool         `json:"primary_key,omitempty"`
	Collation   string       `json:"collation,omitempty"`
	As          string       `json:"as,omitempty"`
	Stored      bool         `json:"stored,omitempty"`
}

func (c columnDoc) node() (*schema.ColumnDefinition, error) {
	if c.Name == "" {
		return nil, errors.New("column needs a name")
	}
	if c.Type == "" && c.SQLType == "" {
		return nil, fmt.Errorf("column %s needs a type", c.Name)
	}
	def, err := resolveDefault(c.Default, c.DefaultExpr, c.DropDefault)
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", c.Name, err)
	}
	return &schema.ColumnDefinition{
		Name:        c.Name,
		Type:        schema.ColumnType(c.Type),
		TypeOptions: c.options(),
		SQLType:     c.SQLType,
		Default:     def,
		Null:        nullability(c.Null),
		PrimaryKey:  c.PrimaryKey,
		Collation:   c.Collation,
		As:          c.As,
		Stored:      c.Stored,
	}, nil
}

type changeColumnDoc struct {
	Name string `json:"name"`
	typeDoc
	Collation   string       `json:"collation,omitempty"`
	Using       string       `json:"using,omitempty"`
	CastAs      string       `json:"cast_as,omitempty"`
	Default     defaultValue `json:"default"`
	DefaultExpr string       `json:"default_expr,omitempty"`
	DropDefault bool         `json:"drop_default,omitempty"`
	Null        *bool        `json:"null,omitempty"`
}

func (c changeColumnDoc) node() (*schema.ChangeColumnDefinition, error) {
	if c.Name == "" || c.Type == "" {
		return nil, errors.New("change_column needs a name and a type")
	}
	def, err := resolveDefault(c.Default, c.DefaultExpr, c.DropDefault)
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", c.Name, err)
	}
	return &schema.ChangeColumnDefinition{
		Name:        c.Name,
		Type:        schema.ColumnType(c.Type),
		TypeOptions: c.options(),
		Collation:   c.Collation,
		Using:       c.Using,
		CastAs:      schema.ColumnType(c.CastAs),
		Default:     def,
		Null:        nullability(c.Null),
	}, nil
}

type foreignKeyDoc struct {
	FromTable  string           `json:"from_table,omitempty"`
	ToTable    string           `json:"to_table"`
	Columns    []string         `json:"columns"`
	PrimaryKey []string         `json:"primary_key,omitempty"`
	Name       string           `json:"name,omitempty"`
	OnDelete   string           `json:"on_delete,omitempty"`
	OnUpdate   string           `json:"on_update,omitempty"`
	Deferrable deferrableOption `json:"deferrable"`
	Validate   *bool            `json:"validate,omitempty"`
}

func (f foreignKeyDoc) node(table string) (*schema.ForeignKeyDefinition, error) {
	if f.ToTable == "" || len(f.Columns) == 0 {
		return nil, errors.New("foreign key needs to_table and columns")
	}
	from := f.FromTable
	if from == "" {
		from = table
	}
	return &schema.ForeignKeyDefinition{
		FromTable:  from,
		ToTable:    f.ToTable,
		Columns:    f.Columns,
		PrimaryKey: f.PrimaryKey,
		Name:       f.Name,
		OnDelete:   schema.ForeignKeyAction(f.OnDelete),
		OnUpdate:   schema.ForeignKeyAction(f.OnUpdate),
		Deferrable: f.Deferrable.value,
		NotValid:   notValid(f.Validate),
	}, nil
}

type checkDoc struct {
	Expression string `json:"expression"`
	Name       string `json:"name,omitempty"`
	Validate   *bool  `json:"validate,omitempty"`
}

func (c checkDoc) node(table string) (*schema.CheckConstraintDefinition, error) {
	if c.Expression == "" {
		return nil, errors.New("check constraint needs an expression")
	}
	return &schema.CheckConstraintDefinition{
		Table:      table,
		Expression: c.Expression,
		Name:       c.Name,
		NotValid:   notValid(c.Validate),
	}, nil
}

type exclusionDoc struct {
	Name       string `json:"name,omitempty"`
	Using      string `json:"using,omitempty"`
	Expression string `json:"expression"`
	Where      string `json:"where,omitempty"`
}

func (e exclusionDoc) node(table string) *schema.ExclusionConstraintDefinition {
	return &schema.ExclusionConstraintDefinition{
		Table:      table,
		Name:       e.Name,
		Using:      e.Using,
		Expression: e.Expression,
		Where:      e.Where,
	}
}

type tableDoc struct {
	Name                 string          `json:"name"`
	Temporary            bool            `json:"temporary,omitempty"`
	Unlogged             bool            `json:"unlogged,omitempty"`
	IfNotExists          bool            `json:"if_not_exists,omitempty"`
	Columns              []columnDoc     `json:"columns,omitempty"`
	PrimaryKey           []string        `json:"primary_key,omitempty"`
	ForeignKeys          []foreignKeyDoc `json:"foreign_keys,omitempty"`
	CheckConstraints     []checkDoc      `json:"check_constraints,omitempty"`
	ExclusionConstraints []exclusionDoc  `json:"exclusion_constraints,omitempty"`
	Options              string          `json:"options,omitempty"`
	As                   string          `json:"as,omitempty"`
}

func (t *tableDoc) node() (*schema.TableDefinition, error) {
	if t.Name == "" {
		return nil, errors.New("create_table needs a name")
	}
	def := &schema.TableDefinition{
		Name:        t.Name,
		Temporary:   t.Temporary,
		Unlogged:    t.Unlogged,
		IfNotExists: t.IfNotExists,
		Options:     t.Options,
		As:          t.As,
	}
	for _, c := range t.Columns {
		col, err := c.node()
		if err != nil {
			return nil, err
		}
		def.Columns = append(def.Columns, col)
	}
	if len(t.PrimaryKey) > 0 {
		def.PrimaryKey = &schema.PrimaryKeyDefinition{Columns: t.PrimaryKey}
	}
	for _, f := range t.ForeignKeys {
		fk, err := f.node(t.Name)
		if err != nil {
			return nil, err
		}
		def.ForeignKeys = append(def.ForeignKeys, fk)
	}
	for _, c := range t.CheckConstraints {
		chk, err := c.node(t.Name)
		if err != nil {
			return nil, err
		}
		def.CheckConstraints = append(def.CheckConstraints, chk)
	}
	for _, e := range t.ExclusionConstraints {
		def.ExclusionConstraints = append(def.ExclusionConstraints, e.node(t.Name))
	}
	return def, nil
}

type nameDoc struct {
	Name string `json:"name"`
}

type alterChangeDoc struct {
	AddColumn           *columnDoc       `json:"add_column,omitempty"`
	DropColumn          *nameDoc         `json:"drop_column,omitempty"`
	ChangeColumn        *changeColumnDoc `json:"change_column,omitempty"`
	AddForeignKey       *foreignKeyDoc   `json:"add_foreign_key,omitempty"`
	DropForeignKey      *nameDoc         `json:"drop_foreign_key,omitempty"`
	AddCheckConstraint  *checkDoc        `json:"add_check_constraint,omitempty"`
	DropCheckConstraint *nameDoc         `json:"drop_check_constraint,omitempty"`
}

func (a alterChangeDoc) change(table string) (schema.AlterChange, error) {
	var (
		out schema.AlterChange
		set int
		err error
	)
	if a.AddColumn != nil {
		set++
		var col *schema.ColumnDefinition
		if col, err = a.AddColumn.node(); err == nil {
			out = &schema.AddColumnDefinition{Column: col}
		}
	}
	if a.DropColumn != nil {
		set++
		out = &schema.DropColumn{Name: a.DropColumn.Name}
	}
	if a.ChangeColumn != nil {
		set++
		out, err = a.ChangeColumn.node()
	}
	if a.AddForeignKey != nil {
		set++
		var fk *schema.ForeignKeyDefinition
		if fk, err = a.AddForeignKey.node(table); err == nil {
			out = &schema.AddForeignKey{ForeignKey: fk}
		}
	}
	if a.DropForeignKey != nil {
		set++
		out = &schema.DropForeignKey{Name: a.DropForeignKey.Name}
	}
	if a.AddCheckConstraint != nil {
		set++
		var chk *schema.CheckConstraintDefinition
		if chk, err = a.AddCheckConstraint.node(table); err == nil {
			out = &schema.AddCheckConstraint{Constraint: chk}
		}
	}
	if a.DropCheckConstraint != nil {
		set++
		out = &schema.DropCheckConstraint{Name: a.DropCheckConstraint.Name}
	}

	if set != 1 {
		return nil, fmt.Errorf("expected exactly one action per change, got %d", set)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

type alterDoc struct {
	Name                     string           `json:"name"`
	Changes                  []alterChangeDoc `json:"changes,omitempty"`
	ValidateConstraints      []string         `json:"validate_constraints,omitempty"`
	AddExclusionConstraints  []exclusionDoc   `json:"add_exclusion_constraints,omitempty"`
	DropExclusionConstraints []string         `json:"drop_exclusion_constraints,omitempty"`
}

func (a *alterDoc) node() (*schema.AlterTable, error) {
	if a.Name == "" {
		return nil, errors.New("alter_table needs a name")
	}
	alter := &schema.AlterTable{
		Name:                     a.Name,
		ConstraintValidations:    a.ValidateConstraints,
		ExclusionConstraintDrops: a.DropExclusionConstraints,
	}
	for i, c := range a.Changes {
		change, err := c.change(a.Name)
		if err != nil {
			return nil, fmt.Errorf("alter_table %s changes[%d]: %w", a.Name, i, err)
		}
		alter.Changes = append(alter.Changes, change)
	}
	for _, e := range a.AddExclusionConstraints {
		alter.AddExclusionConstraint(e.node(a.Name))
	}
	if alter.IsEmpty() {
		return nil, fmt.Errorf("alter_table %s has no changes", a.Name)
	}
	return alter, nil
}

type indexColumnDoc struct {
	Name    string `json:"name"`
	Order   string `json:"order,omitempty"`
	Opclass string `json:"opclass,omitempty"`
}

type createIndexDoc struct {
	Table            string           `json:"table"`
	Name             string           `json:"name,omitempty"`
	Columns          []indexColumnDoc `json:"columns,omitempty"`
	Expression       string           `json:"expression,omitempty"`
	Unique           bool             `json:"unique,omitempty"`
	Using            string           `json:"using,omitempty"`
	Include          []string         `json:"include,omitempty"`
	NullsNotDistinct bool             `json:"nulls_not_distinct,omitempty"`
	Where            string           `json:"where,omitempty"`
	Concurrently     bool             `json:"concurrently,omitempty"`
	IfNotExists      bool             `json:"if_not_exists,omitempty"`
}

func (c *createIndexDoc) node() (*schema.CreateIndexDefinition, error) {
	if c.Table == "" {
		return nil, errors.New("create_index needs a table")
	}
	idx := &schema.IndexDefinition{
		Table:            c.Table,
		Name:             c.Name,
		Expression:       c.Expression,
		Unique:           c.Unique,
		Using:            c.Using,
		Include:          c.Include,
		NullsNotDistinct: c.NullsNotDistinct,
		Where:            c.Where,
	}
	for _, col := range c.Columns {
		idx.Columns = append(idx.Columns, schema.IndexColumn{
			Name:    col.Name,
			Order:   schema.SortOrder(col.Order),
			Opclass: col.Opclass,
		})
	}
	return &schema.CreateIndexDefinition{
		Index:        idx,
		Concurrently: c.Concurrently,
		IfNotExists:  c.IfNotExists,
	}, nil
}

func nullability(null *bool) schema.Nullability {
	switch {
	case null == nil:
		return schema.NullUnset
	case *null:
		return schema.Nullable
	default:
		return schema.NotNullable
	}
}

func notValid(validate *bool) bool {
	return validate != nil && !*validate
}
