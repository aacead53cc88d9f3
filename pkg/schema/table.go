package schema

// TableDefinition describes a CREATE TABLE statement.
type TableDefinition struct {
	Name string

	// Temporary and Unlogged select the table modifier. Temporary tables are
	// already unlogged, so when both are set only TEMPORARY is rendered.
	Temporary   bool
	Unlogged    bool
	IfNotExists bool

	Columns              []*ColumnDefinition
	PrimaryKey           *PrimaryKeyDefinition
	ForeignKeys          []*ForeignKeyDefinition
	CheckConstraints     []*CheckConstraintDefinition
	ExclusionConstraints []*ExclusionConstraintDefinition

	// Options is appended verbatim after the column list
	// (e.g. "PARTITION BY RANGE (created_at)").
	Options string
	// As creates the table from a query: CREATE TABLE ... AS <query>.
	As string
}

func (*TableDefinition) node() {}

// Column appends a column and returns it for further configuration.
func (t *TableDefinition) Column(name string, typ ColumnType) *ColumnDefinition {
	c := &ColumnDefinition{Name: name, Type: typ}
	t.Columns = append(t.Columns, c)
	return c
}

// PrimaryKeyDefinition is a table-level (usually composite) primary key.
type PrimaryKeyDefinition struct {
	Columns []string
}

func (*PrimaryKeyDefinition) node() {}
