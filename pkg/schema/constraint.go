package schema

// ForeignKeyDefinition describes a foreign key constraint.
type ForeignKeyDefinition struct {
	FromTable string
	ToTable   string
	// Columns are the referencing columns on FromTable.
	Columns []string
	// PrimaryKey are the referenced columns on ToTable. Defaults to "id".
	PrimaryKey []string
	// Name defaults to a name derived from FromTable and Columns.
	Name string

	OnDelete ForeignKeyAction
	OnUpdate ForeignKeyAction

	Deferrable Deferrable
	// NotValid skips checking existing rows (validate: false).
	NotValid bool
}

func (*ForeignKeyDefinition) node() {}

// Validate reports whether existing rows are checked when the key is added.
func (fk *ForeignKeyDefinition) Validate() bool {
	return !fk.NotValid
}

// ConstraintName returns Name or the derived default.
func (fk *ForeignKeyDefinition) ConstraintName() string {
	if fk.Name != "" {
		return fk.Name
	}
	return ForeignKeyName(fk.FromTable, fk.Columns)
}

// ReferencedColumns returns PrimaryKey or the default "id".
func (fk *ForeignKeyDefinition) ReferencedColumns() []string {
	if len(fk.PrimaryKey) > 0 {
		return fk.PrimaryKey
	}
	return []string{"id"}
}

// AddForeignKey adds a foreign key in an ALTER TABLE.
type AddForeignKey struct {
	ForeignKey *ForeignKeyDefinition
}

func (*AddForeignKey) node()        {}
func (*AddForeignKey) alterChange() {}

// DropForeignKey drops a foreign key by constraint name.
type DropForeignKey struct {
	Name string
}

func (*DropForeignKey) node()        {}
func (*DropForeignKey) alterChange() {}

// CheckConstraintDefinition describes a CHECK constraint.
type CheckConstraintDefinition struct {
	Table      string
	Expression string
	// Name defaults to a name derived from Table and Expression.
	Name string
	// NotValid skips checking existing rows (validate: false).
	NotValid bool
}

func (*CheckConstraintDefinition) node() {}

// Validate reports whether existing rows are checked when the constraint is added.
func (c *CheckConstraintDefinition) Validate() bool {
	return !c.NotValid
}

// ConstraintName returns Name or the derived default.
func (c *CheckConstraintDefinition) ConstraintName() string {
	if c.Name != "" {
		return c.Name
	}
	return CheckConstraintName(c.Table, c.Expression)
}

// AddCheckConstraint adds a check constraint in an ALTER TABLE.
type AddCheckConstraint struct {
	Constraint *CheckConstraintDefinition
}

func (*AddCheckConstraint) node()        {}
func (*AddCheckConstraint) alterChange() {}

// DropCheckConstraint drops a check constraint by name.
type DropCheckConstraint struct {
	Name string
}

func (*DropCheckConstraint) node()        {}
func (*DropCheckConstraint) alterChange() {}

// ExclusionConstraintDefinition describes a PostgreSQL EXCLUDE constraint.
type ExclusionConstraintDefinition struct {
	Table string
	// Name defaults to a name derived from Table and Expression. It is
	// emitted unquoted unless the generator is told otherwise, so callers
	// pass an already safe identifier.
	Name string
	// Using is the index method (gist, spgist, ...). Optional.
	Using string
	// Expression is the element/operator list, e.g. "range WITH &&". Required.
	Expression string
	// Where is an optional partial-constraint predicate.
	Where string
}

func (*ExclusionConstraintDefinition) node() {}

// ConstraintName returns Name or the derived default.
func (c *ExclusionConstraintDefinition) ConstraintName() string {
	if c.Name != "" {
		return c.Name
	}
	return ExclusionConstraintName(c.Table, c.Expression)
}

// ValidateConstraint marks a NOT VALID constraint as valid.
type ValidateConstraint struct {
	Name string
}

func (*ValidateConstraint) node() {}

// AddExclusionConstraint adds an exclusion constraint in an ALTER TABLE.
type AddExclusionConstraint struct {
	Constraint *ExclusionConstraintDefinition
}

func (*AddExclusionConstraint) node() {}

// DropExclusionConstraint drops an exclusion constraint by name.
type DropExclusionConstraint struct {
	Name string
}

func (*DropExclusionConstraint) node() {}
