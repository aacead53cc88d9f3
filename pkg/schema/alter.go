package schema

// AlterTable describes an ALTER TABLE statement.
//
// The rendered statement is the generic fragment (ALTER TABLE <name> followed
// by Changes) and then, each separated by one space: every constraint
// validation, every exclusion constraint add, every exclusion constraint drop.
// The order is fixed.
type AlterTable struct {
	Name    string
	Changes []AlterChange

	// ConstraintValidations names NOT VALID constraints to validate.
	ConstraintValidations    []string
	ExclusionConstraintAdds  []*ExclusionConstraintDefinition
	ExclusionConstraintDrops []string

	// DDL holds the rendered statement once a compiler has processed the
	// node. Generators never write it.
	DDL string
}

func (*AlterTable) node() {}

// IsEmpty reports whether the statement has nothing to do. PostgreSQL
// rejects an ALTER TABLE with no action.
func (a *AlterTable) IsEmpty() bool {
	return len(a.Changes) == 0 && len(a.ConstraintValidations) == 0 &&
		len(a.ExclusionConstraintAdds) == 0 && len(a.ExclusionConstraintDrops) == 0
}

// AddColumn appends an ADD COLUMN change and returns the column.
func (a *AlterTable) AddColumn(name string, typ ColumnType) *ColumnDefinition {
	c := &ColumnDefinition{Name: name, Type: typ}
	a.Changes = append(a.Changes, &AddColumnDefinition{Column: c})
	return c
}

// ValidateConstraint queues a VALIDATE CONSTRAINT clause.
func (a *AlterTable) ValidateConstraint(name string) {
	a.ConstraintValidations = append(a.ConstraintValidations, name)
}

// AddExclusionConstraint queues an ADD CONSTRAINT ... EXCLUDE clause.
func (a *AlterTable) AddExclusionConstraint(c *ExclusionConstraintDefinition) {
	a.ExclusionConstraintAdds = append(a.ExclusionConstraintAdds, c)
}

// DropExclusionConstraint queues a DROP CONSTRAINT clause.
func (a *AlterTable) DropExclusionConstraint(name string) {
	a.ExclusionConstraintDrops = append(a.ExclusionConstraintDrops, name)
}
