package schema

// SortOrder is the ordering of an index column.
type SortOrder string

const (
	Asc  SortOrder = "ASC"
	Desc SortOrder = "DESC"
)

// IndexColumn is one key column of an index.
type IndexColumn struct {
	Name    string
	Order   SortOrder
	Opclass string
}

// IndexDefinition describes an index.
type IndexDefinition struct {
	Table string
	// Name defaults to index_<table>_on_<columns>, or to a name derived from
	// Expression for expression indexes.
	Name    string
	Columns []IndexColumn
	// Expression replaces Columns with a raw key expression, e.g. "lower(email)".
	Expression string

	Unique bool
	// Using is the index method (btree, gin, gist, ...).
	Using string
	// Include lists non-key columns (INCLUDE (...)).
	Include          []string
	NullsNotDistinct bool
	// Where makes the index partial.
	Where string
}

// IndexName returns Name or the derived default.
func (i *IndexDefinition) IndexName() string {
	if i.Name != "" {
		return i.Name
	}
	if i.Expression != "" {
		return ExpressionIndexName(i.Table, i.Expression)
	}
	names := make([]string, 0, len(i.Columns))
	for _, c := range i.Columns {
		names = append(names, c.Name)
	}
	return IndexName(i.Table, names)
}

// CreateIndexDefinition describes a CREATE INDEX statement.
type CreateIndexDefinition struct {
	Index *IndexDefinition
	// Concurrently builds the index without locking writes.
	Concurrently bool
	IfNotExists  bool
}

func (*CreateIndexDefinition) node() {}
