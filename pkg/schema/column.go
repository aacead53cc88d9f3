package schema

// ColumnType is a semantic column type such as "string" or "decimal".
// The quoting service maps it to a database type name. Names it does not
// recognise pass through verbatim, so native types ("tsrange", "geometry")
// can be used directly.
type ColumnType string

const (
	TypePrimaryKey  ColumnType = "primary_key"
	TypeString      ColumnType = "string"
	TypeText        ColumnType = "text"
	TypeInteger     ColumnType = "integer"
	TypeBigInt      ColumnType = "bigint"
	TypeFloat       ColumnType = "float"
	TypeDecimal     ColumnType = "decimal"
	TypeNumeric     ColumnType = "numeric"
	TypeDatetime    ColumnType = "datetime"
	TypeTimestamp   ColumnType = "timestamp"
	TypeTimestampTZ ColumnType = "timestamptz"
	TypeTime        ColumnType = "time"
	TypeDate        ColumnType = "date"
	TypeBinary      ColumnType = "binary"
	TypeBoolean     ColumnType = "boolean"
	TypeJSON        ColumnType = "json"
	TypeJSONB       ColumnType = "jsonb"
	TypeUUID        ColumnType = "uuid"
	TypeInet        ColumnType = "inet"
	TypeCIDR        ColumnType = "cidr"
	TypeMACAddr     ColumnType = "macaddr"
	TypeHstore      ColumnType = "hstore"
	TypeInterval    ColumnType = "interval"
	TypeXML         ColumnType = "xml"
	TypeTSVector    ColumnType = "tsvector"
	TypeCIText      ColumnType = "citext"
	TypeMoney       ColumnType = "money"
	TypePoint       ColumnType = "point"
	TypeBit         ColumnType = "bit"
	TypeBitVarying  ColumnType = "bit_varying"
)

// TypeOptions refine a ColumnType.
type TypeOptions struct {
	// Limit is the length for string/bit types and the byte size for integers.
	Limit int
	// Precision applies to decimal/numeric and time types.
	Precision *int
	// Scale applies to decimal/numeric and requires Precision.
	Scale *int
	// Array renders the type as an array ("integer[]").
	Array bool
}

// Int returns a pointer to n, for TypeOptions.Precision and Scale.
func Int(n int) *int {
	return &n
}

// ColumnDefinition describes a column inside CREATE TABLE or ADD COLUMN.
type ColumnDefinition struct {
	Name        string
	Type        ColumnType
	TypeOptions TypeOptions
	// SQLType overrides the rendered type name when set.
	SQLType string

	Default    Default
	Null       Nullability
	PrimaryKey bool

	// Collation is rendered as COLLATE "<collation>".
	Collation string

	// As is the generation expression of a generated column. PostgreSQL only
	// supports stored generated columns, so Stored must be true when As is set.
	As     string
	Stored bool
}

func (*ColumnDefinition) node() {}

// AddColumnDefinition adds a column in an ALTER TABLE.
type AddColumnDefinition struct {
	Column *ColumnDefinition
}

func (*AddColumnDefinition) node()        {}
func (*AddColumnDefinition) alterChange() {}

// DropColumn removes a column in an ALTER TABLE.
type DropColumn struct {
	Name string
}

func (*DropColumn) node()        {}
func (*DropColumn) alterChange() {}

// ChangeColumnDefinition alters the type and attributes of an existing column.
//
// Using and CastAs both describe how existing values convert to the new type.
// When both are set Using wins; this is not an error.
type ChangeColumnDefinition struct {
	Name        string
	Type        ColumnType
	TypeOptions TypeOptions
	Collation   string

	// Using is a raw conversion expression: USING <expr>.
	Using string
	// CastAs renders USING CAST(<column> AS <type>), with TypeOptions applied.
	CastAs ColumnType

	Default Default
	Null    Nullability
}

func (*ChangeColumnDefinition) node()        {}
func (*ChangeColumnDefinition) alterChange() {}
