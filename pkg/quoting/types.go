package quoting

import (
	"fmt"
	"strconv"

	"github.com/pthm/pgddl/pkg/schema"
)

// nativeTypes maps semantic types to PostgreSQL type names.
var nativeTypes = map[schema.ColumnType]string{
	schema.TypePrimaryKey:  "bigserial primary key",
	schema.TypeString:      "character varying",
	schema.TypeText:        "text",
	schema.TypeInteger:     "integer",
	schema.TypeBigInt:      "bigint",
	schema.TypeFloat:       "float",
	schema.TypeDecimal:     "decimal",
	schema.TypeNumeric:     "numeric",
	schema.TypeDatetime:    "timestamp",
	schema.TypeTimestamp:   "timestamp",
	schema.TypeTimestampTZ: "timestamp with time zone",
	schema.TypeTime:        "time",
	schema.TypeDate:        "date",
	schema.TypeBinary:      "bytea",
	schema.TypeBoolean:     "boolean",
	schema.TypeJSON:        "json",
	schema.TypeJSONB:       "jsonb",
	schema.TypeUUID:        "uuid",
	schema.TypeInet:        "inet",
	schema.TypeCIDR:        "cidr",
	schema.TypeMACAddr:     "macaddr",
	schema.TypeHstore:      "hstore",
	schema.TypeInterval:    "interval",
	schema.TypeXML:         "xml",
	schema.TypeTSVector:    "tsvector",
	schema.TypeCIText:      "citext",
	schema.TypeMoney:       "money",
	schema.TypePoint:       "point",
	schema.TypeBit:         "bit",
	schema.TypeBitVarying:  "bit varying",
	"int4range":            "int4range",
	"int8range":            "int8range",
	"numrange":             "numrange",
	"tsrange":              "tsrange",
	"tstzrange":            "tstzrange",
	"daterange":            "daterange",
}

// TypeToSQL implements Quoter.
func (Postgres) TypeToSQL(t schema.ColumnType, opts schema.TypeOptions) (string, error) {
	sql, err := baseTypeSQL(t, opts)
	if err != nil {
		return "", err
	}
	if opts.Array {
		sql += "[]"
	}
	return sql, nil
}

func baseTypeSQL(t schema.ColumnType, opts schema.TypeOptions) (string, error) {
	native, ok := nativeTypes[t]
	if !ok {
		return string(t), nil
	}

	switch t {
	case schema.TypeInteger:
		return integerType(opts.Limit)

	case schema.TypeString, schema.TypeBit, schema.TypeBitVarying:
		if opts.Limit > 0 {
			return native + "(" + strconv.Itoa(opts.Limit) + ")", nil
		}

	case schema.TypeDecimal, schema.TypeNumeric:
		switch {
		case opts.Precision != nil && opts.Scale != nil:
			return fmt.Sprintf("%s(%d,%d)", native, *opts.Precision, *opts.Scale), nil
		case opts.Precision != nil:
			return fmt.Sprintf("%s(%d)", native, *opts.Precision), nil
		case opts.Scale != nil:
			return "", &schema.ConfigurationError{Reason: "precision cannot be empty if scale is specified"}
		}

	case schema.TypeDatetime, schema.TypeTimestamp, schema.TypeTime:
		if opts.Precision != nil {
			return fmt.Sprintf("%s(%d)", native, *opts.Precision), nil
		}

	case schema.TypeTimestampTZ:
		if opts.Precision != nil {
			return fmt.Sprintf("timestamp(%d) with time zone", *opts.Precision), nil
		}
	}
	return native, nil
}

func integerType(limit int) (string, error) {
	switch limit {
	case 1, 2:
		return "smallint", nil
	case 0, 3, 4:
		return "integer", nil
	case 5, 6, 7, 8:
		return "bigint", nil
	}
	return "", &schema.ConfigurationError{
		Reason: fmt.Sprintf("no integer type has byte size %d, use a numeric with scale 0 instead", limit),
	}
}
