package quoting

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/pthm/pgddl/pkg/schema"
)

// Postgres quotes for PostgreSQL with standard_conforming_strings on.
type Postgres struct{}

// QuoteIdentifier implements Quoter.
func (Postgres) QuoteIdentifier(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// QuoteTableName implements Quoter.
func (Postgres) QuoteTableName(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}

// QuoteLiteral implements Quoter.
//
// pq emits backslash-containing literals in the E'' form with a leading
// space, which is trimmed here.
func (Postgres) QuoteLiteral(s string) string {
	return strings.TrimLeft(pq.QuoteLiteral(s), " ")
}

// QuoteDefault implements Quoter.
//
// Strings are quoted as literals with one exception: a uuid default that
// contains "()" is emitted verbatim, so gen_random_uuid() stays a function
// call. Pass a schema.Expr for any other function or expression default.
func (p Postgres) QuoteDefault(v any, t schema.ColumnType) (string, error) {
	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case schema.Expr:
		return string(val), nil
	case string:
		// Function defaults such as gen_random_uuid() are kept as SQL.
		if t == schema.TypeUUID && strings.Contains(val, "()") {
			return val, nil
		}
		return p.QuoteLiteral(val), nil
	case bool:
		if val {
			return "TRUE", nil
		}
		return "FALSE", nil
	case int:
		return strconv.FormatInt(int64(val), 10), nil
	case int8:
		return strconv.FormatInt(int64(val), 10), nil
	case int16:
		return strconv.FormatInt(int64(val), 10), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float32:
		return formatFloat(float64(val), 32), nil
	case float64:
		return formatFloat(val, 64), nil
	case time.Time:
		return p.QuoteLiteral(formatTime(val, t)), nil
	case []byte:
		return `'\x` + hex.EncodeToString(val) + `'`, nil
	case map[string]any, []any:
		if t != schema.TypeJSON && t != schema.TypeJSONB {
			break
		}
		b, err := json.Marshal(val)
		if err != nil {
			return "", &schema.ConfigurationError{Reason: fmt.Sprintf("cannot encode json default: %v", err)}
		}
		return p.QuoteLiteral(string(b)), nil
	}
	return "", &schema.ConfigurationError{Reason: fmt.Sprintf("unsupported default value of type %T for %s column", v, t)}
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "'NaN'"
	case math.IsInf(f, 1):
		return "'Infinity'"
	case math.IsInf(f, -1):
		return "'-Infinity'"
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}

func formatTime(v time.Time, t schema.ColumnType) string {
	switch t {
	case schema.TypeDate:
		return v.Format(time.DateOnly)
	case schema.TypeTime:
		return v.Format("15:04:05.999999")
	case schema.TypeTimestampTZ:
		return v.Format("2006-01-02 15:04:05.999999-07:00")
	}
	return v.UTC().Format("2006-01-02 15:04:05.999999")
}
