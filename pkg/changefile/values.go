package changefile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pthm/pgddl/pkg/schema"
)

// defaultValue records whether a default key was present at all, so that
// `default: null` can be told apart from no default.
type defaultValue struct {
	present bool
	value   any
}

func (d *defaultValue) UnmarshalJSON(data []byte) error {
	d.present = true
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	d.value = normalizeNumbers(v)
	return nil
}

// normalizeNumbers turns json.Number into int64 or float64 so the quoting
// service sees plain Go numbers.
func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		f, _ := val.Float64()
		return f
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeNumbers(item)
		}
	case []any:
		for i, item := range val {
			val[i] = normalizeNumbers(item)
		}
	}
	return v
}

func resolveDefault(d defaultValue, expr string, drop bool) (schema.Default, error) {
	n := 0
	for _, set := range []bool{d.present, expr != "", drop} {
		if set {
			n++
		}
	}
	if n > 1 {
		return schema.NoDefault, errors.New("default, default_expr and drop_default are mutually exclusive")
	}
	switch {
	case drop:
		return schema.DropDefault(), nil
	case expr != "":
		return schema.DefaultExpr(expr), nil
	case d.present:
		return schema.DefaultTo(d.value), nil
	}
	return schema.NoDefault, nil
}

// deferrableOption accepts `deferrable: true|false` or a mode name.
type deferrableOption struct {
	value schema.Deferrable
}

func (d *deferrableOption) UnmarshalJSON(data []byte) error {
	var enabled bool
	if err := json.Unmarshal(data, &enabled); err == nil {
		if enabled {
			d.value = schema.DeferrableConstraint()
		}
		return nil
	}

	var mode string
	if err := json.Unmarshal(data, &mode); err != nil {
		return fmt.Errorf("deferrable must be a boolean or one of immediate, deferred: %s", data)
	}
	switch m := schema.DeferralMode(mode); m {
	case schema.DeferImmediate, schema.DeferDeferred:
		d.value = schema.DeferrableInitially(m)
	default:
		return fmt.Errorf("unknown deferrable mode %q, use immediate or deferred", mode)
	}
	return nil
}
