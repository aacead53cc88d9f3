package schema

// Expr is a raw SQL expression used as a column default.
// It is emitted verbatim, never quoted.
type Expr string

// Default is a tri-state column default.
type Default struct {
	state defaultState
	value any
}

type defaultState uint8

const (
	defaultUnset defaultState = iota
	defaultClear
	defaultSet
)

// NoDefault leaves the default untouched. It is the zero value.
var NoDefault = Default{}

// DropDefault requests removal of the default (an explicit nil default).
func DropDefault() Default {
	return Default{state: defaultClear}
}

// DefaultTo requests the given default. A nil value is the same as DropDefault.
// Use Expr for SQL expressions such as now().
func DefaultTo(v any) Default {
	if v == nil {
		return DropDefault()
	}
	return Default{state: defaultSet, value: v}
}

// DefaultExpr requests a raw SQL expression default.
func DefaultExpr(sql string) Default {
	return DefaultTo(Expr(sql))
}

// Requested reports whether a default was explicitly requested (set or cleared).
func (d Default) Requested() bool {
	return d.state != defaultUnset
}

// IsClear reports whether the default is an explicit nil.
func (d Default) IsClear() bool {
	return d.state == defaultClear
}

// Value returns the requested value. It is nil unless the default is set.
func (d Default) Value() any {
	return d.value
}

// Nullability is a tri-state NULL / NOT NULL request.
type Nullability uint8

const (
	// NullUnset leaves nullability untouched.
	NullUnset Nullability = iota
	// Nullable allows NULL (null: true).
	Nullable
	// NotNullable forbids NULL (null: false).
	NotNullable
)

// DeferralMode is the INITIALLY timing of a deferrable constraint.
type DeferralMode string

const (
	DeferImmediate DeferralMode = "immediate"
	DeferDeferred  DeferralMode = "deferred"
)

// Deferrable describes whether and how a constraint may be deferred.
// The zero value is not deferrable.
type Deferrable struct {
	enabled bool
	mode    DeferralMode
}

// NotDeferrable is the zero Deferrable.
var NotDeferrable = Deferrable{}

// DeferrableConstraint renders plain DEFERRABLE with no INITIALLY clause.
func DeferrableConstraint() Deferrable {
	return Deferrable{enabled: true}
}

// DeferrableInitially renders DEFERRABLE INITIALLY <mode>. An empty mode is
// the same as DeferrableConstraint.
func DeferrableInitially(mode DeferralMode) Deferrable {
	return Deferrable{enabled: true, mode: mode}
}

// Enabled reports whether DEFERRABLE should be emitted.
func (d Deferrable) Enabled() bool {
	return d.enabled
}

// Mode returns the INITIALLY mode, if one was named.
func (d Deferrable) Mode() (DeferralMode, bool) {
	return d.mode, d.enabled && d.mode != ""
}

// ForeignKeyAction is the ON DELETE / ON UPDATE behaviour of a foreign key.
type ForeignKeyAction string

const (
	// NoAction omits the clause entirely.
	NoAction ForeignKeyAction = ""
	Nullify  ForeignKeyAction = "nullify"
	Cascade  ForeignKeyAction = "cascade"
	Restrict ForeignKeyAction = "restrict"
)
