// Package value implements the closed runtime Value algebra: a tagged
// sum mirroring the non-parametric DataTypes, each self-reporting its
// DataType and implementing equality, comparison, arithmetic, and group
// (quantified) comparison. Values are one closed tagged struct rather
// than per-kind types behind an interface, so a Value can be passed,
// compared, and stored by value without boxing.
package value

import (
	"fmt"
	"time"

	"github.com/Olusamimaths/GQL/types"
)

type kind int

const (
	nullKind kind = iota
	boolKind
	intKind
	floatKind
	textKind
	dateKind
	timeKind
	dateTimeKind
	arrayKind
)

// Value is the closed tagged union over runtime values.
type Value struct {
	kind     kind
	b        bool
	i        int64
	f        float64
	s        string
	elemType types.DataType
	elems    []Value
}

const secondsPerDay = 86400

func Null() Value           { return Value{kind: nullKind} }
func Bool(b bool) Value     { return Value{kind: boolKind, b: b} }
func Int(i int64) Value     { return Value{kind: intKind, i: i} }
func Float(f float64) Value { return Value{kind: floatKind, f: f} }
func Text(s string) Value   { return Value{kind: textKind, s: s} }
func Date(ts int64) Value   { return Value{kind: dateKind, i: ts} }
func Time(ts int64) Value   { return Value{kind: timeKind, i: ts} }
func DateTime(ts int64) Value {
	return Value{kind: dateTimeKind, i: ts}
}

func Array(elemType types.DataType, elems []Value) Value {
	return Value{kind: arrayKind, elemType: elemType, elems: elems}
}

func (v Value) IsNull() bool { return v.kind == nullKind }

func (v Value) AsBool() (bool, bool)       { return v.b, v.kind == boolKind }
func (v Value) AsInt() (int64, bool)       { return v.i, v.kind == intKind }
func (v Value) AsFloat() (float64, bool)   { return v.f, v.kind == floatKind }
func (v Value) AsText() (string, bool)     { return v.s, v.kind == textKind }
func (v Value) AsTimestamp() (int64, bool) {
	return v.i, v.kind == dateKind || v.kind == timeKind || v.kind == dateTimeKind
}
func (v Value) AsArray() ([]Value, bool) { return v.elems, v.kind == arrayKind }

// DataType reports the value's self-described type.
func (v Value) DataType() types.DataType {
	switch v.kind {
	case nullKind:
		return types.Null()
	case boolKind:
		return types.Boolean()
	case intKind:
		return types.Integer()
	case floatKind:
		return types.Float()
	case textKind:
		return types.Text()
	case dateKind:
		return types.Date()
	case timeKind:
		return types.Time()
	case dateTimeKind:
		return types.DateTime()
	case arrayKind:
		return types.Array(v.elemType)
	default:
		return types.Null()
	}
}

// Literal renders the value the way the engine would print it in DESCRIBE
// output or DO results: canonical date/time formats, Go's default numeric
// formatting otherwise.
func (v Value) Literal() string {
	switch v.kind {
	case nullKind:
		return "NULL"
	case boolKind:
		return fmt.Sprintf("%t", v.b)
	case intKind:
		return fmt.Sprintf("%d", v.i)
	case floatKind:
		return fmt.Sprintf("%g", v.f)
	case textKind:
		return v.s
	case dateKind:
		return time.Unix(v.i, 0).UTC().Format(DateFormat)
	case timeKind:
		return time.Unix(v.i, 0).UTC().Format(TimeFormat)
	case dateTimeKind:
		return time.Unix(v.i, 0).UTC().Format(DateTimeFormat)
	case arrayKind:
		out := "["
		for i, e := range v.elems {
			if i > 0 {
				out += ", "
			}
			out += e.Literal()
		}
		return out + "]"
	default:
		return ""
	}
}

// Equals is null-safe full-value equality (used by `IN` membership
// tests), distinct from the typed eq_op below which two NULLs
// never satisfy without an explicit `IS NULL`.
func (v Value) Equals(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case nullKind:
		return true
	case boolKind:
		return v.b == other.b
	case intKind:
		return v.i == other.i
	case floatKind:
		return v.f == other.f
	case textKind:
		return v.s == other.s
	case dateKind, timeKind, dateTimeKind:
		return v.i == other.i
	case arrayKind:
		if len(v.elems) != len(other.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equals(other.elems[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Compare returns -1/0/1, or an error if the two values aren't ordered
// against each other (mismatched kinds, excepting Int/Float widening).
func (v Value) Compare(other Value) (int, error) {
	switch {
	case v.kind == intKind && other.kind == intKind:
		return cmpInt(v.i, other.i), nil
	case v.kind == floatKind && other.kind == floatKind:
		return cmpFloat(v.f, other.f), nil
	case v.kind == intKind && other.kind == floatKind:
		return cmpFloat(float64(v.i), other.f), nil
	case v.kind == floatKind && other.kind == intKind:
		return cmpFloat(v.f, float64(other.i)), nil
	case v.kind == textKind && other.kind == textKind:
		return cmpString(v.s, other.s), nil
	case (v.kind == dateKind || v.kind == timeKind || v.kind == dateTimeKind) && v.kind == other.kind:
		return cmpInt(v.i, other.i), nil
	case v.kind == boolKind && other.kind == boolKind:
		return cmpInt(boolToInt(v.b), boolToInt(other.b)), nil
	default:
		return 0, fmt.Errorf("unexpected type to compare with")
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
