// Package types implements the closed DataType algebra: a tagged sum over
// {Any, Null, Boolean, Integer, Float, Text, Date, Time, DateTime, Array,
// Variant}, with per-kind capability tables for binary operator groups,
// unary operators, and explicit casts. Kinds are a closed Go enum with
// switch-based dispatch rather than an open interface hierarchy, so
// adding a new kind is a compile-time-checked, single-file change.
package types

// Kind is the tag of a DataType.
type Kind int

const (
	AnyKind Kind = iota
	NullKind
	BooleanKind
	IntegerKind
	FloatKind
	TextKind
	DateKind
	TimeKind
	DateTimeKind
	ArrayKind
	VariantKind
)

func (k Kind) String() string {
	switch k {
	case AnyKind:
		return "Any"
	case NullKind:
		return "Null"
	case BooleanKind:
		return "Boolean"
	case IntegerKind:
		return "Integer"
	case FloatKind:
		return "Float"
	case TextKind:
		return "Text"
	case DateKind:
		return "Date"
	case TimeKind:
		return "Time"
	case DateTimeKind:
		return "DateTime"
	case ArrayKind:
		return "Array"
	case VariantKind:
		return "Variant"
	default:
		return "Unknown"
	}
}

// DataType is a tagged value over the closed Kind set. Elem is only
// meaningful for ArrayKind; Alternatives only for VariantKind.
type DataType struct {
	Kind         Kind
	Elem         *DataType
	Alternatives []DataType
}

func Any() DataType      { return DataType{Kind: AnyKind} }
func Null() DataType     { return DataType{Kind: NullKind} }
func Boolean() DataType  { return DataType{Kind: BooleanKind} }
func Integer() DataType  { return DataType{Kind: IntegerKind} }
func Float() DataType    { return DataType{Kind: FloatKind} }
func Text() DataType     { return DataType{Kind: TextKind} }
func Date() DataType     { return DataType{Kind: DateKind} }
func Time() DataType     { return DataType{Kind: TimeKind} }
func DateTime() DataType { return DataType{Kind: DateTimeKind} }

func Array(elem DataType) DataType {
	e := elem
	return DataType{Kind: ArrayKind, Elem: &e}
}

func Variant(alternatives ...DataType) DataType {
	return DataType{Kind: VariantKind, Alternatives: alternatives}
}

func (t DataType) IsAny() bool      { return t.Kind == AnyKind }
func (t DataType) IsNull() bool     { return t.Kind == NullKind }
func (t DataType) IsBoolean() bool  { return t.Kind == BooleanKind }
func (t DataType) IsInteger() bool  { return t.Kind == IntegerKind }
func (t DataType) IsFloat() bool    { return t.Kind == FloatKind }
func (t DataType) IsNumber() bool   { return t.Kind == IntegerKind || t.Kind == FloatKind }
func (t DataType) IsText() bool     { return t.Kind == TextKind }
func (t DataType) IsDate() bool     { return t.Kind == DateKind }
func (t DataType) IsTime() bool     { return t.Kind == TimeKind }
func (t DataType) IsDateTime() bool { return t.Kind == DateTimeKind }
func (t DataType) IsArray() bool    { return t.Kind == ArrayKind }
func (t DataType) IsVariant() bool  { return t.Kind == VariantKind }

func (t DataType) String() string {
	switch t.Kind {
	case ArrayKind:
		if t.Elem == nil {
			return "Array(Any)"
		}
		return "Array(" + t.Elem.String() + ")"
	case VariantKind:
		s := "Variant("
		for i, alt := range t.Alternatives {
			if i > 0 {
				s += " | "
			}
			s += alt.String()
		}
		return s + ")"
	default:
		return t.Kind.String()
	}
}

// variantContains reports whether any alternative equals other under
// strict (non-implicit) equality, used by Equals' Variant branch.
func (t DataType) variantContains(other DataType) bool {
	for _, alt := range t.Alternatives {
		if alt.strictEquals(other) {
			return true
		}
	}
	return false
}

func (t DataType) strictEquals(other DataType) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case ArrayKind:
		if t.Elem == nil || other.Elem == nil {
			return true
		}
		return t.Elem.strictEquals(*other.Elem)
	default:
		return true
	}
}
