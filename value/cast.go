package value

import (
	"fmt"
	"strconv"

	"github.com/Olusamimaths/GQL/types"
)

// CastTo implements explicit CAST per the target's capability table
// (types.CanExplicitCastTo), and implicit Text->Date/Time/DateTime casts
// performed in-line by the type checker.
func (v Value) CastTo(target types.DataType) (Value, error) {
	switch target.Kind {
	case types.IntegerKind:
		switch v.kind {
		case intKind:
			return v, nil
		case floatKind:
			return Int(int64(v.f)), nil
		case textKind:
			i, err := strconv.ParseInt(v.s, 10, 64)
			if err != nil {
				return Value{}, fmt.Errorf("cannot cast %q to Integer", v.s)
			}
			return Int(i), nil
		}
	case types.FloatKind:
		switch v.kind {
		case floatKind:
			return v, nil
		case intKind:
			return Float(float64(v.i)), nil
		case textKind:
			f, err := strconv.ParseFloat(v.s, 64)
			if err != nil {
				return Value{}, fmt.Errorf("cannot cast %q to Float", v.s)
			}
			return Float(f), nil
		}
	case types.TextKind:
		return Text(v.Literal()), nil
	case types.BooleanKind:
		switch v.kind {
		case boolKind:
			return v, nil
		case textKind:
			b, err := strconv.ParseBool(v.s)
			if err != nil {
				return Value{}, fmt.Errorf("cannot cast %q to Boolean", v.s)
			}
			return Bool(b), nil
		}
	case types.DateKind:
		if v.kind == textKind {
			ts, ok := ParseDate(v.s)
			if !ok {
				return Value{}, fmt.Errorf("cannot cast %q to Date, expected format %s", v.s, DateFormat)
			}
			return Date(ts), nil
		}
		if v.kind == dateKind {
			return v, nil
		}
	case types.TimeKind:
		if v.kind == textKind {
			ts, ok := ParseTime(v.s)
			if !ok {
				return Value{}, fmt.Errorf("cannot cast %q to Time, expected format %s", v.s, TimeFormat)
			}
			return Time(ts), nil
		}
		if v.kind == timeKind {
			return v, nil
		}
	case types.DateTimeKind:
		if v.kind == textKind {
			ts, ok := ParseDateTime(v.s)
			if !ok {
				return Value{}, fmt.Errorf("cannot cast %q to DateTime, expected format %s", v.s, DateTimeFormat)
			}
			return DateTime(ts), nil
		}
		if v.kind == dateTimeKind {
			return v, nil
		}
	}
	return Value{}, fmt.Errorf("cannot cast %s to %s", v.DataType(), target)
}
