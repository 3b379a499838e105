package value

import (
	"fmt"
	"math"
)

// Add/Sub/Mul/Div implement the arithmetic operators: Integer arithmetic
// is i64 with overflow a returned error at eval time, Float arithmetic is
// IEEE-754, and Date±Int treats the integer operand as a whole number of
// days (86400 seconds each).

func (v Value) Add(other Value) (Value, error) {
	switch {
	case v.kind == dateKind && other.kind == intKind:
		return Date(v.i + other.i*secondsPerDay), nil
	case v.kind == intKind && other.kind == intKind:
		sum, ok := addOverflow(v.i, other.i)
		if !ok {
			return Value{}, fmt.Errorf("integer overflow computing %d + %d", v.i, other.i)
		}
		return Int(sum), nil
	case v.kind == floatKind || other.kind == floatKind:
		return Float(toFloat(v) + toFloat(other)), nil
	default:
		return Value{}, fmt.Errorf("unexpected type to perform `+` with")
	}
}

func (v Value) Sub(other Value) (Value, error) {
	switch {
	case v.kind == dateKind && other.kind == intKind:
		return Date(v.i - other.i*secondsPerDay), nil
	case v.kind == intKind && other.kind == intKind:
		diff, ok := subOverflow(v.i, other.i)
		if !ok {
			return Value{}, fmt.Errorf("integer overflow computing %d - %d", v.i, other.i)
		}
		return Int(diff), nil
	case v.kind == floatKind || other.kind == floatKind:
		return Float(toFloat(v) - toFloat(other)), nil
	default:
		return Value{}, fmt.Errorf("unexpected type to perform `-` with")
	}
}

func (v Value) Mul(other Value) (Value, error) {
	switch {
	case v.kind == intKind && other.kind == intKind:
		product, ok := mulOverflow(v.i, other.i)
		if !ok {
			return Value{}, fmt.Errorf("integer overflow computing %d * %d", v.i, other.i)
		}
		return Int(product), nil
	case v.kind == floatKind || other.kind == floatKind:
		return Float(toFloat(v) * toFloat(other)), nil
	default:
		return Value{}, fmt.Errorf("unexpected type to perform `*` with")
	}
}

func (v Value) Div(other Value) (Value, error) {
	switch {
	case v.kind == intKind && other.kind == intKind:
		if other.i == 0 {
			return Value{}, fmt.Errorf("division by zero")
		}
		return Int(v.i / other.i), nil
	case v.kind == floatKind || other.kind == floatKind:
		divisor := toFloat(other)
		if divisor == 0 {
			return Value{}, fmt.Errorf("division by zero")
		}
		return Float(toFloat(v) / divisor), nil
	default:
		return Value{}, fmt.Errorf("unexpected type to perform `/` with")
	}
}

func toFloat(v Value) float64 {
	switch v.kind {
	case intKind:
		return float64(v.i)
	case floatKind:
		return v.f
	default:
		return 0
	}
}

func addOverflow(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

func subOverflow(a, b int64) (int64, bool) {
	diff := a - b
	if (b < 0 && diff < a) || (b > 0 && diff > a) {
		return 0, false
	}
	return diff, true
}

func mulOverflow(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	product := a * b
	if product/b != a {
		return 0, false
	}
	if a == math.MinInt64 || b == math.MinInt64 {
		return 0, false
	}
	return product, true
}

// Neg/Not/BitNot implement the unary operators.
func (v Value) Neg() (Value, error) {
	switch v.kind {
	case intKind:
		return Int(-v.i), nil
	case floatKind:
		return Float(-v.f), nil
	default:
		return Value{}, fmt.Errorf("unexpected type to perform unary `-` with")
	}
}

func (v Value) Not() (Value, error) {
	if v.kind != boolKind {
		return Value{}, fmt.Errorf("unexpected type to perform `!` with")
	}
	return Bool(!v.b), nil
}

func (v Value) BitNot() (Value, error) {
	if v.kind != intKind {
		return Value{}, fmt.Errorf("unexpected type to perform `~` with")
	}
	return Int(^v.i), nil
}

// BitOr/BitAnd/BitXor/Shl/Shr implement the bitwise binary operators,
// Integer-only.
func (v Value) BitOr(other Value) (Value, error)  { return bitwise(v, other, "|", func(a, b int64) int64 { return a | b }) }
func (v Value) BitAnd(other Value) (Value, error) { return bitwise(v, other, "&", func(a, b int64) int64 { return a & b }) }
func (v Value) BitXor(other Value) (Value, error) { return bitwise(v, other, "^", func(a, b int64) int64 { return a ^ b }) }
func (v Value) Shl(other Value) (Value, error)    { return bitwise(v, other, "<<", func(a, b int64) int64 { return a << uint(b) }) }
func (v Value) Shr(other Value) (Value, error)    { return bitwise(v, other, ">>", func(a, b int64) int64 { return a >> uint(b) }) }

func bitwise(v, other Value, op string, f func(a, b int64) int64) (Value, error) {
	if v.kind != intKind || other.kind != intKind {
		return Value{}, fmt.Errorf("unexpected type to perform `%s` with", op)
	}
	return Int(f(v.i, other.i)), nil
}
