package types

// Equals implements implicit-cast-aware type equality: a ≡ b iff a == b,
// or one side is Any, or one side is a Variant whose alternatives contain
// the other, or a documented implicit cast exists between them.
func Equals(a, b DataType) bool {
	if a.IsAny() || b.IsAny() {
		return true
	}
	if a.IsVariant() && a.variantContains(b) {
		return true
	}
	if b.IsVariant() && b.variantContains(a) {
		return true
	}
	if a.strictEquals(b) {
		return true
	}
	if canImplicitCast(a, b) || canImplicitCast(b, a) {
		return true
	}
	return false
}

// canImplicitCast reports whether `from` widens to `to` transparently:
// Integer -> Float, and Text -> Date/Time/DateTime when the literal would
// parse under the canonical formats (checked lazily at cast time, not
// here — type equality only asserts the *kind* pair is permitted).
func canImplicitCast(from, to DataType) bool {
	if from.IsInteger() && to.IsFloat() {
		return true
	}
	if from.IsText() && (to.IsDate() || to.IsTime() || to.IsDateTime()) {
		return true
	}
	return false
}
