package email

// IntNSource is the random source used by PickNext. *rand.Rand from
// math/rand/v2 satisfies it.
type IntNSource interface {
	IntN(n int) int
}

// PickNext returns a template index in [0, n) that differs from previous.
// A negative or out-of-range previous excludes nothing. With n <= 1 the
// result is always 0.
func PickNext(src IntNSource, previous, n int) int {
	if n <= 1 {
		return 0
	}
	if previous < 0 || previous >= n {
		return src.IntN(n)
	}

	// draw from the n-1 remaining slots and skip over previous
	i := src.IntN(n - 1)
	if i >= previous {
		i++
	}
	return i
}
