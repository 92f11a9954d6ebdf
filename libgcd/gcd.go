package libgcd

// magnitude returns |v| without overflowing on math.MinInt.
func magnitude(v int) uint64 {
	if v < 0 {
		return uint64(-(v + 1)) + 1
	}
	return uint64(v)
}

// GCD returns the greatest common divisor of |a| and |b|, with GCD(0, x) = |x|.
func GCD(a, b int) uint64 {
	return gcdMag(magnitude(a), magnitude(b))
}

func gcdMag(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// SharesFactor reports if a and b share a common factor > 1, the edge predicate of a gcd graph.
func SharesFactor(a, b int) bool {
	return GCD(a, b) > 1
}
