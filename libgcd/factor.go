package libgcd

// PrimeFactors returns the distinct prime factors of n in ascending order.
// 0 and 1 have no prime factors.
//
// Trial division is O(sqrt(n)), which is fine for the magnitudes the factor-chain builder targets.
func PrimeFactors(n uint64) []uint64 {
	if n < 2 {
		return nil
	}

	var primes []uint64
	if n%2 == 0 {
		primes = append(primes, 2)
		for n%2 == 0 {
			n /= 2
		}
	}
	for p := uint64(3); p <= n/p; p += 2 {
		if n%p == 0 {
			primes = append(primes, p)
			for n%p == 0 {
				n /= p
			}
		}
	}
	if n > 1 {
		primes = append(primes, n)
	}
	return primes
}
