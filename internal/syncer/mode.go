package syncer

// MostCommon returns the most frequent value of the projection key across
// items. Ties resolve deterministically to the first value in input order
// that reaches the winning count. Empty input yields the zero value of K.
func MostCommon[T any, K comparable](items []T, key func(T) K) K {
	var zero K
	if len(items) == 0 {
		return zero
	}

	counts := make(map[K]int, len(items))
	max := 0
	for _, item := range items {
		k := key(item)
		counts[k]++
		if counts[k] > max {
			max = counts[k]
		}
	}

	// First value in input order with the winning count.
	for _, item := range items {
		k := key(item)
		if counts[k] == max {
			return k
		}
	}
	return zero
}
