package keypage

const (
	NoLimit      = -1
	MaxLimit     = 100
	DefaultLimit = 10
)

// IsNormalizedLimitMax clamps limit to (0, maxLimit] and reports whether the
// input was already within bounds. Non-positive limits fall back to
// DefaultLimit.
func IsNormalizedLimitMax(limit int, maxLimit int) (int, bool) {
	if limit <= 0 {
		return DefaultLimit, false
	} else if limit > maxLimit {
		return maxLimit, false
	}

	return limit, true
}

// NormalizeLimitMax clamps limit to (0, maxLimit].
func NormalizeLimitMax(limit int, maxLimit int) int {
	ret, _ := IsNormalizedLimitMax(limit, maxLimit)
	return ret
}

// NormalizeLimit clamps limit to (0, MaxLimit].
func NormalizeLimit(limit int) int {
	return NormalizeLimitMax(limit, MaxLimit)
}
