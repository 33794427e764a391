package customer

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

type Page struct {
	Number int
	Limit  int
}

// ParsePage reads a 1-based page number. Absent, non-numeric or zero input
// yields DefaultPage; negative values are returned unchanged.
func ParsePage(raw string) int {
	return parseOrDefault(raw, DefaultPage)
}

// ParseLimit reads a page size with the same fallback policy as ParsePage.
func ParseLimit(raw string) int {
	return parseOrDefault(raw, DefaultLimit)
}

func parseOrDefault(raw string, def int) int {
	n, ok := ParseLeadingInt(raw)
	if !ok || n == 0 {
		return def
	}
	if n > math.MaxInt {
		return math.MaxInt
	}
	if n < math.MinInt {
		return math.MinInt
	}
	return int(n)
}

// ParseLeadingInt reads the integer at the start of raw, after any leading
// whitespace: an optional sign, then decimal digits or a 0x-prefixed hex
// number. Trailing characters are ignored, so "2abc" and "1.5" read as 2
// and 1. ok is false when no digits are found. Values beyond int64
// saturate.
func ParseLeadingInt(raw string) (n int64, ok bool) {
	i := 0
	for i < len(raw) && isSpace(raw[i]) {
		i++
	}

	neg := false
	if i < len(raw) && (raw[i] == '+' || raw[i] == '-') {
		neg = raw[i] == '-'
		i++
	}

	base := uint64(10)
	if i+2 < len(raw) && raw[i] == '0' && (raw[i+1] == 'x' || raw[i+1] == 'X') && digitValue(raw[i+2]) < 16 {
		base = 16
		i += 2
	}

	const limit = uint64(math.MaxInt64) + 1
	var acc uint64
	digits := 0
	for ; i < len(raw); i++ {
		d := digitValue(raw[i])
		if d >= base {
			break
		}
		digits++
		if acc <= (limit-d)/base {
			acc = acc*base + d
		} else {
			acc = limit
		}
	}
	if digits == 0 {
		return 0, false
	}

	if neg {
		if acc >= limit {
			return math.MinInt64, true
		}
		return -int64(acc), true
	}
	if acc >= limit {
		return math.MaxInt64, true
	}
	return int64(acc), true
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func digitValue(b byte) uint64 {
	switch {
	case b >= '0' && b <= '9':
		return uint64(b - '0')
	case b >= 'a' && b <= 'f':
		return uint64(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return uint64(b-'A') + 10
	}
	return math.MaxUint64
}

// Window returns the [start, end) slice bounds of this page over n items.
// Pages past the end, and pages with a non-positive number or size, give
// an empty window. No intermediate product can overflow.
func (p Page) Window(n int) (start, end int) {
	if p.Number < 1 || p.Limit < 1 || n <= 0 {
		return 0, 0
	}

	pages := n / p.Limit
	if n%p.Limit != 0 {
		pages++
	}
	if p.Number-1 >= pages {
		return n, n
	}

	start = (p.Number - 1) * p.Limit
	end = start + min(p.Limit, n-start)
	return start, end
}
