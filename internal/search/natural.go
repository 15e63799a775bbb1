package search

// NaturalCompare orders strings the way people read them: runs of digits
// compare by numeric value, ASCII letters ignore case and leading whitespace
// is skipped. Zeros padding a number at the very start of a string are
// ignored; elsewhere runs starting with '0' compare digit by digit, as
// fractions do.
func NaturalCompare(a, b string) int {
	if a == "" || b == "" {
		return len(a) - len(b)
	}
	ai, bi := skipLeadingZeros(a), skipLeadingZeros(b)
	for {
		for ai < len(a) && isSpace(a[ai]) {
			ai++
		}
		for bi < len(b) && isSpace(b[bi]) {
			bi++
		}

		ca, cb := byteAt(a, ai), byteAt(b, bi)
		if isDigit(ca) && isDigit(cb) {
			var r int
			if ca == '0' || cb == '0' {
				r = compareLeft(a[ai:], b[bi:])
			} else {
				r = compareRight(a[ai:], b[bi:])
			}
			if r != 0 {
				return r
			}
		}

		if ca == 0 && cb == 0 {
			return 0
		}

		ca, cb = upper(ca), upper(cb)
		switch {
		case ca < cb:
			return -1
		case ca > cb:
			return 1
		}
		ai++
		bi++
	}
}

// NaturalLess is NaturalCompare with a byte-order tiebreak, so sorting is deterministic.
func NaturalLess(a, b string) bool {
	if c := NaturalCompare(a, b); c != 0 {
		return c < 0
	}
	return a < b
}

// skipLeadingZeros returns the index of the first significant digit when s
// opens with a zero-padded number.
func skipLeadingZeros(s string) int {
	i := 0
	for i+1 < len(s) && s[i] == '0' && isDigit(s[i+1]) {
		i++
	}
	return i
}

// compareRight compares integer runs: the longer run wins, otherwise the first differing digit.
func compareRight(a, b string) int {
	bias := 0
	for i := 0; ; i++ {
		da, db := isDigit(byteAt(a, i)), isDigit(byteAt(b, i))
		switch {
		case !da && !db:
			return bias
		case !da:
			return -1
		case !db:
			return 1
		}
		if bias == 0 {
			if a[i] < b[i] {
				bias = -1
			} else if a[i] > b[i] {
				bias = 1
			}
		}
	}
}

// compareLeft compares fractional runs: the first differing digit decides.
func compareLeft(a, b string) int {
	for i := 0; ; i++ {
		da, db := isDigit(byteAt(a, i)), isDigit(byteAt(b, i))
		switch {
		case !da && !db:
			return 0
		case !da:
			return -1
		case !db:
			return 1
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
}

func byteAt(s string, i int) byte {
	if i < len(s) {
		return s[i]
	}
	return 0
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
