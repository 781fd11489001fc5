package parser

import (
	"errors"
	"strings"
)

var (
	errEmptyNumber = errors.New("empty numeric token")
	errNotADigit   = errors.New("non-digit character in numeric token")
)

// splitOnce splits line at the first occurrence of sep, returning the
// pieces before and after it. It does not trim surrounding whitespace. The
// second return value is false if sep does not occur in line.
func splitOnce(line, sep string) (key, value string, ok bool) {
	i := strings.Index(line, sep)
	if i < 0 {
		return "", "", false
	}
	return line[:i], line[i+len(sep):], true
}

// leadingSpaces counts leading ASCII space characters (0x20 only). A tab
// or any other byte ends the count without being consumed.
func leadingSpaces(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

// parseChildCount parses a token of the literal form "n<digits>:", e.g.
// "n3:", returning the declared child count.
func parseChildCount(tok string) (uint32, bool) {
	if len(tok) < 3 || tok[0] != 'n' || tok[len(tok)-1] != ':' {
		return 0, false
	}
	digits := tok[1 : len(tok)-1]
	n, err := parseUnsigned(digits)
	if err != nil || n > 0xFFFFFFFF {
		return 0, false
	}
	return uint32(n), true
}

// parseUnsigned parses a decimal, non-negative integer with no sign and no
// leading/trailing whitespace. An empty string or any non-digit byte fails.
func parseUnsigned(s string) (uint64, error) {
	if len(s) == 0 {
		return 0, errEmptyNumber
	}
	var n uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, errNotADigit
		}
		n = n*10 + uint64(c-'0')
	}
	return n, nil
}
