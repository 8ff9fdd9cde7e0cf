// Package isbn cleans and checks book identifiers typed by users or read by barcode scanners.
package isbn

import "strings"

const (
	Length10 = 10
	Length13 = 13
)

// Normalize drops every character that is not a digit or an uppercase 'X'.
// The result may still have an invalid length; use IsValid for that.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if (c >= '0' && c <= '9') || c == 'X' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// IsValid reports whether the normalized identifier has 10 or 13 characters.
// Check digits are not verified.
func IsValid(id string) bool {
	n := len(Normalize(id))
	return n == Length10 || n == Length13
}

// HasValidChecksum verifies the ISBN-10 or ISBN-13 check digit of id.
// Informational only: lookups never reject an identifier because of it.
func HasValidChecksum(id string) bool {
	id = Normalize(id)
	switch len(id) {
	case Length10:
		return validISBN10(id)
	case Length13:
		return validISBN13(id)
	default:
		return false
	}
}

func validISBN10(id string) bool {
	sum := 0
	for i := 0; i < Length10; i++ {
		var digit int
		switch c := id[i]; {
		case c == 'X':
			if i != Length10-1 {
				return false
			}
			digit = 10
		default:
			digit = int(c - '0')
		}
		sum += digit * (Length10 - i)
	}
	return sum%11 == 0
}

func validISBN13(id string) bool {
	sum := 0
	for i := 0; i < Length13; i++ {
		c := id[i]
		if c == 'X' {
			return false
		}
		digit := int(c - '0')
		if i%2 == 0 {
			sum += digit
		} else {
			sum += digit * 3
		}
	}
	return sum%10 == 0
}
