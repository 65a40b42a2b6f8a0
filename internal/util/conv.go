package util

import (
	"strconv"
)

// ParseID converts a path or query parameter to an id, returning 0 on
// malformed input. 0 is never a valid row id, so callers treat it as bad
// input.
func ParseID(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// FormatID renders a row id in the decimal form path parameters carry it in.
func FormatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
