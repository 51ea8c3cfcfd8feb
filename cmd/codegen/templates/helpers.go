package templates

//go:generate qtc -dir=.

import (
	"strconv"
	"strings"
)

// prefixedStrings renders "p0, p1, ..., p{count-1}", used for type
// parameter and argument lists in the generated helpers.
func prefixedStrings(prefix string, count int) string {
	names := make([]string, count)
	for i := range names {
		names[i] = prefix + strconv.Itoa(i)
	}
	return strings.Join(names, ", ")
}
