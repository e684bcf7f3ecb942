package vm

import (
	"fmt"
	"strings"
)

// Listing renders program as a human-readable listing, one instruction per
// line with its absolute index. Useful for inspecting resolved jump targets.
func Listing(program []Instruction) string {
	var b strings.Builder
	for i, in := range program {
		fmt.Fprintf(&b, "%4d  %s\n", i, in)
	}
	return b.String()
}
