package compiler

import (
	"fmt"

	"gobf/pkg/vm"
)

// UnmatchedBracketError reports a bracket with no structural partner.
// Index counts only recognized instruction characters, so comments and
// whitespace in the source do not shift it.
type UnmatchedBracketError struct {
	Index int
}

func (e *UnmatchedBracketError) Error() string {
	return fmt.Sprintf("unmatched bracket at index %d", e.Index)
}

// isInstruction reports whether c is one of the eight recognized
// instruction characters. Everything else is inert and dropped.
func isInstruction(c byte) bool {
	switch c {
	case '>', '<', '+', '-', '.', ',', '[', ']':
		return true
	}
	return false
}

// Compile lowers source text to a machine program with all jump targets
// resolved. Each bracket provisionally carries its own index as target and
// the jump kind that belongs at the *other* end of the pair; swapping the
// two instructions of every matched pair then puts the zero-conditional
// jump at the '[' site and the non-zero-conditional jump at the ']' site,
// each targeting its partner's slot.
func Compile(source string) ([]vm.Instruction, error) {
	var (
		program  []vm.Instruction
		open     []int    // indexes of '[' still awaiting a ']'
		pairs    [][2]int // matched (open, close) index pairs
		filtered int      // index among recognized characters only
	)

	for i := 0; i < len(source); i++ {
		c := source[i]
		if !isInstruction(c) {
			continue
		}
		idx := filtered
		filtered++

		var instr vm.Instruction
		switch c {
		case '>':
			instr = vm.Instruction{Op: vm.OpMoveRight}
		case '<':
			instr = vm.Instruction{Op: vm.OpMoveLeft}
		case '+':
			instr = vm.Instruction{Op: vm.OpIncrement}
		case '-':
			instr = vm.Instruction{Op: vm.OpDecrement}
		case '.':
			instr = vm.Instruction{Op: vm.OpOutput}
		case ',':
			instr = vm.Instruction{Op: vm.OpInput}
		case '[':
			open = append(open, idx)
			instr = vm.Instruction{Op: vm.OpJumpIfNonZero, Target: idx}
		case ']':
			if len(open) == 0 {
				return nil, &UnmatchedBracketError{Index: idx}
			}
			match := open[len(open)-1]
			open = open[:len(open)-1]
			pairs = append(pairs, [2]int{match, idx})
			instr = vm.Instruction{Op: vm.OpJumpIfZero, Target: idx}
		}
		program = append(program, instr)
	}

	if len(open) > 0 {
		// Report the earliest still-open bracket.
		return nil, &UnmatchedBracketError{Index: open[0]}
	}

	for _, p := range pairs {
		program[p[0]], program[p[1]] = program[p[1]], program[p[0]]
	}

	return program, nil
}
