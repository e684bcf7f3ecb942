package vm

import "testing"

// BenchmarkDispatch measures the raw dispatch overhead of the Step loop by
// running a straight block of increment instructions.
func BenchmarkDispatch(b *testing.B) {
	const incCount = 1000

	program := make([]Instruction, incCount)
	for i := range program {
		program[i] = Instruction{Op: OpIncrement}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m := newSilentMachine(program)
		if err := m.Run(); err != nil {
			b.Fatalf("Run: %v", err)
		}
	}
}

// BenchmarkCountdownLoop measures jump-heavy execution: a cell is raised to
// 255 and a [-] loop drains it back to zero.
func BenchmarkCountdownLoop(b *testing.B) {
	program := make([]Instruction, 0, 258)
	for i := 0; i < 255; i++ {
		program = append(program, Instruction{Op: OpIncrement})
	}
	program = append(program,
		Instruction{Op: OpJumpIfZero, Target: 257},
		Instruction{Op: OpDecrement},
		Instruction{Op: OpJumpIfNonZero, Target: 255},
	)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m := newSilentMachine(program)
		if err := m.Run(); err != nil {
			b.Fatalf("Run: %v", err)
		}
		if m.Tape[m.DP] != 0 {
			b.Fatalf("expected drained cell, got %d", m.Tape[m.DP])
		}
	}
}
