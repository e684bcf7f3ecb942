package vm

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Opcode identifies one of the eight Brainfuck machine operations.
type Opcode uint8

const (
	OpMoveRight Opcode = iota // >
	OpMoveLeft                // <
	OpIncrement               // +
	OpDecrement               // -
	OpOutput                  // .
	OpInput                   // ,
	OpJumpIfZero              // [ site: skip the loop when the cell is zero
	OpJumpIfNonZero           // ] site: repeat the loop while the cell is non-zero
)

const (
	// TapeSize is the default number of byte cells on the tape.
	TapeSize = 10000
	// StartOffset is the default initial data pointer position.
	StartOffset = TapeSize / 2
)

var (
	ErrTapeUnderflow = errors.New("data pointer moved left of the tape")
	ErrTapeOverflow  = errors.New("data pointer moved past the end of the tape")
)

// Instruction is one compiled machine operation. Target is the absolute
// instruction index a jump transfers to; it is meaningful only for
// OpJumpIfZero and OpJumpIfNonZero and points at the matching bracket's
// own slot, so the unconditional post-step advance lands just past it.
type Instruction struct {
	Op     Opcode
	Target int
}

func (in Instruction) String() string {
	switch in.Op {
	case OpMoveRight:
		return ">"
	case OpMoveLeft:
		return "<"
	case OpIncrement:
		return "+"
	case OpDecrement:
		return "-"
	case OpOutput:
		return "."
	case OpInput:
		return ","
	case OpJumpIfZero:
		return fmt.Sprintf("jz %d", in.Target)
	case OpJumpIfNonZero:
		return fmt.Sprintf("jnz %d", in.Target)
	}
	return fmt.Sprintf("op(%d)", in.Op)
}

// Machine executes a compiled instruction list against a byte tape.
// Program and Tape are owned by the machine for the duration of a run.
type Machine struct {
	Program []Instruction

	Tape []byte
	DP   int // data pointer, index into Tape
	IP   int // instruction pointer, index into Program

	// Input supplies bytes for OpInput. If nil, os.Stdin is used.
	// Reading past end of input stores a zero byte rather than failing.
	Input io.Reader
	// Output is where OpOutput bytes are sent. If nil, os.Stdout is used.
	Output io.Writer

	Halted bool
}

// NewMachine creates a machine for program with a zeroed default-size tape
// and the data pointer at the tape midpoint.
func NewMachine(program []Instruction) *Machine {
	return &Machine{
		Program: program,
		Tape:    make([]byte, TapeSize),
		DP:      StartOffset,
	}
}

func (m *Machine) inputSource() io.Reader {
	if m.Input != nil {
		return m.Input
	}
	return os.Stdin
}

func (m *Machine) outputSink() io.Writer {
	if m.Output != nil {
		return m.Output
	}
	return os.Stdout
}

// Step executes the instruction at IP. It is a no-op once the machine has
// halted. Moving the data pointer off either end of the tape fails the run;
// cell arithmetic wraps modulo 256.
func (m *Machine) Step() error {
	if m.Halted {
		return nil
	}
	if m.IP >= len(m.Program) {
		m.Halted = true
		return nil
	}

	instr := m.Program[m.IP]

	switch instr.Op {
	case OpMoveRight:
		if m.DP+1 >= len(m.Tape) {
			m.Halted = true
			return fmt.Errorf("%w (cell %d)", ErrTapeOverflow, m.DP+1)
		}
		m.DP++
	case OpMoveLeft:
		if m.DP == 0 {
			m.Halted = true
			return fmt.Errorf("%w (cell -1)", ErrTapeUnderflow)
		}
		m.DP--
	case OpIncrement:
		m.Tape[m.DP]++
	case OpDecrement:
		m.Tape[m.DP]--
	case OpOutput:
		if _, err := m.outputSink().Write(m.Tape[m.DP : m.DP+1]); err != nil {
			m.Halted = true
			return fmt.Errorf("write failed at instruction %d: %w", m.IP, err)
		}
	case OpInput:
		var buf [1]byte
		_, err := io.ReadFull(m.inputSource(), buf[:])
		switch {
		case err == nil:
			m.Tape[m.DP] = buf[0]
		case errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF):
			// Exhausted input reads as zero.
			m.Tape[m.DP] = 0
		default:
			m.Halted = true
			return fmt.Errorf("read failed at instruction %d: %w", m.IP, err)
		}
	case OpJumpIfZero:
		if m.Tape[m.DP] == 0 {
			m.IP = instr.Target
		}
	case OpJumpIfNonZero:
		if m.Tape[m.DP] != 0 {
			m.IP = instr.Target
		}
	}

	// Unconditional advance; a taken jump lands one past its target,
	// which is the matching bracket's own slot.
	m.IP++
	if m.IP >= len(m.Program) {
		m.Halted = true
	}

	return nil
}

// Run steps the machine until it halts or an instruction fails.
func (m *Machine) Run() error {
	for !m.Halted {
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Eval runs program on a fresh default machine with r as the input
// channel and w as the output channel.
func Eval(program []Instruction, r io.Reader, w io.Writer) error {
	m := NewMachine(program)
	m.Input = r
	m.Output = w
	return m.Run()
}
