//go:build !js

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gobf/pkg/compiler"
	"gobf/pkg/utils"
	"gobf/pkg/vm"
)

func main() {
	inPath := flag.String("in", "", "input Brainfuck source file path")
	dump := flag.Bool("dump", false, "print the compiled instruction listing")
	runProgram := flag.Bool("run", false, "run the compiled program on the virtual machine")
	tapeSize := flag.Int("tape", vm.TapeSize, "number of cells on the tape")
	start := flag.Int("start", -1, "initial data pointer position (default: tape midpoint)")
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "nothing to do: provide -in <file> to compile, plus -dump and/or -run")
		flag.Usage()
		os.Exit(2)
	}

	fullPath, _, err := utils.PathInfo(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve input path %q: %v\n", *inPath, err)
		os.Exit(1)
	}

	source, err := os.ReadFile(fullPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read input file %q: %v\n", fullPath, err)
		os.Exit(1)
	}

	program, err := compiler.Compile(string(source))
	if err != nil {
		var unmatched *compiler.UnmatchedBracketError
		if errors.As(err, &unmatched) {
			fmt.Fprintf(os.Stderr, "The program is incorrect. Unmatched bracket at index %d\n", unmatched.Index)
		} else {
			fmt.Fprintf(os.Stderr, "compilation failed: %v\n", err)
		}
		os.Exit(1)
	}

	if *dump {
		fmt.Print(vm.Listing(program))
	}

	if !*runProgram {
		if !*dump {
			fmt.Printf("compiled %d instructions from %s\n", len(program), fullPath)
		}
		return
	}

	if err := runCompiled(program, *tapeSize, *start); err != nil {
		fmt.Fprintf(os.Stderr, "run failed for %q: %v\n", fullPath, err)
		os.Exit(1)
	}
}

func runCompiled(program []vm.Instruction, tapeSize, start int) error {
	if tapeSize <= 0 {
		return fmt.Errorf("tape size must be positive, got %d", tapeSize)
	}
	if start < 0 {
		start = tapeSize / 2
	}
	if start >= tapeSize {
		return fmt.Errorf("start position %d is outside a %d-cell tape", start, tapeSize)
	}

	m := vm.NewMachine(program)
	m.Tape = make([]byte, tapeSize)
	m.DP = start
	m.Input = os.Stdin
	m.Output = os.Stdout
	return m.Run()
}
