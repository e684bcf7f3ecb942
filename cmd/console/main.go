package main

import (
	"errors"
	"fmt"
	"os"

	"gobf/pkg/compiler"
	"gobf/pkg/vm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "No program argument. Please provide an argument with Brainfuck program as a string.")
		os.Exit(2)
	}
	source := os.Args[1]

	program, err := compiler.Compile(source)
	if err != nil {
		var unmatched *compiler.UnmatchedBracketError
		if errors.As(err, &unmatched) {
			fmt.Fprintf(os.Stderr, "The program is incorrect. Unmatched bracket at index %d\n", unmatched.Index)
		} else {
			fmt.Fprintf(os.Stderr, "compilation failed: %v\n", err)
		}
		os.Exit(1)
	}

	if err := vm.Eval(program, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "run failed: %v\n", err)
		os.Exit(1)
	}
}
