package compiler

import (
	"io"
	"strings"
	"testing"

	"gobf/pkg/vm"
)

func BenchmarkCompile(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Compile(helloWorld); err != nil {
			b.Fatalf("Compile: %v", err)
		}
	}
}

func BenchmarkCompileAndRun(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		program, err := Compile(helloWorld)
		if err != nil {
			b.Fatalf("Compile: %v", err)
		}
		if err := vm.Eval(program, strings.NewReader(""), io.Discard); err != nil {
			b.Fatalf("Eval: %v", err)
		}
	}
}
