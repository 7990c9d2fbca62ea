package callstack

import (
	"fmt"
	"strings"
	"testing"
)

func benchStack(frames int) string {
	var b strings.Builder
	for i := 0; i < frames; i++ {
		fmt.Fprintf(&b, "[%d] 0x%012X module%d.dll+0x%X -> Function%d\n", i, 0x7FF600000000+i, i%8, i, i%16)
	}
	return b.String()
}

func BenchmarkParserParse(b *testing.B) {
	p := NewParser()
	stack := benchStack(128)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Parse(stack)
	}
}

func BenchmarkAnalyzerAnalyze(b *testing.B) {
	a := NewAnalyzer()
	stack := benchStack(128)
	patterns := []string{"module3.dll", "Function7"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.Analyze(stack, patterns)
	}
}
