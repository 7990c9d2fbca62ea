package callstack

import "testing"

func FuzzParserParse(f *testing.F) {
	// Seeds: well-formed frame, fallback-shaped line, and junk.
	f.Add("[0] 0x00007FF6A1B2C3D4 GameEngine.dll+0x1A2B3C -> Update\n")
	f.Add("crashed near 0xBADF00D in kernelbase.dll HandleException\n")
	f.Add("not a frame\n\x00\xff[")
	f.Add("[999999999999999999999] 0xZZ +++")

	p := NewParser()
	f.Fuzz(func(t *testing.T, s string) {
		first := p.Parse(s)
		second := p.Parse(s)
		if len(first) != len(second) {
			t.Fatalf("parse not idempotent: %d vs %d frames", len(first), len(second))
		}
	})
}

func FuzzAnalyzerAnalyze(f *testing.F) {
	f.Add("[0] 0x1 a.dll+0x1\n[1] 0x2 a.dll+0x2\n", "a.dll")
	f.Add("", "")
	f.Add("0x0 0x0 0x0", "\x00")

	a := NewAnalyzer()
	f.Fuzz(func(t *testing.T, stack, pattern string) {
		analysis := a.Analyze(stack, []string{pattern})
		if analysis.TotalFrames != len(analysis.Frames) {
			t.Fatalf("frame count mismatch: %d vs %d", analysis.TotalFrames, len(analysis.Frames))
		}
	})
}
