package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_JSON(t *testing.T) {
	t.Run("camelCase fields", func(t *testing.T) {
		r := Parse([]byte(`{"mainError":"AccessViolation at 0x1","callStack":"[0] 0x1 bad.dll+0x1"}`))
		assert.Equal(t, "AccessViolation at 0x1", r.MainError)
		assert.Equal(t, "[0] 0x1 bad.dll+0x1", r.CallStack)
	})

	t.Run("nested exception fields", func(t *testing.T) {
		r := Parse([]byte(`{"exception":{"message":"boom","stackTrace":"[0] 0x1 a.dll"}}`))
		assert.Equal(t, "boom", r.MainError)
		assert.Equal(t, "[0] 0x1 a.dll", r.CallStack)
	})

	t.Run("stack as array joins lines", func(t *testing.T) {
		r := Parse([]byte(`{"error":"e","stack":["[0] 0x1 a.dll","[1] 0x2 b.dll"]}`))
		assert.Equal(t, "[0] 0x1 a.dll\n[1] 0x2 b.dll", r.CallStack)
	})

	t.Run("first present key wins", func(t *testing.T) {
		r := Parse([]byte(`{"mainError":"primary","error":"secondary"}`))
		assert.Equal(t, "primary", r.MainError)
	})

	t.Run("missing fields stay empty", func(t *testing.T) {
		r := Parse([]byte(`{"unrelated":true}`))
		assert.Empty(t, r.MainError)
		assert.Empty(t, r.CallStack)
	})
}

func TestParse_Text(t *testing.T) {
	t.Run("splits at first frame-looking line", func(t *testing.T) {
		r := Parse([]byte("Unhandled exception: AccessViolation\nsecond error line\n[0] 0x1 bad.dll+0x1\n[1] 0x2 other.dll"))
		assert.Equal(t, "Unhandled exception: AccessViolation\nsecond error line", r.MainError)
		assert.Contains(t, r.CallStack, "[0] 0x1 bad.dll+0x1")
	})

	t.Run("no frames means all main error", func(t *testing.T) {
		r := Parse([]byte("just an error message"))
		assert.Equal(t, "just an error message", r.MainError)
		assert.Empty(t, r.CallStack)
	})

	t.Run("empty input", func(t *testing.T) {
		r := Parse(nil)
		assert.Empty(t, r.MainError)
		assert.Empty(t, r.CallStack)
	})

	t.Run("non-object JSON-ish text is treated as text", func(t *testing.T) {
		r := Parse([]byte(`"quoted error"`))
		assert.Equal(t, `"quoted error"`, r.MainError)
	})
}
