package backend

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abi-cafe/abicafe-go/internal/abicafe"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	_, ok := reg.Get("c")
	require.False(t, ok)

	reg.Register(stubBackend{name: "c"})
	reg.Register(stubBackend{name: "rust"})

	b, ok := reg.Get("c")
	require.True(t, ok)
	assert.Equal(t, "c", b.Name())

	assert.ElementsMatch(t, []string{"c", "rust"}, reg.Names())
}

// stubBackend is a minimal Backend satisfying the interface for registry
// tests, independent of any real generate/compile behavior.
type stubBackend struct{ name string }

func (b stubBackend) Name() string      { return b.name }
func (b stubBackend) SourceExt() string { return "stub" }
func (b stubBackend) SupportedConventions() []abicafe.CallingConvention {
	return []abicafe.CallingConvention{abicafe.ConventionC}
}
func (b stubBackend) GenerateCaller(w io.Writer, test *abicafe.Test) error { return nil }
func (b stubBackend) GenerateCallee(w io.Writer, test *abicafe.Test) error { return nil }
func (b stubBackend) CompileCaller(sourcePath, desiredLibName string) (string, error) {
	return desiredLibName, nil
}
func (b stubBackend) CompileCallee(sourcePath, desiredLibName string) (string, error) {
	return desiredLibName, nil
}
