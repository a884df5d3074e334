package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abi-cafe/abicafe-go/internal/abicafe"
	"github.com/abi-cafe/abicafe-go/internal/backend/stub"
)

func TestGenerate_WritesUnderGeneratedRoot(t *testing.T) {
	root := t.TempDir()
	cfg := abicafe.NewConfig()
	cfg.SetString("run.impls_root.generated", root)
	cfg.SetString("run.impls_root.handwritten", t.TempDir())

	a, b := stub.New("a"), stub.New("b")
	test := &abicafe.Test{Name: "demo", Funcs: []abicafe.Func{{Name: "f", Conventions: []abicafe.CallingConvention{abicafe.ConventionC}}}}

	callerSrc, calleeSrc, err := Generate(a, b, test, cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "demo_a_caller.stub"), callerSrc)
	assert.Equal(t, filepath.Join(root, "demo_b_callee.stub"), calleeSrc)
	assert.FileExists(t, callerSrc)
	assert.FileExists(t, calleeSrc)
}

func TestGenerate_HandwrittenRoutesToHandwrittenTree(t *testing.T) {
	handwrittenRoot := t.TempDir()
	cfg := abicafe.NewConfig()
	cfg.SetString("run.impls_root.generated", t.TempDir())
	cfg.SetString("run.impls_root.handwritten", handwrittenRoot)

	a, b := stub.New("a"), stub.New("b")
	test := &abicafe.Test{
		Name:  "demo",
		Funcs: []abicafe.Func{{Name: "f", Conventions: []abicafe.CallingConvention{abicafe.ConventionHandwritten}}},
	}

	callerPath := filepath.Join(handwrittenRoot, "demo_a_caller.stub")
	calleePath := filepath.Join(handwrittenRoot, "demo_b_callee.stub")
	require.NoError(t, os.WriteFile(callerPath, []byte("caller"), 0644))
	require.NoError(t, os.WriteFile(calleePath, []byte("callee"), 0644))

	callerSrc, calleeSrc, err := Generate(a, b, test, cfg)
	require.NoError(t, err)
	assert.Equal(t, callerPath, callerSrc)
	assert.Equal(t, calleePath, calleeSrc)
}

func TestGenerate_HandwrittenMissingFileIsFatal(t *testing.T) {
	cfg := abicafe.NewConfig()
	cfg.SetString("run.impls_root.generated", t.TempDir())
	cfg.SetString("run.impls_root.handwritten", t.TempDir())

	a, b := stub.New("a"), stub.New("b")
	test := &abicafe.Test{
		Name:  "demo",
		Funcs: []abicafe.Func{{Name: "f", Conventions: []abicafe.CallingConvention{abicafe.ConventionHandwritten}}},
	}

	_, _, err := Generate(a, b, test, cfg)
	require.Error(t, err)
	var buildErr *abicafe.BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "generate", buildErr.Op)
	var missing *abicafe.HandwrittenSourceMissingError
	assert.ErrorAs(t, err, &missing)
}
