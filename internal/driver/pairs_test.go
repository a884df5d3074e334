package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abi-cafe/abicafe-go/internal/abicafe"
	"github.com/abi-cafe/abicafe-go/internal/backend"
	"github.com/abi-cafe/abicafe-go/internal/backend/stub"
)

func TestPairs_CrossProduct(t *testing.T) {
	reg := backend.NewRegistry()
	reg.Register(stub.New("a"))
	reg.Register(stub.New("b"))

	pairs := Pairs(reg)
	assert.ElementsMatch(t, []Pair{
		{Caller: "a", Callee: "a"},
		{Caller: "a", Callee: "b"},
		{Caller: "b", Callee: "a"},
		{Caller: "b", Callee: "b"},
	}, pairs)
}

func testConfig(dir string) *abicafe.Config {
	cfg := abicafe.NewConfig()
	cfg.SetString("build.out_dir", dir)
	cfg.SetString("run.impls_root.generated", dir)
	cfg.SetString("run.impls_root.handwritten", dir)
	return cfg
}

func TestRunTest_UnregisteredBackendIsSkipped(t *testing.T) {
	reg := backend.NewRegistry()
	reg.Register(stub.New("a"))

	results := RunTest(reg, []Pair{{Caller: "a", Callee: "missing"}}, &abicafe.Test{Name: "demo"}, testConfig(t.TempDir()))
	if assert.Len(t, results, 1) {
		var unsupported *abicafe.UnsupportedError
		assert.ErrorAs(t, results[0].Err, &unsupported)
	}
}

func TestBuild_StubBackendCannotLink(t *testing.T) {
	reg := backend.NewRegistry()
	reg.Register(stub.New("a"))
	b, _ := reg.Get("a")

	_, err := Build(b, b, &abicafe.Test{Name: "demo"}, testConfig(t.TempDir()), t.TempDir())
	if assert.Error(t, err) {
		var buildErr *abicafe.BuildError
		assert.ErrorAs(t, err, &buildErr)
		assert.Equal(t, "link", buildErr.Op)
	}
}
