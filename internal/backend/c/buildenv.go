package c

import "github.com/abi-cafe/abicafe-go/internal/abicafe"

// buildEnv is read by every subsequent compile/link invocation this
// backend makes, until replaced. Its zero value still compiles (empty
// HOST/TARGET/OUT_DIR, OPT_LEVEL=0), just without the propagated
// tuning spec section 6 asks for.
var buildEnv abicafe.BuildEnv

// SetBuildEnv installs env. internal/driver calls this once per Build,
// derived from the active Config and HostTriple, before compiling
// either side of a pairing.
func (b *Backend) SetBuildEnv(env abicafe.BuildEnv) { buildEnv = env }
