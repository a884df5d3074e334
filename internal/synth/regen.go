package synth

import (
	"path/filepath"

	"github.com/abi-cafe/abicafe-go/internal/abicafe"
	"github.com/abi-cafe/abicafe-go/internal/manifest"
)

// Regenerate synthesizes every (name, base) pair in catalog and
// overwrites its checked-in manifest under dir. It is only ever invoked
// from the CLI's -procedural-regen flag, never as part of a normal run.
func Regenerate(dir string, cfg *abicafe.Config, catalog map[string][]abicafe.Val) error {
	small := cfg.GetInt("run.procedural.small_count")
	big := cfg.GetInt("run.procedural.big_count")
	for name, base := range catalog {
		test := Synthesize(name, base, small, big)
		path := filepath.Join(dir, name+".yaml")
		if err := manifest.Save(path, test); err != nil {
			return err
		}
	}
	return nil
}
