package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/abi-cafe/abicafe-go/internal/abicafe"
	"github.com/abi-cafe/abicafe-go/internal/backend"
	"github.com/abi-cafe/abicafe-go/internal/backend/c"
	"github.com/abi-cafe/abicafe-go/internal/backend/stub"
	"github.com/abi-cafe/abicafe-go/internal/devserver"
	"github.com/abi-cafe/abicafe-go/internal/diagnostics"
	"github.com/abi-cafe/abicafe-go/internal/driver"
	"github.com/abi-cafe/abicafe-go/internal/manifest"
	"github.com/abi-cafe/abicafe-go/internal/report"
	"github.com/abi-cafe/abicafe-go/internal/synth"
)

type args struct {
	manifestDir *string
	outDir      *string

	test    *string
	backend *string

	proceduralRegen *bool
	jsonOutput      *bool
	verbose         *bool
	lsp             *bool
}

func readArgs() *args {
	a := &args{
		manifestDir: flag.String("manifest-dir", "tests", "Directory holding ABI test manifests"),
		outDir:      flag.String("out-dir", "target/temp", "Directory for generated sources and compiled artifacts"),

		test:    flag.String("test", "", "Comma-separated manifest names to run (default: the built-in catalog)"),
		backend: flag.String("backend", "", "Comma-separated backend names to restrict the pairing matrix to (default: every registered backend)"),

		proceduralRegen: flag.Bool("procedural-regen", false, "Regenerate the procedural test catalog instead of running it"),
		jsonOutput:      flag.Bool("json", false, "Print the run summary as JSON instead of text"),
		verbose:         flag.Bool("verbose", false, "Enable debug-level diagnostics"),
		lsp:             flag.Bool("lsp", false, "Serve the run summary over stdio via the Language Server Protocol instead of printing it"),
	}
	flag.Parse()
	return a
}

func main() {
	a := readArgs()
	log := diagnostics.New(*a.verbose)
	driver.SetLogger(log)

	cfg := abicafe.NewConfig()
	cfg.SetString("run.manifest_dir", *a.manifestDir)
	cfg.SetString("build.out_dir", *a.outDir)

	reg := backend.NewRegistry()
	reg.Register(c.New())
	reg.Register(stub.New("stub"))

	if *a.proceduralRegen {
		if err := synth.Regenerate(cfg.GetString("run.manifest_dir"), cfg, synth.DefaultCatalog()); err != nil {
			log.WithError(err).Fatal("procedural regeneration failed")
		}
		log.Info("procedural manifests regenerated")
		return
	}

	testNames := abicafe.DefaultTestNames
	if *a.test != "" {
		testNames = strings.Split(*a.test, ",")
	}

	pairs := driver.Pairs(reg)
	if *a.backend != "" {
		allowed := map[string]bool{}
		for _, name := range strings.Split(*a.backend, ",") {
			allowed[name] = true
		}
		filtered := pairs[:0]
		for _, p := range pairs {
			if allowed[p.Caller] && allowed[p.Callee] {
				filtered = append(filtered, p)
			}
		}
		pairs = filtered
	}

	byTest := map[string][]driver.RunResult{}
	for _, name := range testNames {
		path := filepath.Join(cfg.GetString("run.manifest_dir"), name+".yaml")
		test, err := manifest.LoadFile(path)
		if err != nil {
			log.WithError(err).WithField("test", name).Error("failed to load manifest")
			continue
		}
		byTest[name] = driver.RunTest(reg, pairs, test, cfg)
	}

	summary := report.Collect(driver.HostTriple(c.Toolchain), byTest)

	if *a.lsp {
		engine := devserver.New(cfg.GetString("run.manifest_dir"))
		if err := engine.Serve(context.Background(), stdioReadWriteCloser{}, summary); err != nil {
			log.WithError(err).Fatal("devserver session ended with an error")
		}
		return
	}

	if *a.jsonOutput {
		if err := report.WriteJSON(os.Stdout, summary); err != nil {
			log.WithError(err).Fatal("failed to write JSON report")
		}
		return
	}
	report.WriteText(os.Stdout, summary)
}

// stdioReadWriteCloser adapts os.Stdin/os.Stdout to the io.ReadWriteCloser
// devserver.Engine.Serve speaks its LSP transport over.
type stdioReadWriteCloser struct{}

func (stdioReadWriteCloser) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdioReadWriteCloser) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdioReadWriteCloser) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}
