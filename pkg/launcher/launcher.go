// Package launcher ties argument parsing, dependency checks and the pipeline
// call together and decides the process exit status.
package launcher

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/liserjrqlxue/goUtil/fmtUtil"
	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/samber/lo"

	"methylaseFinder/pkg/config"
	"methylaseFinder/pkg/pipeline"
	"methylaseFinder/pkg/preflight"
)

const (
	ExitOK      = 0
	ExitMissing = 1
	ExitUsage   = 2
)

type App struct {
	InstallDir string

	// Checker defaults to PATH lookup and an importlib probe through --python.
	Checker *preflight.Checker
	// Invoke defaults to pipeline.Run.
	Invoke func(cfg *config.Config, stdout, stderr io.Writer) error
	// FileExists defaults to a stat that treats any error as absent.
	FileExists func(path string) bool
	// Started runs once parsing succeeds, before any check.
	Started func()

	Stdout io.Writer
	Stderr io.Writer
}

func (a *App) checker(cfg *config.Config) *preflight.Checker {
	if a.Checker != nil {
		return a.Checker
	}
	return &preflight.Checker{Importable: preflight.NewImportProbe(cfg.Python)}
}

func (a *App) invoke(cfg *config.Config) error {
	if a.Invoke != nil {
		return a.Invoke(cfg, a.Stdout, a.Stderr)
	}
	return pipeline.Run(cfg, a.Stdout, a.Stderr)
}

func (a *App) exists(path string) bool {
	if a.FileExists != nil {
		return a.FileExists(path)
	}
	// osUtil.FileExists only tolerates ErrNotExist from os.Stat.
	if _, err := os.Stat(path); err != nil {
		return false
	}
	return osUtil.FileExists(path)
}

// dbExists accepts a plain file or a BLAST database prefix.
func (a *App) dbExists(path string) bool {
	return lo.ContainsBy([]string{path, path + ".psq", path + ".pal"}, a.exists)
}

func usage(fs *flag.FlagSet) func() {
	return func() {
		w := fs.Output()
		fmt.Fprintf(w, "DNA Methylase Finder v%s\n\n", config.Version)
		fmt.Fprintf(w, "Usage: %s -it nucl|AA -f INPUT_FILE -r RUN_TITLE [options]\n\n", fs.Name())
		fs.PrintDefaults()
	}
}

// Run executes one launch and returns the exit status.
func (a *App) Run(argv []string) int {
	fs := flag.NewFlagSet("DNA_methylase_finder", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = usage(fs)

	cfg, err := config.Parse(fs, argv, a.InstallDir)
	switch {
	case errors.Is(err, flag.ErrHelp):
		fs.SetOutput(a.Stdout)
		fs.Usage()
		return ExitOK
	case errors.Is(err, config.ErrVersion):
		fmtUtil.Fprintln(a.Stdout, config.Version)
		return ExitOK
	case err != nil:
		fmtUtil.Fprintln(a.Stderr, err)
		fs.SetOutput(a.Stderr)
		fs.Usage()
		return ExitUsage
	}

	if a.Started != nil {
		a.Started()
	}
	fmtUtil.Fprintln(a.Stdout, cfg.InstallDir)
	checker := a.checker(cfg)

	if cfg.CheckDeps {
		outcomes := checker.CheckAll()
		for _, o := range outcomes {
			preflight.ReportSummary(a.Stdout, o)
		}
		if len(preflight.Missing(outcomes)) > 0 {
			return ExitMissing
		}
		return ExitOK
	}

	for _, r := range preflight.All() {
		o := checker.Check(r)
		preflight.Report(a.Stdout, o)
		if !o.Found {
			if o.Err != nil {
				slog.Error("Preflight", "name", o.Name, "err", o.Err)
			}
			return ExitMissing
		}
	}

	if script := pipeline.Script(cfg.InstallDir); !a.exists(script) {
		slog.Warn("pipeline script not found", "script", script)
	}
	for _, db := range lo.Reject(cfg.Databases(), func(p string, _ int) bool { return a.dbExists(p) }) {
		slog.Warn("database not found", "path", db)
	}

	err = a.invoke(cfg)
	if err != nil {
		slog.Error("Pipeline", "err", err)
	}
	return pipeline.ExitCode(err)
}
