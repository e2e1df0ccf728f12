package pipeline

import (
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"

	"methylaseFinder/pkg/config"
)

const ScriptName = "DNA_methylase_finder_v1.0.sh"

// Script is the pipeline script shipped next to the launcher.
func Script(installDir string) string {
	return filepath.Join(installDir, ScriptName)
}

// Args renders cfg as the script's 17 positional arguments.
func Args(cfg *config.Config) []string {
	return []string{
		cfg.InputType,
		cfg.InputFile,
		cfg.RunTitle,
		strconv.Itoa(cfg.CPU),
		cfg.MethylaseHMMs,
		cfg.CDDPlusHMMs,
		cfg.LegitDomains,
		cfg.MotifBlastp,
		cfg.SubtypeHMMs,
		cfg.ProdigalArgs,
		cfg.PID,
		cfg.Coverage,
		cfg.SSubunitHMMs,
		cfg.REHMMs,
		cfg.InstallDir,
		config.FormatBool(cfg.Neighborhoods),
		config.FormatBool(cfg.Merge),
	}
}

func Command(cfg *config.Config, stdout, stderr io.Writer) *exec.Cmd {
	cmd := exec.Command(cfg.Bash, append([]string{Script(cfg.InstallDir)}, Args(cfg)...)...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd
}

// Run blocks until the pipeline exits. The process error is returned as is.
func Run(cfg *config.Config, stdout, stderr io.Writer) error {
	cmd := Command(cfg, stdout, stderr)
	slog.Info("Pipeline", "CMD", cmd)
	return cmd.Run()
}

// ExitCode maps an error from Run to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return exitErr.ExitCode()
	}
	return 1
}
