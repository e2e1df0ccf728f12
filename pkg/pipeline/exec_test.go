package pipeline

import (
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"methylaseFinder/pkg/config"
)

func testConfig(dir string) *config.Config {
	c := config.New(dir)
	c.InputType = "nucl"
	c.InputFile = "genome.fna"
	c.RunTitle = "run_1"
	c.Merge = false
	return c
}

func TestArgsOrder(t *testing.T) {
	c := testConfig("/opt/finder")
	want := []string{
		"nucl", "genome.fna", "run_1", "4",
		c.MethylaseHMMs, c.CDDPlusHMMs, c.LegitDomains, c.MotifBlastp, c.SubtypeHMMs,
		"-c -p meta", "80", "80",
		c.SSubunitHMMs, c.REHMMs,
		"/opt/finder", "True", "False",
	}
	assert.Equal(t, want, Args(c))
}

func TestCommand(t *testing.T) {
	c := testConfig("/opt/finder")
	cmd := Command(c, nil, nil)
	if cmd.Args[0] != "bash" {
		t.Fatalf("unexpected shell %q", cmd.Args[0])
	}
	if cmd.Args[1] != filepath.Join("/opt/finder", ScriptName) || len(cmd.Args) != 19 {
		t.Fatalf("unexpected args %v", cmd.Args)
	}
}

func TestRunForwardsArgsAndStatus(t *testing.T) {
	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("bash not available")
	}
	dir := t.TempDir()
	script := "#!/bin/bash\nfor a in \"$@\"; do echo \"$a\"; done\nexit 3\n"
	if err := os.WriteFile(Script(dir), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	var out, errBuf bytes.Buffer
	err := Run(testConfig(dir), &out, &errBuf)
	if code := ExitCode(err); code != 3 {
		t.Fatalf("exit code %d (err=%v), want 3", code, err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 17 || lines[9] != "-c -p meta" || lines[16] != "False" {
		t.Fatalf("script saw %q", lines)
	}
}

func TestMissingScriptExitStatus(t *testing.T) {
	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("bash not available")
	}
	err := Run(testConfig(t.TempDir()), io.Discard, io.Discard)
	assert.Equal(t, 127, ExitCode(err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("start failed")))
}
