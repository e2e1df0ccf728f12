// Package preflight checks that the external executables and python
// libraries the pipeline calls are available before anything is run.
package preflight

import (
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/liserjrqlxue/goUtil/fmtUtil"
	"github.com/samber/lo"
)

type Kind int

const (
	Tool Kind = iota
	Library
)

type Requirement struct {
	Kind Kind
	Name string
	// Display is the name printed once a library is found.
	Display string
}

var (
	Tools = []Requirement{
		{Kind: Tool, Name: "bioawk", Display: "bioawk"},
		{Kind: Tool, Name: "hmmscan", Display: "hmmscan"},
		{Kind: Tool, Name: "blastp", Display: "blastp"},
		{Kind: Tool, Name: "prodigal", Display: "prodigal"},
	}
	Libraries = []Requirement{
		{Kind: Library, Name: "Bio", Display: "Biopython"},
		{Kind: Library, Name: "BCBio", Display: "BCBio"},
		{Kind: Library, Name: "numpy", Display: "numpy"},
	}
)

// Outcome is the result of one check. Err is set when the probe itself failed
// to run, which also counts as not found.
type Outcome struct {
	Requirement
	Found bool
	Path  string
	Err   error
}

func (o Outcome) String() string {
	switch {
	case o.Kind == Tool && o.Found:
		return o.Name + " found"
	case o.Kind == Tool:
		return o.Name + " is not found. Exiting."
	case o.Found:
		return o.Display + " found"
	default:
		return o.Name + " is not installed"
	}
}

// Checker runs the probes. Zero-valued fields fall back to PATH lookup and
// a python importlib probe through NewImportProbe("python3").
type Checker struct {
	LookPath   func(file string) (string, error)
	Importable func(module string) (bool, error)
}

func (c *Checker) lookPath(name string) (string, error) {
	if c.LookPath == nil {
		return exec.LookPath(name)
	}
	return c.LookPath(name)
}

func (c *Checker) importable(name string) (bool, error) {
	if c.Importable == nil {
		return NewImportProbe("python3")(name)
	}
	return c.Importable(name)
}

// Check runs the probe matching r.Kind.
func (c *Checker) Check(r Requirement) Outcome {
	o := Outcome{Requirement: r}
	switch r.Kind {
	case Tool:
		path, err := c.lookPath(r.Name)
		if err == nil {
			o.Found, o.Path = true, path
		}
	case Library:
		o.Found, o.Err = c.importable(r.Name)
		if o.Err != nil {
			o.Found = false
		}
	}
	return o
}

// All lists the tools followed by the libraries, the order they are checked in.
func All() []Requirement {
	return append(append([]Requirement{}, Tools...), Libraries...)
}

// CheckAll runs every check in order without stopping at a missing one.
func (c *Checker) CheckAll() []Outcome {
	return lo.Map(All(), func(r Requirement, _ int) Outcome { return c.Check(r) })
}

// Missing filters outcomes down to the ones not found.
func Missing(outcomes []Outcome) []Outcome {
	return lo.Filter(outcomes, func(o Outcome, _ int) bool { return !o.Found })
}

// Summary is String without the exit notice, for reports that keep checking.
func (o Outcome) Summary() string {
	if o.Kind == Tool && !o.Found {
		return o.Name + " is not found"
	}
	return o.String()
}

// Report prints the console line for o.
func Report(w io.Writer, o Outcome) {
	fmtUtil.Fprintln(w, o.String())
}

// ReportSummary prints the Summary line for o.
func ReportSummary(w io.Writer, o Outcome) {
	fmtUtil.Fprintln(w, o.Summary())
}

// NewImportProbe returns a probe that asks python whether a module can be
// found by importlib without importing it.
func NewImportProbe(python string) func(string) (bool, error) {
	return func(module string) (bool, error) {
		script := fmt.Sprintf(
			"import importlib.util,sys; sys.exit(0 if importlib.util.find_spec(%q) else 1)",
			module,
		)
		err := exec.Command(python, "-c", script).Run()
		if err == nil {
			return true, nil
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, err
	}
}
