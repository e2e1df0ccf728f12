package config

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/samber/lo"
)

const Version = "1.0.1"

var (
	ErrMissingRequired = errors.New("missing required argument")
	ErrInvalidValue    = errors.New("invalid argument value")
	ErrBoolValue       = errors.New("boolean value expected")
	ErrVersion         = errors.New("version requested")
)

// Error is a configuration error, reported with usage and exit code 2.
type Error struct {
	Flag string
	Err  error
}

func (e *Error) Error() string {
	if e.Flag == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("--%s: %v", e.Flag, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

var (
	InputTypes = []string{"nucl", "AA"}

	runTitleRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

// Config holds everything forwarded to the pipeline. It is not modified after Parse.
type Config struct {
	InputType string
	InputFile string
	RunTitle  string
	CPU       int

	MethylaseHMMs string
	CDDPlusHMMs   string
	LegitDomains  string
	MotifBlastp   string
	SubtypeHMMs   string
	ProdigalArgs  string
	PID           string
	Coverage      string
	SSubunitHMMs  string
	REHMMs        string

	Neighborhoods bool
	Merge         bool

	InstallDir string
	Python     string
	Bash       string
	CheckDeps  bool

	version bool
}

// New returns a Config carrying every default, with database paths under installDir.
func New(installDir string) *Config {
	return &Config{
		CPU:           4,
		MethylaseHMMs: filepath.Join(installDir, "methylase_hmms", "meth_hmms_v1.0"),
		CDDPlusHMMs:   filepath.Join(installDir, "cdd_plus_hmms", "cdd_plus_hmms_v1.0"),
		LegitDomains:  filepath.Join(installDir, "legit_DNA_methylase_domain_model_list_v1.0.txt"),
		MotifBlastp:   filepath.Join(installDir, "motif_protein_blastp", "motif_blastp_v1.0"),
		SubtypeHMMs:   filepath.Join(installDir, "subtype_hmms", "subtype_hmms_olveira_v1.0"),
		ProdigalArgs:  "-c -p meta",
		PID:           "80",
		Coverage:      "80",
		SSubunitHMMs:  filepath.Join(installDir, "specificity_subunit_hmms", "specificity_subunit_hmms_v1.0"),
		REHMMs:        filepath.Join(installDir, "restriction_enzyme_hmms", "RE_hmms_v1.0"),
		Neighborhoods: true,
		Merge:         true,
		InstallDir:    installDir,
		Python:        "python3",
		Bash:          "bash",
	}
}

// Databases lists the model and database paths in pipeline order.
func (c *Config) Databases() []string {
	return []string{
		c.MethylaseHMMs,
		c.CDDPlusHMMs,
		c.LegitDomains,
		c.MotifBlastp,
		c.SubtypeHMMs,
		c.SSubunitHMMs,
		c.REHMMs,
	}
}

// Register wires every flag onto fs. Defaults are taken from c.
func Register(fs *flag.FlagSet, c *Config) {
	// required
	fs.StringVar(&c.InputType, "input_type", c.InputType, "REQUIRED: nucl | AA -- nucl (.fna) PREFERRED; headers must be unique before the first space")
	fs.StringVar(&c.InputType, "it", c.InputType, "alias of --input_type")
	fs.StringVar(&c.InputFile, "input_file", c.InputFile, "REQUIRED: nucl file (.fna), prodigal directory, or AA file (.faa)")
	fs.StringVar(&c.InputFile, "f", c.InputFile, "alias of --input_file")
	fs.StringVar(&c.RunTitle, "run_title", c.RunTitle, "REQUIRED: name of this run and its output directory; letters, numbers and _ only")
	fs.StringVar(&c.RunTitle, "r", c.RunTitle, "alias of --run_title")

	// optional
	fs.BoolVar(&c.version, "version", false, "print version and exit")
	fs.IntVar(&c.CPU, "cpu", c.CPU, "number of CPUs available for run")
	fs.IntVar(&c.CPU, "t", c.CPU, "alias of --cpu")
	fs.StringVar(&c.MethylaseHMMs, "meth_hmms", c.MethylaseHMMs, "Hmmer-formatted HMMs of putative DNA methylases")
	fs.StringVar(&c.CDDPlusHMMs, "cdd_plus_hmms", c.CDDPlusHMMs, "Hmmer-formatted HMMs of all CDD + putative DNA methylases")
	fs.StringVar(&c.LegitDomains, "legit_domains", c.LegitDomains, "names of DNA methylase Hmmer models, one per line")
	fs.StringVar(&c.MotifBlastp, "motif_blastp", c.MotifBlastp, "BLASTP database of REBASE DNA methylase proteins with motif tag")
	fs.StringVar(&c.SubtypeHMMs, "subtype_hmms", c.SubtypeHMMs, "Hmmer-formatted Olveira subtype HMMs with subtype tag")
	fs.StringVar(&c.ProdigalArgs, "prod_args", c.ProdigalArgs, "prodigal arguments in quotes, nucl input only; no memory or CPU arguments")
	fs.StringVar(&c.PID, "pid", c.PID, "minimum AA percent identity to a REBASE homolog to predict motif specificity")
	fs.StringVar(&c.Coverage, "cov", c.Coverage, "minimum alignment coverage to a REBASE homolog to predict motif specificity")
	fs.StringVar(&c.SSubunitHMMs, "s_subunit_hmms", c.SSubunitHMMs, "Hmmer-formatted HMMs of specificity subunit proteins")
	fs.StringVar(&c.REHMMs, "re_hmms", c.REHMMs, "Hmmer-formatted HMMs of restriction enzyme (endonuclease) proteins")
	fs.Var(&boolValue{&c.Neighborhoods}, "neighborhoods", "make DNA methylase gene neighborhood maps? True | False")
	fs.Var(&boolValue{&c.Merge}, "merge", "merge adjacent DNA methylases as a broken ORF? True | False")
	fs.StringVar(&c.Python, "python", c.Python, "python interpreter used to check required libraries")
	fs.StringVar(&c.Bash, "bash", c.Bash, "shell used to run the pipeline script")
	fs.BoolVar(&c.CheckDeps, "check_deps", false, "report every required tool and library, then exit")
}

// Parse builds a Config from argv. flag.ErrHelp and ErrVersion are returned unwrapped;
// every other failure is an *Error.
func Parse(fs *flag.FlagSet, argv []string, installDir string) (*Config, error) {
	c := New(installDir)
	Register(fs, c)
	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, &Error{Err: err}
	}
	if c.version {
		return nil, ErrVersion
	}
	if c.CheckDeps {
		return c, nil
	}
	if fs.NArg() > 0 {
		return nil, &Error{Err: fmt.Errorf("%w: unexpected argument %q", ErrInvalidValue, fs.Arg(0))}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks required fields and value domains.
func (c *Config) Validate() error {
	switch {
	case c.InputType == "":
		return &Error{Flag: "input_type", Err: ErrMissingRequired}
	case c.InputFile == "":
		return &Error{Flag: "input_file", Err: ErrMissingRequired}
	case c.RunTitle == "":
		return &Error{Flag: "run_title", Err: ErrMissingRequired}
	}
	if !lo.Contains(InputTypes, c.InputType) {
		return &Error{Flag: "input_type", Err: fmt.Errorf("%w: %q, expected nucl or AA", ErrInvalidValue, c.InputType)}
	}
	if !runTitleRe.MatchString(c.RunTitle) {
		return &Error{Flag: "run_title", Err: fmt.Errorf("%w: %q, only letters, numbers and _ allowed", ErrInvalidValue, c.RunTitle)}
	}
	if c.CPU < 1 {
		return &Error{Flag: "cpu", Err: fmt.Errorf("%w: %d, must be >= 1", ErrInvalidValue, c.CPU)}
	}
	return nil
}
