// Package config holds chlog's configuration, terminal output and project
// metadata lookup.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/blang/semver/v4"
	"github.com/fatih/color"
	"github.com/imdario/mergo"
	"github.com/sirupsen/logrus"
)

// Backends lists the history providers chlog can read from.
var Backends = []string{"git", "go-git"}

type Config struct {
	Debug       bool       `json:"debug,omitempty"`
	Quiet       bool       `json:"quiet,omitempty"`
	Dryrun      bool       `json:"dryrun,omitempty"`
	Output      string     `json:"output,omitempty"`
	Version     string     `json:"version,omitempty"`
	ProjectFile string     `json:"project_file,omitempty"`
	Backend     string     `json:"backend,omitempty"`
	Dir         string     `json:"-"`
	Color       bool       `json:"-"`
	Term        TerminalIO `json:"-"`
	log         *logrus.Logger
}

func New(overrides *Config) Config {
	return NewWithTerminalIO(overrides, nil)
}

func NewWithTerminalIO(overrides *Config, termio *TerminalIO) Config {
	cfg := GetDefault()
	if termio == nil {
		termio = &DefaultTermIO
	}
	cfg.Term = *termio
	cfg.Color = termio.IsTerminal()

	if overrides != nil {
		if err := mergo.Merge(&cfg, overrides, mergo.WithOverride); err != nil {
			panic(err)
		}
	}
	cfg.log = newLogger(cfg.Term.Stderr, cfg.Color)
	return cfg
}

func newLogger(w io.Writer, colors bool) *logrus.Logger {
	if w == nil {
		w = os.Stderr
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    !colors,
		ForceColors:      colors,
	})
	return l
}

func (c Config) logger() *logrus.Logger {
	if c.log == nil {
		return newLogger(c.Term.Stderr, false)
	}
	return c.log
}

func (c Config) Printf(msg string, args ...interface{}) {
	if c.Quiet {
		return
	}
	fmt.Fprintf(c.stdout(), msg+"\n", args...)
}

func (c Config) Errorf(msg string, args ...interface{}) {
	fmt.Fprintln(c.stderr(), c.paint(color.FgRed, fmt.Sprintf(msg, args...)))
}

func (c Config) Debugf(msg string, args ...interface{}) {
	if !c.Debug {
		return
	}
	c.logger().Debugf(msg, args...)
}

func (c Config) Warnf(msg string, args ...interface{}) {
	c.logger().Warnf(msg, args...)
}

// Updated confirms that a changelog document was written.
func (c Config) Updated(name, version string) {
	if c.Quiet {
		return
	}
	fmt.Fprintln(c.stdout(), c.paint(color.FgGreen, fmt.Sprintf("%s updated (%s)", name, version)))
}

func (c Config) paint(attr color.Attribute, s string) string {
	if !c.Color {
		return s
	}
	p := color.New(attr)
	p.EnableColor()
	return p.Sprint(s)
}

func (c Config) stdout() io.Writer {
	if c.Term.Stdout == nil {
		return os.Stdout
	}
	return c.Term.Stdout
}

func (c Config) stderr() io.Writer {
	if c.Term.Stderr == nil {
		return os.Stderr
	}
	return c.Term.Stderr
}

func (c Config) Validate() error {
	if c.Output == "" {
		return fmt.Errorf("config: output path is required")
	}
	if !oneOf(c.Backend, Backends) {
		return fmt.Errorf("config: invalid backend %q (valid: %v)", c.Backend, Backends)
	}
	if c.Version != "" {
		if _, err := semver.ParseTolerant(c.Version); err != nil {
			c.Warnf("version %q is not a semantic version: %v", c.Version, err)
		}
	}
	return nil
}

// OutputPath returns the changelog path, relative to Dir unless absolute.
func (c Config) OutputPath() string {
	if filepath.IsAbs(c.Output) {
		return c.Output
	}
	return filepath.Join(c.Dir, c.Output)
}

// ProjectPath returns the project metadata path, relative to Dir unless
// absolute.
func (c Config) ProjectPath() string {
	if c.ProjectFile == "" || filepath.IsAbs(c.ProjectFile) {
		return c.ProjectFile
	}
	return filepath.Join(c.Dir, c.ProjectFile)
}

// ResolveVersion returns the label for changes that are not tagged yet: the
// configured version, else the project's version, else 0.0.0. The result is
// always prefixed with "v".
func (c Config) ResolveVersion(p *Project) string {
	v := c.Version
	if v == "" && p != nil {
		v = p.Version
	}
	if v == "" {
		v = "0.0.0"
	}
	return "v" + v
}

func oneOf(s string, l []string) bool {
	for _, cand := range l {
		if s == cand {
			return true
		}
	}
	return false
}
