// Package config turns the command line and environment into a validated run configuration.
package config

import (
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/WIZARDISHUNGRY/morphology/internal/element"
	"github.com/WIZARDISHUNGRY/morphology/internal/morph"
	"github.com/WIZARDISHUNGRY/morphology/internal/preview"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrUsage marks every error caused by bad arguments; callers print usage for these.
var ErrUsage = errors.New("usage")

const (
	EnvLogLevel = "MORPH_LOG_LEVEL"
	EnvPreview  = "MORPH_PREVIEW"
	EnvReport   = "MORPH_REPORT"
	EnvConfirm  = "MORPH_CONFIRM"

	defaultEnvFile = ".env"
	numArgs        = 5
)

type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }
func (e usageError) Is(target error) bool { return target == ErrUsage }

func usage(err error) error { return usageError{err} }

type flags struct {
	LogLevel string
	Preview  string
	Report   bool
	Confirm  bool
	EnvFile  string
	DumpFSM  bool
}

// envFlags maps flag names to the environment variable that may supply them.
var envFlags = map[string]string{
	"log-level": EnvLogLevel,
	"preview":   EnvPreview,
	"report":    EnvReport,
	"confirm":   EnvConfirm,
}

func registerFlags(fs *flag.FlagSet) *flags {
	f := flags{}
	fs.StringVar(&f.LogLevel, "log-level", "info", "logrus level: trace, debug, info, warn, error")
	fs.StringVar(&f.Preview, "preview", preview.ModeNone, "render the result in the terminal: none, ansi, sixel")
	fs.BoolVar(&f.Report, "report", false, "log perceptual hash distance and compressibility of input and output")
	fs.BoolVar(&f.Confirm, "confirm", false, "ask before overwriting an existing output file")
	fs.StringVar(&f.EnvFile, "env", defaultEnvFile, "file with MORPH_* defaults")
	fs.BoolVar(&f.DumpFSM, "dump-fsm", false, "write graphviz src of the reconstruction state machine and exit")
	return &f
}

type Config struct {
	flags

	Input    string
	Radius   int
	Shape    element.Shape
	Operator morph.Operator
	Output   string

	Level logrus.Level
}

// NewFlagSet returns the flag set Parse expects. It reports parse errors to
// output but leaves printing usage to the caller.
func NewFlagSet(name string, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {}
	return fs
}

// Parse reads flags and the five positional arguments from args. Flags given on
// the command line win over the process environment, which wins over the env file.
func Parse(fs *flag.FlagSet, args []string) (*Config, error) {
	f := registerFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, usage(err)
	}
	if err := f.applyEnv(fs); err != nil {
		return nil, err
	}

	c := &Config{flags: *f}
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, usage(err)
	}
	c.Level = level

	switch c.Preview {
	case preview.ModeNone, preview.ModeANSI, preview.ModeSixel:
	default:
		return nil, usage(errors.Errorf("unknown preview %q", c.Preview))
	}

	if c.DumpFSM {
		return c, nil
	}
	if err := c.parseArgs(fs.Args()); err != nil {
		return nil, usage(err)
	}
	return c, nil
}

func (c *Config) parseArgs(args []string) error {
	if len(args) != numArgs {
		return errors.Errorf("expected %d arguments, got %d", numArgs, len(args))
	}
	c.Input = args[0]

	radius, err := strconv.Atoi(args[1])
	if err != nil {
		return errors.Wrapf(element.ErrRadius, "%q", args[1])
	}
	if radius < 1 || radius > element.MaxRadius {
		return errors.Wrapf(element.ErrRadius, "got %d, want 1..%d", radius, element.MaxRadius)
	}
	c.Radius = radius

	if c.Shape, err = element.ParseShape(args[2]); err != nil {
		return err
	}
	if c.Operator, err = morph.ParseOperator(args[3]); err != nil {
		return err
	}
	c.Output = args[4]
	return nil
}

func (f *flags) applyEnv(fs *flag.FlagSet) error {
	fileEnv, err := godotenv.Read(f.EnvFile)
	switch {
	case err == nil:
	case os.IsNotExist(errors.Cause(err)) && f.EnvFile == defaultEnvFile:
		fileEnv = map[string]string{}
	default:
		return errors.Wrap(err, "godotenv.Read")
	}

	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	for name, key := range envFlags {
		if set[name] {
			continue
		}
		v, ok := os.LookupEnv(key)
		if !ok {
			v, ok = fileEnv[key]
		}
		if !ok {
			continue
		}
		if err := fs.Set(name, strings.TrimSpace(v)); err != nil {
			return usage(errors.Wrapf(err, "%s=%q", key, v))
		}
	}
	return nil
}

// Element builds the structuring element the configuration asks for, fitted to
// an image of the given size.
func (c *Config) Element(size image.Point) (element.Element, error) {
	return element.Generate(c.Shape, element.Fit(c.Shape, c.Radius, size))
}

func (c *Config) String() string {
	return fmt.Sprintf("%s %s(%d) %s -> %s", c.Operator, c.Shape, c.Radius, c.Input, c.Output)
}
