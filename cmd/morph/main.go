package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/WIZARDISHUNGRY/morphology/internal/config"
	"github.com/WIZARDISHUNGRY/morphology/internal/imageio"
	"github.com/WIZARDISHUNGRY/morphology/internal/logger"
	"github.com/WIZARDISHUNGRY/morphology/internal/morph"
	"github.com/WIZARDISHUNGRY/morphology/internal/preview"
	"github.com/WIZARDISHUNGRY/morphology/internal/report"
	"github.com/looplab/fsm"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, ctxCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	ctxCancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout *os.File, stderr io.Writer) int {
	fs := config.NewFlagSet("morph", stderr)
	c, err := config.Parse(fs, args)
	switch {
	case errors.Is(err, flag.ErrHelp):
		config.Usage(fs)
		return exitOK
	case err != nil:
		fmt.Fprintf(stderr, "morph: %v\n\n", err)
		config.Usage(fs)
		return exitUsage
	}

	log := logrus.New()
	log.SetOutput(stderr)
	log.Level = c.Level

	if c.DumpFSM {
		fmt.Fprintln(stdout, fsm.Visualize(morph.NewReconstructionFSM(logrus.NewEntry(log))))
		return exitOK
	}

	ctx, entry := logger.WithFields(logger.WithLogEntry(ctx, logrus.NewEntry(log)), logrus.Fields{
		"input":    c.Input,
		"output":   c.Output,
		"shape":    c.Shape,
		"radius":   c.Radius,
		"operator": c.Operator,
	})
	if err := process(ctx, c, stdout); err != nil {
		entry.WithError(err).Error("morph failed")
		return exitError
	}
	return exitOK
}

// confirm asks the user whether path may be overwritten.
var confirm = confirmOverwrite

func process(ctx context.Context, c *config.Config, stdout *os.File) error {
	log := logger.Entry(ctx)

	if err := imageio.CheckOutput(c.Output); err != nil {
		return err
	}
	if c.Confirm && imageio.Exists(c.Output) {
		ok, err := confirm(c.Output)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Errorf("not overwriting %s", c.Output)
		}
	}

	img, err := imageio.Load(c.Input)
	if err != nil {
		return err
	}
	log.WithField("bounds", img.Rect).Debug("loaded")
	el, err := c.Element(img.Rect.Size())
	if err != nil {
		return err
	}

	out, err := morph.Apply(ctx, c.Operator, img, el)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "interrupted")
	}
	if err := imageio.Save(out, c.Output); err != nil {
		return err
	}
	log.Info("saved")

	if c.Report {
		if _, err := report.Compare(ctx, img, out); err != nil {
			log.WithError(err).Warn("report.Compare")
		}
	}
	if err := preview.Write(stdout, c.Preview, out); err != nil {
		log.WithError(err).Warn("preview.Write")
	}
	return nil
}
