package main

import (
	"fmt"

	"github.com/mattn/go-tty"
	"github.com/pkg/errors"
)

func confirmOverwrite(path string) (bool, error) {
	t, err := tty.Open()
	if err != nil {
		return false, errors.Wrap(err, "tty.Open")
	}
	defer t.Close()

	fmt.Fprintf(t.Output(), "%s exists, overwrite? [y/N] ", path)
	r, err := t.ReadRune()
	if err != nil {
		return false, errors.Wrap(err, "tty.ReadRune")
	}
	fmt.Fprintln(t.Output())
	return r == 'y' || r == 'Y', nil
}
