package config

import (
	"flag"
	"fmt"

	"github.com/WIZARDISHUNGRY/morphology/internal/element"
	"github.com/WIZARDISHUNGRY/morphology/internal/morph"
)

// Usage prints the invocation, the available windows and operators, and the flags.
func Usage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintf(w, "usage:\n\n")
	fmt.Fprintf(w, "    %s [flags] [input_image_path] [window_size] [window] [operator] [output_image_path]\n\n", fs.Name())
	fmt.Fprintln(w, "available windows:")
	for _, name := range element.Shapes() {
		fmt.Fprintf(w, "  - %s\n", name)
	}
	fmt.Fprintln(w, "\navailable operators:")
	for _, name := range morph.Operators() {
		fmt.Fprintf(w, "  - %s\n", name)
	}
	fmt.Fprintln(w, "\nflags:")
	fs.PrintDefaults()
}
