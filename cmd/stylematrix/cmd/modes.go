package cmd

import (
	"fmt"

	"github.com/go-drift/stylematrix/pkg/style"
)

func init() {
	RegisterCommand(&Command{
		Name:  "modes",
		Short: "List modes and their color matrices",
		Long: `List every mode with the matrix it composes to.

Brightness and contrast flags are layered on each base matrix, so the
printed matrices are exactly what apply would use.

Usage:
  stylematrix modes
  stylematrix modes --brightness 20 --contrast 1.2`,
		Usage: "stylematrix modes [--brightness N] [--contrast F] [--names]",
		Run:   runModes,
	})
}

func runModes(args []string) error {
	fs := newFlagSet()
	brightness := fs.String("brightness")
	contrast := fs.String("contrast")
	namesOnly := fs.Bool("names")
	if rest, err := fs.Parse(args); err != nil {
		return err
	} else if len(rest) > 0 {
		return fmt.Errorf("unexpected argument %q", rest[0])
	}

	flags := styleFlags{mode: new(string), brightness: brightness, contrast: contrast, saturation: new(string)}
	attrs, err := flags.attributes()
	if err != nil {
		return err
	}
	opts, err := attrs.Options()
	if err != nil {
		return err
	}

	for _, mode := range style.Modes() {
		if *namesOnly {
			fmt.Fprintln(stdout, mode)
			continue
		}
		m, err := style.Compose(mode, 1, opts.Parameters.Brightness, opts.Parameters.Contrast)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s (%d)\n", mode, int(mode))
		for row := 0; row < 4; row++ {
			r := m.Row(row)
			fmt.Fprintf(stdout, "  %8.4f %8.4f %8.4f %8.4f  %9.3f\n", r[0], r[1], r[2], r[3], r[4])
		}
	}
	return nil
}
