package cmd

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/go-drift/stylematrix/cmd/stylematrix/internal/imageio"
	"github.com/go-drift/stylematrix/pkg/style"
	"github.com/go-drift/stylematrix/pkg/styler"
	"github.com/go-drift/stylematrix/pkg/surface"
)

var (
	sheetBackground = color.RGBA{32, 34, 37, 255}
	sheetCaption    = color.RGBA{220, 221, 222, 255}
)

const (
	sheetPadding       = 12
	sheetCaptionHeight = 24
)

func init() {
	RegisterCommand(&Command{
		Name:  "sheet",
		Short: "Render a contact sheet of every mode",
		Long: `Render the input image once per mode in a captioned grid.

Brightness and contrast flags apply to every cell. Cells are --cell pixels
wide and keep the input's aspect ratio.

Usage:
  stylematrix sheet photo.jpg sheet.png
  stylematrix sheet photo.jpg sheet.png --columns 3 --cell 320`,
		Usage: "stylematrix sheet <input> <output> [--columns N] [--cell W] [--brightness N] [--contrast F]",
		Run:   runSheet,
	})
}

func runSheet(args []string) error {
	fs := newFlagSet()
	columnsFlag := fs.String("columns")
	cellFlag := fs.String("cell")
	brightness := fs.String("brightness")
	contrast := fs.String("contrast")
	rest, err := fs.Parse(args)
	if err != nil {
		return err
	}
	if len(rest) != 2 {
		return fmt.Errorf("sheet requires an input and an output file\n\nUsage: stylematrix sheet <input> <output> [flags]")
	}
	in, out := rest[0], rest[1]

	columns, err := parseIntFlag("columns", *columnsFlag, 4)
	if err != nil {
		return err
	}
	cellW, err := parseIntFlag("cell", *cellFlag, 240)
	if err != nil {
		return err
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

	src, err := imageio.Load(in)
	if err != nil {
		return err
	}
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return fmt.Errorf("%s is empty", in)
	}
	cellH := max(1, cellW*b.Dy()/b.Dx())
	// Every cell shares one scaled copy of the source.
	thumb := surface.NewDrawable(src).Render(cellW, cellH)

	face, err := captionFace(14)
	if err != nil {
		return err
	}

	modes := style.Modes()
	rows := (len(modes) + columns - 1) / columns
	width := columns*(cellW+sheetPadding) + sheetPadding
	height := rows*(cellH+sheetCaptionHeight+sheetPadding) + sheetPadding

	dc := gg.NewContext(width, height)
	dc.SetColor(sheetBackground)
	dc.Clear()
	dc.SetFontFace(face)

	for i, mode := range modes {
		p := opts.Parameters
		p.Mode = mode
		p.Saturation = 1
		cell, err := styler.RenderStyledSnapshot(thumb, p)
		if err != nil {
			return err
		}
		x := sheetPadding + (i%columns)*(cellW+sheetPadding)
		y := sheetPadding + (i/columns)*(cellH+sheetCaptionHeight+sheetPadding)
		dc.DrawImage(cell, x, y)
		dc.SetColor(sheetCaption)
		dc.DrawStringAnchored(mode.String(), float64(x)+float64(cellW)/2, float64(y+cellH)+sheetCaptionHeight/2, 0.5, 0.5)
		logger.Debug("sheet cell", "mode", mode, "x", x, "y", y)
	}

	if err := imageio.Save(out, dc.Image()); err != nil {
		return err
	}
	logger.Info("contact sheet written", "output", out, "modes", len(modes), "width", width, "height", height)
	return nil
}

func captionFace(size float64) (font.Face, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load caption font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, Hinting: font.HintingFull}), nil
}
