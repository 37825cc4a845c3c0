package main

import (
	"bytes"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gg"

	"github.com/inkboard/inkboard/internal/document"
	"github.com/inkboard/inkboard/internal/export"
)

func main() {
	var (
		inputFile = flag.String("i", "", "Input shapes JSON file (omit with -sample)")
		output    = flag.String("o", "", "Output file path, .png or .pdf")
		format    = flag.String("f", "", "Output format: png or pdf (default: from -o extension)")
		width     = flag.Int("w", 1600, "Surface width")
		height    = flag.Int("h", 1000, "Surface height")
		bg        = flag.String("bg", "#ffffff", "Background colour")
		grid      = flag.Float64("grid", 0, "Draw a grid with this spacing (0: none)")
		sample    = flag.Bool("sample", false, "Render the built-in sample drawing")
	)

	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
	gg.SetLogger(slog.Default())

	if *output == "" || (*inputFile == "" && !*sample) {
		fmt.Fprintf(os.Stderr, "Error: output (-o) and input (-i or -sample) required\n")
		flag.Usage()
		os.Exit(1)
	}

	if *format == "" {
		*format = strings.TrimPrefix(strings.ToLower(filepath.Ext(*output)), ".")
	}

	var shapes []document.Shape
	if *sample {
		shapes = document.NewSampleDrawing()
	} else {
		content, err := os.ReadFile(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
			os.Exit(1)
		}
		shapes, err = document.DecodeShapes(content)
		if shapes == nil && err != nil {
			fmt.Fprintf(os.Stderr, "Error decoding shapes: %v\n", err)
			os.Exit(1)
		}
		if err != nil {
			slog.Warn("skipped malformed shape records", "kept", len(shapes), "error", err)
		}
	}

	opts := export.Options{
		Width:      *width,
		Height:     *height,
		Background: *bg,
		ShowGrid:   *grid > 0,
		GridSize:   *grid,
	}

	var buf bytes.Buffer
	var err error
	switch *format {
	case "png":
		err = export.PNG(&buf, shapes, opts)
	case "pdf":
		err = export.PDF(&buf, shapes, opts)
	default:
		fmt.Fprintf(os.Stderr, "Error: unsupported format %q (png or pdf)\n", *format)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*output, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Rendered %d shapes to %s\n", len(shapes), *output)
}
