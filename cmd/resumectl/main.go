package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"resume-builder/internal/config"
	"resume-builder/internal/layout"
	"resume-builder/internal/usecase"
	infra "resume-builder/pkg/infrastructure"
	"resume-builder/pkg/pdftext"
)

const defaultWidth = 80

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: resumectl <command> [flags] <file>")
	fmt.Fprintln(os.Stderr, "\nCommands:")
	fmt.Fprintln(os.Stderr, "  render   render a YAML or JSON resume to PDF")
	fmt.Fprintln(os.Stderr, "  layout   print the draw operations for a resume without rendering")
	fmt.Fprintln(os.Stderr, "  inspect  print the text of a PDF")
	fmt.Fprintln(os.Stderr, "  config   init writes a default server config file")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var code int
	switch os.Args[1] {
	case "render":
		code = runRender(os.Args[2:], os.Stdout)
	case "layout":
		code = runLayout(os.Args[2:], os.Stdout)
	case "inspect":
		code = runInspect(os.Args[2:], os.Stdout)
	case "config":
		code = runConfig(os.Args[2:], os.Stdout)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
		code = 2
	}
	os.Exit(code)
}

func runRender(args []string, stdout io.Writer) int {
	var (
		font, template string
		outDir         string
		filename       string
		assetDir       string
		uncompressed   bool
		verbose        bool
	)
	flags := pflag.NewFlagSet("render", pflag.ExitOnError)
	flags.StringVar(&font, "font", "", "Font family (Arial, Helvetica, Times, Courier)")
	flags.StringVarP(&template, "template", "t", "", "Template: classic|modern")
	flags.StringVarP(&outDir, "out-dir", "o", ".", "Directory for the PDF")
	flags.StringVarP(&filename, "filename", "f", "", "Output file name without extension (default from input or \"resume\")")
	flags.StringVar(&assetDir, "asset-dir", "", "Directory for temporary QR images (default system temp)")
	flags.BoolVar(&uncompressed, "uncompressed", false, "Write uncompressed content streams")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log pipeline progress")
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: resumectl render [flags] <resume.yaml|resume.json>")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return 2
	}

	sub, err := loadSubmission(flags.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load: %v\n", err)
		return 2
	}
	if flags.Changed("font") {
		sub.Font = font
	}
	if flags.Changed("template") {
		sub.Template = template
	}
	if flags.Changed("filename") {
		sub.Filename = filename
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	proc := usecase.NewProcessor(
		infra.NewFpdfRenderer(infra.WithCompression(!uncompressed)),
		infra.NewQRGenerator(assetDir),
		infra.NewFileExporter(""),
		usecase.WithDefaultTemplate(layout.TemplateClassic),
		usecase.WithLogger(logger),
	)

	req := usecase.NewRequest(sub, true)
	if flags.Changed("out-dir") || req.Destination.Dir == "" {
		req.Destination.Dir = outDir
	}

	res, err := proc.Process(context.Background(), req)
	if err != nil {
		var blocked *usecase.BlockedError
		if errors.As(err, &blocked) {
			fmt.Fprintln(os.Stderr, "Please fill in all required fields correctly before generating the PDF.")
			for _, w := range blocked.Report.Warnings() {
				fmt.Fprintf(os.Stderr, "  %s\n", w)
			}
			for _, m := range blocked.Missing {
				fmt.Fprintf(os.Stderr, "  missing: %s\n", m)
			}
			return 1
		}
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		return 1
	}

	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	fmt.Fprintf(stdout, "%s (%d bytes)\n", res.Exported.Path, res.Exported.Size)
	return 0
}

// runLayout prints one row per draw operation of the built page, followed
// by the image slots.
func runLayout(args []string, stdout io.Writer) int {
	var font, template string
	flags := pflag.NewFlagSet("layout", pflag.ExitOnError)
	flags.StringVar(&font, "font", "", "Font family")
	flags.StringVarP(&template, "template", "t", "", "Template: classic|modern")
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: resumectl layout [flags] <resume.yaml|resume.json>")
		return 2
	}

	sub, err := loadSubmission(flags.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load: %v\n", err)
		return 2
	}
	if flags.Changed("font") {
		sub.Font = font
	}
	if flags.Changed("template") {
		sub.Template = template
	}

	page := layout.Build(sub.Resume, layout.Options{Font: sub.Font, Template: layout.ParseTemplate(sub.Template)})
	fmt.Fprintf(stdout, "font=%s template=%s\n", page.Font, page.Template)
	for _, op := range page.Ops {
		switch op.Kind {
		case layout.OpText:
			fmt.Fprintf(stdout, "%-5s %-2s %4.1f %s %q\n", op.Kind, op.Style, op.Size, op.Align, op.Text)
		case layout.OpRule:
			fmt.Fprintf(stdout, "%-5s %.0f-%.0f\n", op.Kind, op.X1, op.X2)
		case layout.OpGap:
			fmt.Fprintf(stdout, "%-5s %.0f\n", op.Kind, op.Height)
		}
	}
	for _, s := range page.Slots {
		fmt.Fprintf(stdout, "slot  %s at (%.0f,%.0f) %.0fmm %s\n", s.Key, s.X, s.Y, s.W, s.URL)
	}
	return 0
}

func runInspect(args []string, stdout io.Writer) int {
	var width int
	flags := pflag.NewFlagSet("inspect", pflag.ExitOnError)
	flags.IntVarP(&width, "width", "w", 0, "Wrap width (0 uses terminal width if available)")
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: resumectl inspect [flags] <file.pdf>")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return 2
	}

	doc, err := pdftext.ExtractFile(flags.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "inspect: %v\n", err)
		return 1
	}
	printLines(stdout, doc.Lines(), resolveWidth(width))
	return 0
}

// runConfig handles "config init [path]", writing the default server
// configuration. An existing file is kept unless --force is given.
func runConfig(args []string, stdout io.Writer) int {
	var force bool
	flags := pflag.NewFlagSet("config", pflag.ExitOnError)
	flags.BoolVar(&force, "force", false, "Overwrite an existing file")
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: resumectl config init [flags] [path]")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() < 1 || flags.NArg() > 2 || flags.Arg(0) != "init" {
		flags.Usage()
		return 2
	}

	path := "config.yaml"
	if flags.NArg() == 2 {
		path = flags.Arg(1)
	}
	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprintf(os.Stderr, "config: %s already exists (use --force to overwrite)\n", path)
		return 1
	}
	if err := config.Default().Save(path); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, path)
	return 0
}

func printLines(w io.Writer, lines []string, width int) {
	for _, line := range lines {
		fmt.Fprintln(w, wordwrap.String(line, width))
	}
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}
