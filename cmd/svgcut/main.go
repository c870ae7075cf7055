// Command svgcut flattens an SVG drawing into the polylines
// of a cutting plotter, in millimeters.
//
// Usage:
//
//	svgcut [flags] [file.svg]
//
// The document is read from stdin when no file is given.
// Flag defaults are taken from the SVGCUT_* environment variables.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/benoitkugler/svgcut/cutting"
	"github.com/benoitkugler/svgcut/internal/config"
	"github.com/benoitkugler/svgcut/internal/typeid"
	"github.com/benoitkugler/svgcut/svgdoc"
	"github.com/benoitkugler/svgcut/svgpdf"
	"github.com/benoitkugler/svgcut/svgraster"
)

const version = "0.3.0"

type idList []string

func (l *idList) String() string { return strings.Join(*l, ",") }

func (l *idList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "svgcut:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	dump := cfg.DumpPath
	if dump == "" {
		dump = cutting.DumpPath()
	}

	fs := flag.NewFlagSet("svgcut", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		opts    = cutting.DefaultOptions()
		ids     idList
		layer   int
		output  string
		preview string
		sheet   string
		verbose bool
		showV   bool
	)
	fs.Float64Var(&opts.Smoothness, "smoothness", cfg.Smoothness, "maximum distance between curves and cuts, in user units")
	fs.Float64Var(&opts.XOffset, "x", 0, "horizontal offset, in mm")
	fs.Float64Var(&opts.YOffset, "y", 0, "vertical offset, in mm")
	fs.BoolVar(&opts.Autocrop, "autocrop", false, "move the drawing to the plotter origin")
	fs.IntVar(&layer, "layer", -1, "only cut the layers whose label starts with this number")
	fs.IntVar(&opts.Checkpoint.Element, "resume-element", 0, "resume after this element (1-based)")
	fs.IntVar(&opts.Checkpoint.Node, "resume-node", 0, "points of the resumed element already cut")
	fs.Var(&ids, "id", "only cut the element with this id (repeatable)")
	fs.StringVar(&output, "o", dump, "output file for the cuts")
	fs.StringVar(&preview, "preview", "", "also write a PNG preview to this file")
	fs.StringVar(&sheet, "pdf", "", "also write a 1:1 PDF cut sheet to this file")
	fs.BoolVar(&verbose, "v", false, "verbose logging")
	fs.BoolVar(&showV, "version", false, "print the version and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if showV {
		fmt.Fprintln(stdout, "svgcut", version)
		return nil
	}

	level, _ := cfg.Level()
	if verbose {
		level = slog.LevelDebug
	}
	cutting.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	if layer >= 0 {
		opts.SelectLayer, opts.Layer = true, layer
	}
	opts.Resume = opts.Checkpoint != (cutting.Checkpoint{})
	opts.IDs = ids

	var doc *svgdoc.Document
	switch fs.NArg() {
	case 0:
		doc, err = svgdoc.ReadDocumentStream(stdin)
	case 1:
		doc, err = svgdoc.ReadDocument(fs.Arg(0))
	default:
		return fmt.Errorf("expected at most one input file, got %d", fs.NArg())
	}
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, err := cutting.Run(ctx, doc, opts)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		fmt.Fprintln(stderr, w)
	}
	cuts := opts.Export(res.Cuts)
	if err := cuts.WriteDump(output); err != nil {
		return err
	}
	if preview != "" {
		f, err := os.Create(preview)
		if err != nil {
			return err
		}
		popts := svgraster.DefaultOptions
		popts.DotsPerMM = cfg.PreviewDPMM
		if err := svgraster.WritePNG(f, cuts, popts); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	if sheet != "" {
		if err := svgpdf.WritePDFFile(sheet, cuts, svgpdf.DefaultOptions); err != nil {
			return err
		}
	}
	fmt.Fprintf(stdout, "%s: %d points in %d cuts written to %s\n", typeid.NewRunID(), cuts.PointCount(), len(cuts), output)
	if res.Stopped {
		fmt.Fprintf(stdout, "interrupted, resume with -resume-element %d -resume-node %d\n",
			res.Checkpoint.Element, res.Checkpoint.Node)
	}
	return nil
}
