package cutting

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExport(t *testing.T) {
	cuts := CutSet{
		{{X: 90, Y: 180}, {X: 180, Y: 90}},
		{{X: 270, Y: 270}},
	}
	for _, test := range []struct {
		opts Options
		exp  CutSet
	}{
		{Options{}, CutSet{{{X: 25.4, Y: 50.8}, {X: 50.8, Y: 25.4}}, {{X: 76.2, Y: 76.2}}}},
		{Options{Autocrop: true}, CutSet{{{X: 0, Y: 25.4}, {X: 25.4, Y: 0}}, {{X: 50.8, Y: 50.8}}}},
		{Options{Autocrop: true, XOffset: 10, YOffset: -1}, CutSet{{{X: 10, Y: 24.4}, {X: 35.4, Y: -1}}, {{X: 60.8, Y: 49.8}}}},
	} {
		if diff := cmp.Diff(test.exp, test.opts.Export(cuts), approx); diff != "" {
			t.Errorf("%+v (-want +got):\n%s", test.opts, diff)
		}
	}
	if cuts[0][0].X != 90 {
		t.Error("Export must not modify its input")
	}
}

func TestAutocropEmpty(t *testing.T) {
	if out := (CutSet{}).Autocrop(); len(out) != 0 {
		t.Errorf("unexpected %v", out)
	}
	if _, _, ok := (CutSet{}).Bounds(); ok {
		t.Error("empty set has no bounds")
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	cuts := CutSet{{{X: 0, Y: 0}, {X: 1.5, Y: 2}}, {{X: 3, Y: 4}}}
	if err := cuts.WriteJSON(&buf); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "[[[0,0],[1.5,2]],[[3,4]]]\n" {
		t.Errorf("unexpected json %q", got)
	}

	buf.Reset()
	if err := CutSet(nil).WriteJSON(&buf); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "[]\n" {
		t.Errorf("unexpected json %q", got)
	}
}

func TestDump(t *testing.T) {
	if filepath.Base(DumpPath()) != "silhouette.dump" {
		t.Errorf("unexpected dump path %s", DumpPath())
	}
	file := filepath.Join(t.TempDir(), "out.dump")
	cuts := CutSet{{{X: 1, Y: 2}, {X: 3, Y: 4}}}
	if err := cuts.WriteDump(file); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(file)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := ReadCutSet(f)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cuts, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if cuts.PointCount() != 2 {
		t.Errorf("unexpected point count %d", cuts.PointCount())
	}
}

func TestValidate(t *testing.T) {
	for _, opts := range []Options{
		{Smoothness: 0},
		{Smoothness: 1, SelectLayer: true, Layer: -1},
		{Smoothness: 1, Resume: true, Checkpoint: Checkpoint{Element: -1}},
	} {
		var cerr *ConfigError
		if err := opts.Validate(); !errors.As(err, &cerr) {
			t.Errorf("%+v: expected a *ConfigError, got %v", opts, err)
		}
	}
	if err := DefaultOptions().Validate(); err != nil {
		t.Error(err)
	}
}
