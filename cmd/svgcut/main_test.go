package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/benoitkugler/svgcut/cutting"
)

const square = `<svg xmlns="http://www.w3.org/2000/svg" width="200" height="200">
	<rect x="90" y="90" width="90" height="90"/>
</svg>`

func TestRun(t *testing.T) {
	dir := t.TempDir()
	out, png, pdf := filepath.Join(dir, "cuts.json"), filepath.Join(dir, "cuts.png"), filepath.Join(dir, "cuts.pdf")
	var stdout, stderr bytes.Buffer
	err := run([]string{"-autocrop", "-o", out, "-preview", png, "-pdf", pdf}, strings.NewReader(square), &stdout, &stderr)
	if err != nil {
		t.Fatalf("%s (stderr: %s)", err, stderr.String())
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cuts, err := cutting.ReadCutSet(f)
	if err != nil {
		t.Fatal(err)
	}
	want := cutting.CutSet{{{X: 0, Y: 0}, {X: 25.4, Y: 0}, {X: 25.4, Y: 25.4}, {X: 0, Y: 25.4}, {X: 0, Y: 0}}}
	if diff := cmp.Diff(want, cuts, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("cuts mismatch (-want +got):\n%s", diff)
	}
	for _, file := range []string{png, pdf} {
		if _, err := os.Stat(file); err != nil {
			t.Fatalf("missing preview: %s", err)
		}
	}
	if !strings.Contains(stdout.String(), "5 points in 1 cuts") {
		t.Fatalf("unexpected output %q", stdout.String())
	}
}

func TestRunErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	out := filepath.Join(t.TempDir(), "cuts.json")
	if err := run([]string{"-smoothness", "0", "-o", out}, strings.NewReader(square), &stdout, &stderr); err == nil {
		t.Fatal("expected invalid smoothness error")
	}
	if err := run([]string{"-o", out, "a.svg", "b.svg"}, strings.NewReader(""), &stdout, &stderr); err == nil {
		t.Fatal("expected too many files error")
	}
	if err := run([]string{"-o", out}, strings.NewReader("not xml"), &stdout, &stderr); err == nil {
		t.Fatal("expected document error")
	}
}

func TestVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"-version"}, nil, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout.String(), "svgcut ") {
		t.Fatalf("unexpected output %q", stdout.String())
	}
}
