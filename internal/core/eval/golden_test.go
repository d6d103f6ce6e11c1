package eval_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"
	"github.com/rogpeppe/go-internal/txtar"

	"github.com/noema-lang/noema/ast"
	"github.com/noema-lang/noema/internal/core/eval"
	"github.com/noema-lang/noema/internal/noemafmt"
	"github.com/noema-lang/noema/parser"
)

// TestGoldenScenarios replays the end-to-end scenario table from
// txtar fixtures: each archive
// holds an "input" expression and its expected "normal-form", and the
// archive name carries the scenario number for a readable -run filter.
func TestGoldenScenarios(t *testing.T) {
	archives, err := filepath.Glob("testdata/scenarios/*.txtar")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Not(qt.HasLen(archives, 0)))

	for _, path := range archives {
		path := path
		name := strings.TrimSuffix(filepath.Base(path), ".txtar")
		t.Run(name, func(t *testing.T) {
			a, err := txtar.ParseFile(path)
			qt.Assert(t, qt.IsNil(err))

			input := section(t, a, "input")
			want := section(t, a, "normal-form")

			in := mustParse(t, input)
			wantExpr := mustParse(t, want)

			got := eval.Normalize(in)
			wantNorm := eval.Normalize(wantExpr)
			if !ast.Equal(got, wantNorm) {
				t.Fatalf("input %q normalized to a different form than %q\n%s",
					input, want, cmp.Diff(noemafmt.Sprint(wantNorm), noemafmt.Sprint(got)))
			}
		})
	}
}

func section(t *testing.T, a *txtar.Archive, name string) string {
	t.Helper()
	for _, f := range a.Files {
		if f.Name == name {
			return strings.TrimSpace(string(f.Data))
		}
	}
	t.Fatalf("archive has no %q section", name)
	return ""
}
