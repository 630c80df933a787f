package checker_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/noqacheck/noqacheck/checker"
	"github.com/noqacheck/noqacheck/directive"
	"github.com/noqacheck/noqacheck/scanner"
)

type report struct {
	line int
	code string
}

// analyze runs the formatting pass alone and renders the diagnostics as
// "line:col: CODE message" strings.
func analyze(t *testing.T, src string, opts ...checker.Option) []string {
	t.Helper()
	c := checker.New(opts...)
	diags, err := c.Analyze(context.Background(), "test.py", []byte(src))
	assert.NoError(t, err)
	checker.Sort(diags)
	return render(diags)
}

// check runs the full pipeline: analyze, record the given reports, finish,
// sort, render.
func check(t *testing.T, src string, reports []report, opts ...checker.Option) []string {
	t.Helper()
	c := checker.New(opts...)
	diags, err := c.Analyze(context.Background(), "test.py", []byte(src))
	assert.NoError(t, err)
	for _, r := range reports {
		c.Record("test.py", r.code, r.line)
	}
	diags = append(diags, c.Finish("test.py")...)
	checker.Sort(diags)
	return render(diags)
}

func render(diags []checker.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, fmt.Sprintf("%d:%d: %s %s", d.Pos.Line, d.Pos.Column, d.Code, d.Message))
	}
	return out
}

func TestFileDirectiveValid(t *testing.T) {
	for _, src := range []string{
		"# flake8:noqa",
		"# flake8: noqa",
		"# flake8:  noqa",
		"# flake8=noqa",
		"# flake8= noqa",
		"# flake8=  noqa",
	} {
		t.Run(src, func(t *testing.T) {
			assert.Equal(t, []string{}, analyze(t, src))
		})
	}
}

func TestFileDirectiveFormatting(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{"# FLAKE8 NOQA", []string{
			`1:1: NQA012 "# FLAKE8 NOQA" must have a colon or equals, e.g. "# FLAKE8: NOQA"`,
		}},
		{"# FLAKE8  NOQA", []string{
			`1:1: NQA012 "# FLAKE8  NOQA" must have a colon or equals, e.g. "# FLAKE8:  NOQA"`,
		}},
		{"# FLAKE8 :NOQA", []string{
			`1:1: NQA013 "# FLAKE8 :NOQA" must not have a space before the colon, e.g. "# FLAKE8:NOQA"`,
		}},
		{"# FLAKE8 : NOQA", []string{
			`1:1: NQA013 "# FLAKE8 : NOQA" must not have a space before the colon, e.g. "# FLAKE8: NOQA"`,
		}},
		{"# FLAKE8 = NOQA", []string{
			`1:1: NQA013 "# FLAKE8 = NOQA" must not have a space before the equals, e.g. "# FLAKE8= NOQA"`,
		}},
		{"#flake8 noqa", []string{
			`1:1: NQA011 "#flake8 noqa" must have a single space after the hash, e.g. "# flake8: noqa"`,
			`1:1: NQA012 "#flake8 noqa" must have a colon or equals, e.g. "# flake8: noqa"`,
		}},
		{"#flake8:noqa", []string{
			`1:1: NQA011 "#flake8:noqa" must have a single space after the hash, e.g. "# flake8:noqa"`,
		}},
		{"#  flake8:noqa", []string{
			`1:1: NQA011 "#  flake8:noqa" must have a single space after the hash, e.g. "# flake8:noqa"`,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, analyze(t, tt.src))
		})
	}
}

func TestInlineNotRecognized(t *testing.T) {
	for _, src := range []string{
		"# noqasar",
		"# unoqa",
		"# a regular comment",
		"x = 1",
		"",
	} {
		t.Run(fmt.Sprintf("%q", src), func(t *testing.T) {
			assert.Equal(t, []string{}, analyze(t, src))
		})
	}
}

func TestInlineValidFormatting(t *testing.T) {
	for _, src := range []string{
		"x=1 # noqa",
		"x=1 # noqa:",
		"x=1 # noqa this is not a code",
		"x=1 # noqa - X101 is not a code",
		"x=1 # noqa:E225",
		"x=1 # noqa: E225",
		"x=1 # noqa: E225,",
		"x=1 # noqa: E225, E261",
		"x=1 # noqa: E225, E261,",
		"x=1 # noqa: E225,   ,  E261  ,  ,   ",
	} {
		t.Run(src, func(t *testing.T) {
			assert.Equal(t, []string{}, analyze(t, src))
		})
	}
}

func TestInlineFormatting(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{"x=1 #NOQA", []string{
			`1:5: NQA001 "#NOQA" must have a single space after the hash, e.g. "# NOQA"`,
		}},
		{"x=1 #  NOQA", []string{
			`1:5: NQA001 "#  NOQA" must have a single space after the hash, e.g. "# NOQA"`,
		}},
		{"x=1 # noqa E225", []string{
			`1:5: NQA002 "# noqa E225" must have a colon, e.g. "# noqa: E225"`,
		}},
		{"x=1 #noqa E225", []string{
			`1:5: NQA001 "#noqa E225" must have a single space after the hash, e.g. "# noqa: E225"`,
			`1:5: NQA002 "#noqa E225" must have a colon, e.g. "# noqa: E225"`,
		}},
		{"x=1 # noqa  E225", []string{
			`1:5: NQA002 "# noqa  E225" must have a colon, e.g. "# noqa: E225"`,
			`1:5: NQA004 "# noqa  E225" must have at most one space before the codes, e.g. "# noqa: E225"`,
		}},
		{"x=1 # noqa E225, E261", []string{
			`1:5: NQA002 "# noqa E225, E261" must have a colon, e.g. "# noqa: E225, E261"`,
		}},
		{"x=1 # noqa : E225", []string{
			`1:5: NQA003 "# noqa : E225" must not have a space before the colon, e.g. "# noqa: E225"`,
		}},
		{"x=1 #noqa : E225", []string{
			`1:5: NQA001 "#noqa : E225" must have a single space after the hash, e.g. "# noqa: E225"`,
			`1:5: NQA003 "#noqa : E225" must not have a space before the colon, e.g. "# noqa: E225"`,
		}},
		{"x=1 # noqa  :  E225", []string{
			`1:5: NQA003 "# noqa  :  E225" must not have a space before the colon, e.g. "# noqa: E225"`,
			`1:5: NQA004 "# noqa  :  E225" must have at most one space before the codes, e.g. "# noqa: E225"`,
		}},
		{"x=1 # noqa : E225, E261", []string{
			`1:5: NQA003 "# noqa : E225, E261" must not have a space before the colon, e.g. "# noqa: E225, E261"`,
		}},
		{"x=1 # noqa: E225, E225", []string{
			`1:5: NQA005 "# noqa: E225, E225" has duplicate codes, remove E225`,
		}},
		{"x=1 # noqa: E225, E225, E225", []string{
			`1:5: NQA005 "# noqa: E225, E225, E225" has duplicate codes, remove E225, E225`,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, analyze(t, tt.src))
		})
	}
}

func TestCrossReference(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		reports []report
		want    []string
	}{
		{
			name:    "blanket suppressing real diagnostics",
			src:     "x=1 # noqa",
			reports: []report{{1, "E225"}, {1, "E261"}},
			want:    []string{},
		},
		{
			name:    "blanket with nothing to suppress",
			src:     "x=1 # noqa",
			reports: nil,
			want:    []string{`1:5: NQA101 "# noqa" has no violations`},
		},
		{
			name:    "declared codes all observed",
			src:     "x=1 # noqa: E225",
			reports: []report{{1, "E225"}},
			want:    []string{},
		},
		{
			name:    "messy list still matches",
			src:     "x=1 # noqa: E225,   ,  E261  ,  ,   ",
			reports: []report{{1, "E225"}, {1, "E261"}},
			want:    []string{},
		},
		{
			name:    "no declared code observed",
			src:     "x=1 # noqa: X101",
			reports: []report{{1, "E225"}},
			want:    []string{`1:5: NQA102 "# noqa: X101" has no matching violations`},
		},
		{
			name:    "one stale code",
			src:     "x=1 # noqa: E225, X101",
			reports: []report{{1, "E225"}},
			want:    []string{`1:5: NQA103 "# noqa: E225, X101" has unmatched code, remove X101`},
		},
		{
			name:    "several stale codes keep declaration order",
			src:     "x=1 # noqa: X102, E225, X101",
			reports: []report{{1, "E225"}},
			want:    []string{`1:5: NQA103 "# noqa: X102, E225, X101" has unmatched codes, remove X102, X101`},
		},
		{
			name:    "second hash hosts the directive",
			src:     "x=1 # type: ignore[type] # noqa: X101",
			reports: []report{{1, "E225"}},
			want:    []string{`1:5: NQA102 "# noqa: X101" has no matching violations`},
		},
		{
			name:    "duplicates judged once declared codes match",
			src:     "x=1 # noqa: E225, E225",
			reports: []report{{1, "E225"}},
			want:    []string{`1:5: NQA005 "# noqa: E225, E225" has duplicate codes, remove E225`},
		},
		{
			name:    "directive covers whole logical statement",
			src:     "x='''\n'''  # noqa: E225",
			reports: []report{{1, "E225"}},
			want:    []string{},
		},
		{
			name:    "trailing comma statement stays open",
			src:     "x='''\n''',  # noqa: E225",
			reports: []report{{1, "E225"}},
			want:    []string{},
		},
		{
			name:    "report outside covered lines does not match",
			src:     "x=1 # noqa: E225",
			reports: []report{{2, "E225"}},
			want:    []string{`1:5: NQA102 "# noqa: E225" has no matching violations`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, check(t, tt.src, tt.reports))
		})
	}
}

func TestRequireCodes(t *testing.T) {
	src := "x=1 # noqa"
	reports := []report{{1, "E225"}, {1, "W292"}, {1, "D100"}, {1, "E261"}, {1, "E225"}}

	t.Run("off", func(t *testing.T) {
		assert.Equal(t, []string{}, check(t, src, reports))
	})

	t.Run("on", func(t *testing.T) {
		// Suggested codes are distinct and sorted.
		assert.Equal(t, []string{
			`1:5: NQA104 "# noqa" must have codes, e.g. "# noqa: D100, E225, E261, W292"`,
		}, check(t, src, reports, checker.WithRequireCodes(true)))
	})

	t.Run("declared codes are exempt", func(t *testing.T) {
		assert.Equal(t, []string{},
			check(t, "x=1 # noqa: E225", []report{{1, "E225"}}, checker.WithRequireCodes(true)))
	})
}

func TestIncludeName(t *testing.T) {
	got := analyze(t, "x=1 # noqa E225", checker.WithIncludeName(true))
	assert.Equal(t, []string{
		`1:5: NQA002 (noqacheck) "# noqa E225" must have a colon, e.g. "# noqa: E225"`,
	}, got)

	got = check(t, "x=1 # noqa", nil, checker.WithIncludeName(true))
	assert.Equal(t, []string{
		`1:5: NQA101 (noqacheck) "# noqa" has no violations`,
	}, got)
}

func TestSelfImmunity(t *testing.T) {
	c := checker.New()
	_, err := c.Analyze(context.Background(), "test.py", []byte("x=1 # noqa"))
	assert.NoError(t, err)

	// Recorded output from the tool itself must not count as a violation.
	c.Record("test.py", "NQA102", 1)
	c.Record("test.py", "NQA104", 1)

	got := render(c.Finish("test.py"))
	assert.Equal(t, []string{`1:5: NQA101 "# noqa" has no violations`}, got)
}

func TestFinishClearsState(t *testing.T) {
	c := checker.New()
	_, err := c.Analyze(context.Background(), "test.py", []byte("x=1 # noqa: X101"))
	assert.NoError(t, err)

	first := c.Finish("test.py")
	assert.Equal(t, 1, len(first))

	// Everything for the file was cleared, including its directives.
	second := c.Finish("test.py")
	assert.Equal(t, 0, len(second))
}

func TestRunsAreIdempotent(t *testing.T) {
	src := "x=1 # noqa: E225, X101\ny=2 # noqa\n"
	reports := []report{{1, "E225"}}

	first := check(t, src, reports)
	second := check(t, src, reports)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{
		`1:5: NQA103 "# noqa: E225, X101" has unmatched code, remove X101`,
		`2:5: NQA101 "# noqa" has no violations`,
	}, first)
}

func TestSharedRegistryConcurrent(t *testing.T) {
	registry := checker.NewRegistry()

	files := map[string]string{
		"a.py": "x=1 # noqa: X101",
		"b.py": "y=2 # noqa",
		"c.py": "z=3 # noqa: E225",
	}

	var wg sync.WaitGroup
	for name, src := range files {
		wg.Add(1)
		go func(name, src string) {
			defer wg.Done()
			c := checker.New(checker.WithRegistry(registry))
			_, err := c.Analyze(context.Background(), name, []byte(src))
			if err != nil {
				t.Error(err)
			}
			if name == "c.py" {
				c.Record(name, "E225", 1)
			}
		}(name, src)
	}
	wg.Wait()

	c := checker.New(checker.WithRegistry(registry))
	assert.Equal(t, []string{`1:5: NQA102 "# noqa: X101" has no matching violations`},
		render(c.Finish("a.py")))
	assert.Equal(t, []string{`1:5: NQA101 "# noqa" has no violations`},
		render(c.Finish("b.py")))
	assert.Equal(t, []string{}, render(c.Finish("c.py")))
}

func TestRegistryDiagnostics(t *testing.T) {
	r := checker.NewRegistry()
	r.Record("a.py", "E225", 1)
	r.Record("a.py", "E501", 3)
	r.Record("a.py", "E225", 3)

	assert.Equal(t, []string{"E225"}, r.Diagnostics("a.py", 1, 1))
	assert.Equal(t, []string{"E225", "E501", "E225"}, r.Diagnostics("a.py", 1, 3))
	assert.Equal(t, 0, len(r.Diagnostics("a.py", 4, 9)))
	assert.Equal(t, 0, len(r.Diagnostics("other.py", 1, 3)))
	assert.Equal(t, 0, len(r.Diagnostics("a.py", 3, 1)))

	r.Reset("a.py")
	assert.Equal(t, 0, len(r.Diagnostics("a.py", 1, 3)))
}

func TestRegistryDirectivesSorted(t *testing.T) {
	mustInline := func(text string, line, stmtLine int) *directive.Inline {
		d := directive.MatchInline(scanner.Comment{
			Text:     text,
			Pos:      scanner.Position{Filename: "a.py", Line: line, Column: 1},
			StmtLine: stmtLine,
		})
		if d == nil {
			t.Fatalf("expected %q to match", text)
		}
		return d
	}

	r := checker.NewRegistry()
	r.AddDirective("a.py", mustInline("# noqa: B2", 5, 5))
	r.AddDirective("a.py", mustInline("# noqa: A1", 2, 2))
	r.AddDirective("a.py", mustInline("# noqa: C3", 5, 5))

	dirs := r.Directives("a.py")
	assert.Equal(t, 3, len(dirs))
	assert.Equal(t, "A1", dirs[0].Codes[0])
	// Stable: the two line-5 directives keep registration order.
	assert.Equal(t, "B2", dirs[1].Codes[0])
	assert.Equal(t, "C3", dirs[2].Codes[0])
}

func TestDiagnosticString(t *testing.T) {
	d := checker.Diagnostic{
		Pos:     scanner.Position{Filename: "pkg/app.py", Line: 3, Column: 7},
		Code:    "NQA102",
		Message: `"# noqa: X101" has no matching violations`,
	}
	assert.Equal(t, `pkg/app.py:3:7: NQA102 "# noqa: X101" has no matching violations`, d.String())
}

func TestSortStable(t *testing.T) {
	diags := []checker.Diagnostic{
		{Pos: scanner.Position{Line: 2, Column: 1}, Code: "NQA001"},
		{Pos: scanner.Position{Line: 1, Column: 5}, Code: "NQA002"},
		{Pos: scanner.Position{Line: 1, Column: 5}, Code: "NQA004"},
		{Pos: scanner.Position{Line: 1, Column: 1}, Code: "NQA011"},
	}
	checker.Sort(diags)

	codes := make([]string, len(diags))
	for i, d := range diags {
		codes[i] = d.Code
	}
	assert.Equal(t, []string{"NQA011", "NQA002", "NQA004", "NQA001"}, codes)
}

func TestOwnCode(t *testing.T) {
	assert.True(t, checker.OwnCode("NQA001"))
	assert.True(t, checker.OwnCode("NQA104"))
	assert.False(t, checker.OwnCode("E225"))
	assert.False(t, checker.OwnCode("nqa001"))
}

func BenchmarkAnalyze(b *testing.B) {
	var sb strings.Builder
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&sb, "value_%d = compute(%d)  # noqa: E501\n", i, i)
		fmt.Fprintf(&sb, "items_%d = [\n    1,\n    2,\n]  # noqa\n", i)
	}
	src := []byte(sb.String())
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := checker.New()
		if _, err := c.Analyze(ctx, "bench.py", src); err != nil {
			b.Fatal(err)
		}
		c.Finish("bench.py")
	}
}
