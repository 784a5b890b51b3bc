package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rapidophilia/policypdf/internal/extract"
)

// ---------------------------------------------------------------------------
// TestRunExtract - Debug output of scraped text
// ---------------------------------------------------------------------------

func TestRunExtract(t *testing.T) {
	t.Parallel()

	t.Run("prints a banner per default source", func(t *testing.T) {
		t.Parallel()

		root := newSiteRoot(t)
		env := newTestEnv(t)
		if err := runExtract(context.Background(), []string{"--root", root}, env.Environment); err != nil {
			t.Fatalf("runExtract() unexpected error: %v", err)
		}

		out := env.stdout.String()
		banners := []string{
			"--- TermsOfUsePage.tsx ---",
			"--- PrivacyPolicyPage.tsx ---",
			"--- RefundPolicyPage.tsx ---",
		}
		last := -1
		for _, b := range banners {
			i := strings.Index(out, b)
			if i <= last {
				t.Fatalf("banner %q missing or out of order in:\n%s", b, out)
			}
			last = i
		}
		if !strings.Contains(out, "Terms of Use\n\nBy booking with Rapidophilia you agree to these terms.") {
			t.Errorf("paragraphs not separated by blank lines:\n%s", out)
		}
	})

	t.Run("limit truncates each source", func(t *testing.T) {
		t.Parallel()

		root := newSiteRoot(t)
		src := filepath.Join(root, "src", "pages", "TermsOfUsePage.tsx")
		env := newTestEnv(t)
		if err := runExtract(context.Background(), []string{"--limit", "5", src}, env.Environment); err != nil {
			t.Fatal(err)
		}
		want := "--- TermsOfUsePage.tsx ---\nTerms\n\n\n\n"
		if env.stdout.String() != want {
			t.Errorf("stdout = %q, want %q", env.stdout, want)
		}
	})

	t.Run("json output", func(t *testing.T) {
		t.Parallel()

		root := newSiteRoot(t)
		env := newTestEnv(t)
		if err := runExtract(context.Background(), []string{"--root", root, "--json"}, env.Environment); err != nil {
			t.Fatal(err)
		}

		var got []extractedSection
		if err := json.Unmarshal(env.stdout.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, env.stdout)
		}
		if len(got) != 3 || got[1].Title != "Privacy Policy" {
			t.Fatalf("sections = %+v", got)
		}
		if len(got[1].Paragraphs) != 2 {
			t.Errorf("privacy paragraphs = %q", got[1].Paragraphs)
		}
	})

	t.Run("negative limit", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		err := runExtract(context.Background(), []string{"--limit", "-1"}, env.Environment)
		if !errors.Is(err, ErrUsage) {
			t.Errorf("runExtract() error = %v, want ErrUsage", err)
		}
	})

	t.Run("missing source", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		err := runExtract(context.Background(), []string{filepath.Join(t.TempDir(), "Nope.tsx")}, env.Environment)
		if exitCodeFor(err) != ExitIO {
			t.Errorf("exit code = %d, want %d (err %v)", exitCodeFor(err), ExitIO, err)
		}
	})
}

func TestPrintExtracted_EmptySource(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printExtracted(&buf, &extract.Extracted{Path: "/x/Empty.tsx"}, defaultExtractLimit)
	if buf.String() != "--- Empty.tsx ---\n\n\n\n\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestTruncateRunes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 0, "hello"},
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 3, "hel"},
		{"Rapidophilia — Policies", 14, "Rapidophilia —"},
		{"", 3, ""},
	}
	for _, tt := range tests {
		if got := truncateRunes(tt.in, tt.n); got != tt.want {
			t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
