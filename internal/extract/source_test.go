package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeSource creates a file under dir and returns its path.
func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestInferTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"src/pages/TermsOfUsePage.tsx", TitleTerms},
		{"src/pages/PrivacyPolicyPage.tsx", TitlePrivacy},
		{"src/pages/RefundPolicyPage.tsx", TitleRefund},
		{"anything-else.html", TitleRefund},
		{"/abs/Terms.html", TitleTerms},
	}

	for _, tt := range tests {
		if got := InferTitle(tt.path); got != tt.want {
			t.Errorf("InferTitle(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     Source
		want    string
		wantErr error
	}{
		{name: "tsx", src: Source{Path: "a.tsx"}, want: FormatMarkup},
		{name: "jsx", src: Source{Path: "a.jsx"}, want: FormatMarkup},
		{name: "html", src: Source{Path: "a.html"}, want: FormatHTML},
		{name: "htm uppercase", src: Source{Path: "A.HTM"}, want: FormatHTML},
		{name: "explicit wins over extension", src: Source{Path: "a.txt", Format: "markup"}, want: FormatMarkup},
		{name: "explicit html", src: Source{Path: "a.tsx", Format: "HTML"}, want: FormatHTML},
		{name: "unknown extension", src: Source{Path: "a.txt"}, wantErr: ErrUnsupportedFormat},
		{name: "unknown format", src: Source{Path: "a.tsx", Format: "pdf"}, wantErr: ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DetectFormat(tt.src)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("DetectFormat() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectFormat() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tsx := writeSource(t, dir, "TermsOfUsePage.tsx", refundPage)
	htm := writeSource(t, dir, "privacy.html", "<h2>Overview</h2><p>We respect your privacy.</p>")

	t.Run("markup with inferred title", func(t *testing.T) {
		t.Parallel()

		got, err := Load(context.Background(), Source{Path: tsx})
		if err != nil {
			t.Fatalf("Load() unexpected error: %v", err)
		}
		if got.Title != TitleTerms {
			t.Errorf("Title = %q, want %q", got.Title, TitleTerms)
		}
		if !reflect.DeepEqual(got.Paragraphs, FromMarkup(refundPage)) {
			t.Errorf("Paragraphs = %q", got.Paragraphs)
		}
		if got.Path != tsx {
			t.Errorf("Path = %q, want %q", got.Path, tsx)
		}
	})

	t.Run("html with explicit title", func(t *testing.T) {
		t.Parallel()

		got, err := Load(context.Background(), Source{Path: htm, Title: "  Privacy  "})
		if err != nil {
			t.Fatalf("Load() unexpected error: %v", err)
		}
		if got.Title != "Privacy" {
			t.Errorf("Title = %q, want %q", got.Title, "Privacy")
		}
		want := []string{"Overview", "We respect your privacy."}
		if !reflect.DeepEqual(got.Paragraphs, want) {
			t.Errorf("Paragraphs = %q, want %q", got.Paragraphs, want)
		}
	})

	t.Run("missing file wraps ErrNotExist", func(t *testing.T) {
		t.Parallel()

		_, err := Load(context.Background(), Source{Path: filepath.Join(dir, "missing.tsx")})
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Load() error = %v, want os.ErrNotExist", err)
		}
		if !errors.Is(err, ErrReadSource) {
			t.Errorf("Load() error = %v, want ErrReadSource", err)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		if _, err := Load(context.Background(), Source{}); !errors.Is(err, ErrEmptyPath) {
			t.Errorf("Load() error = %v, want ErrEmptyPath", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := Load(ctx, Source{Path: tsx}); !errors.Is(err, context.Canceled) {
			t.Errorf("Load() error = %v, want context.Canceled", err)
		}
	})
}

func TestLoadAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	terms := writeSource(t, dir, "TermsOfUsePage.tsx", "<p>Terms body paragraph.</p>")
	privacy := writeSource(t, dir, "PrivacyPolicyPage.tsx", "<p>Privacy body paragraph.</p>")
	refund := writeSource(t, dir, "RefundPolicyPage.tsx", "<p>Refund body paragraph.</p>")

	t.Run("keeps input order", func(t *testing.T) {
		t.Parallel()

		got, err := LoadAll(context.Background(), []Source{{Path: refund}, {Path: terms}, {Path: privacy}})
		if err != nil {
			t.Fatalf("LoadAll() unexpected error: %v", err)
		}
		titles := make([]string, len(got))
		for i, ex := range got {
			titles[i] = ex.Title
		}
		want := []string{TitleRefund, TitleTerms, TitlePrivacy}
		if !reflect.DeepEqual(titles, want) {
			t.Errorf("titles = %q, want %q", titles, want)
		}
	})

	t.Run("stops at first failure", func(t *testing.T) {
		t.Parallel()

		_, err := LoadAll(context.Background(), []Source{{Path: terms}, {Path: filepath.Join(dir, "nope.tsx")}})
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("LoadAll() error = %v, want os.ErrNotExist", err)
		}
	})
}
