package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	r, err := NewAssetResolver("")
	if err != nil {
		t.Fatalf("NewAssetResolver(\"\") error = %v", err)
	}
	if r.HasCustomLoader() {
		t.Error("empty path should not configure a custom loader")
	}

	r, err = NewAssetResolver(t.TempDir())
	if err != nil {
		t.Fatalf("NewAssetResolver(dir) error = %v", err)
	}
	if !r.HasCustomLoader() {
		t.Error("directory should configure a custom loader")
	}

	if _, err := NewAssetResolver("/nonexistent/policypdf/assets"); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("error = %v, want ErrInvalidBasePath", err)
	}
}

func TestAssetResolver_CustomOverridesEmbedded(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeAsset(t, base, "styles", "default.css", "custom default")
	writeAsset(t, base, "templates", "cover.html", "custom cover")

	r, err := NewAssetResolver(base)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	if css, _ := r.LoadStyle(DefaultStyleName); css != "custom default" {
		t.Errorf("LoadStyle() = %q, want custom content", css)
	}
	if tmpl, _ := r.LoadTemplate(CoverTemplate); tmpl != "custom cover" {
		t.Errorf("LoadTemplate() = %q, want custom content", tmpl)
	}
}

func TestAssetResolver_FallsBackToEmbedded(t *testing.T) {
	t.Parallel()

	r, err := NewAssetResolver(t.TempDir())
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	css, err := r.LoadStyle(DefaultStyleName)
	if err != nil {
		t.Fatalf("LoadStyle() error = %v", err)
	}
	if !strings.Contains(css, ".cover-title") {
		t.Error("expected embedded default style")
	}

	tmpl, err := r.LoadTemplate(CoverTemplate)
	if err != nil {
		t.Fatalf("LoadTemplate() error = %v", err)
	}
	if !strings.Contains(tmpl, "data-cover-end") {
		t.Error("expected embedded cover template")
	}
}

func TestAssetResolver_ValidationErrorsNotFallenBack(t *testing.T) {
	t.Parallel()

	r, err := NewAssetResolver(t.TempDir())
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}
	if _, err := r.LoadStyle("../default"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("error = %v, want ErrInvalidAssetName", err)
	}
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want bool
	}{
		{ErrStyleNotFound, true},
		{ErrTemplateNotFound, true},
		{ErrInvalidAssetName, false},
		{ErrAssetRead, false},
		{errors.New("other"), false},
	}

	for _, tt := range tests {
		if got := isNotFoundError(tt.err); got != tt.want {
			t.Errorf("isNotFoundError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
