package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	conv := NewGoldmarkConverter()
	md := ComposeMarkdown([]SectionData{
		{Title: "Terms of Use", Paragraphs: []string{"Refunds are final."}},
		{Title: "Privacy Policy", Paragraphs: []string{"We collect your email."}},
	})

	got, err := conv.ToHTML(context.Background(), "", md)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Policies</title>",
		`<h1 id="terms-of-use">Terms of Use</h1>`,
		`<h1 id="privacy-policy">Privacy Policy</h1>`,
		"<p>Refunds are final.</p>",
		"<p>We collect your email.</p>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	if strings.Index(got, "Terms of Use") > strings.Index(got, "Privacy Policy") {
		t.Error("sections rendered out of order")
	}
}

func TestGoldmarkConverter_EscapesMarkup(t *testing.T) {
	t.Parallel()

	conv := NewGoldmarkConverter()
	md := ComposeMarkdown([]SectionData{
		{Title: "T", Paragraphs: []string{"<script>alert(1)</script> and *stars*"}},
	})

	got, err := conv.ToHTML(context.Background(), "", md)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("markup was not escaped:\n%s", got)
	}
	if strings.Contains(got, "<em>") {
		t.Errorf("emphasis was interpreted:\n%s", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Errorf("escaped markup missing:\n%s", got)
	}
}

func TestGoldmarkConverter_TitleEscaped(t *testing.T) {
	t.Parallel()

	got, err := NewGoldmarkConverter().ToHTML(context.Background(), "A & <B>", "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "<title>A &amp; &lt;B&gt;</title>") {
		t.Errorf("title not escaped:\n%s", got)
	}
}

func TestGoldmarkConverter_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToHTML(ctx, "", "# A")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
