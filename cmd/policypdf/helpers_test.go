package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rapidophilia/policypdf"
)

// fakeConverter stands in for the Chrome-backed converter.
type fakeConverter struct {
	input  policypdf.Input
	calls  int
	err    error
	closed bool
	opts   int
}

func (f *fakeConverter) Convert(_ context.Context, input policypdf.Input) (*policypdf.ConvertResult, error) {
	f.calls++
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	res := &policypdf.ConvertResult{HTML: []byte("<html><body>policies</body></html>")}
	if !input.HTMLOnly {
		res.PDF = []byte("%PDF-1.7 fake")
	}
	return res, nil
}

func (f *fakeConverter) Close() error {
	f.closed = true
	return nil
}

type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	conv   *fakeConverter
}

// newTestEnv returns an environment with captured output, a fixed clock,
// the given environment variables only, and a fake converter.
func newTestEnv(t *testing.T, environ ...string) *testEnv {
	t.Helper()
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		conv:   &fakeConverter{},
	}
	te.Environment = &Environment{
		Now:     func() time.Time { return time.Date(2025, time.April, 18, 9, 0, 0, 0, time.UTC) },
		Stdout:  te.stdout,
		Stderr:  te.stderr,
		Environ: func() []string { return environ },
		NewConverter: func(opts ...policypdf.Option) (Converter, error) {
			te.conv.opts = len(opts)
			return te.conv, nil
		},
	}
	return te
}

const termsPage = `import React from 'react';

const TermsOfUsePage: React.FC = () => {
  return (
    <Layout>
      {/* Terms */}
      <h1>Terms of Use</h1>
      <p>By booking with Rapidophilia you agree to these terms.</p>
    </Layout>
  );
};

export default TermsOfUsePage;
`

const privacyPage = `import React from 'react';

const PrivacyPolicyPage: React.FC = () => {
  return (
    <Layout>
      {/* Privacy */}
      <h2>Information We Collect</h2>
      <p>We collect your name, email and phone number for bookings.</p>
    </Layout>
  );
};

export default PrivacyPolicyPage;
`

const refundPageSource = `import React from 'react';

const RefundPolicyPage: React.FC = () => {
  return (
    <Layout>
      {/* Refunds */}
      <h2>Refund Process</h2>
      <p>Refunds typically return to the original payment source within 7 days.</p>
    </Layout>
  );
};

export default RefundPolicyPage;
`

// newSiteRoot writes the three policy pages under dir/src/pages.
func newSiteRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	pages := filepath.Join(root, "src", "pages")
	if err := os.MkdirAll(pages, 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"TermsOfUsePage.tsx":    termsPage,
		"PrivacyPolicyPage.tsx": privacyPage,
		"RefundPolicyPage.tsx":  refundPageSource,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(pages, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
