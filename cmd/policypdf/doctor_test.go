package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// fakeChecks returns probes for a healthy machine with Chrome at
// /usr/bin/chromium; tests break individual probes.
func fakeChecks(environ map[string]string) *doctorChecks {
	return &doctorChecks{
		getenv:     func(k string) string { return environ[k] },
		lookPath:   func() (string, bool) { return "/usr/bin/chromium", true },
		stat:       func(string) error { return nil },
		version:    func(string) (string, error) { return "Chromium 131.0", nil },
		tempDir:    func() string { return "/tmp" },
		dockerenv:  func() bool { return false },
		writeProbe: func(string) error { return nil },
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctor - Diagnostic checks with fake probes
// ---------------------------------------------------------------------------

func TestRunDoctor(t *testing.T) {
	t.Parallel()

	t.Run("ready", func(t *testing.T) {
		t.Parallel()

		r := runDoctor(fakeChecks(nil))
		if r.Status != statusReady {
			t.Fatalf("Status = %q, want ready (errors %v, warnings %v)", r.Status, r.Errors, r.Warnings)
		}
		if !r.Chrome.Found || r.Chrome.Path != "/usr/bin/chromium" || r.Chrome.Version != "Chromium 131.0" {
			t.Errorf("Chrome = %+v", r.Chrome)
		}
		if !r.Chrome.Sandbox || !r.System.TempWritable {
			t.Errorf("result = %+v", r)
		}
	})

	t.Run("chrome missing", func(t *testing.T) {
		t.Parallel()

		c := fakeChecks(nil)
		c.lookPath = func() (string, bool) { return "", false }
		r := runDoctor(c)
		if r.Status != statusErrors || r.Chrome.Found {
			t.Errorf("Status = %q, Found = %v", r.Status, r.Chrome.Found)
		}
	})

	t.Run("browser bin that does not exist", func(t *testing.T) {
		t.Parallel()

		c := fakeChecks(map[string]string{"ROD_BROWSER_BIN": "/opt/chrome"})
		c.stat = func(string) error { return errors.New("no such file") }
		r := runDoctor(c)
		if r.Status != statusErrors || !strings.Contains(strings.Join(r.Errors, ";"), "/opt/chrome") {
			t.Errorf("Errors = %v", r.Errors)
		}
	})

	t.Run("version failure is a warning", func(t *testing.T) {
		t.Parallel()

		c := fakeChecks(nil)
		c.version = func(string) (string, error) { return "", errors.New("exit 1") }
		r := runDoctor(c)
		if r.Status != statusWarnings {
			t.Errorf("Status = %q, want warnings", r.Status)
		}
	})

	t.Run("container without no-sandbox warns", func(t *testing.T) {
		t.Parallel()

		c := fakeChecks(nil)
		c.dockerenv = func() bool { return true }
		r := runDoctor(c)
		if !r.Env.Container || r.Env.ContainerHint != "/.dockerenv" {
			t.Errorf("Env = %+v", r.Env)
		}
		if r.Status != statusWarnings {
			t.Errorf("Status = %q, want warnings", r.Status)
		}
	})

	t.Run("CI with no-sandbox is ready", func(t *testing.T) {
		t.Parallel()

		r := runDoctor(fakeChecks(map[string]string{"GITHUB_ACTIONS": "true", "ROD_NO_SANDBOX": "1"}))
		if !r.Env.CI || r.Chrome.Sandbox || r.Status != statusReady {
			t.Errorf("result = %+v", r)
		}
	})

	t.Run("explicit container override", func(t *testing.T) {
		t.Parallel()

		r := runDoctor(fakeChecks(map[string]string{"POLICYPDF_CONTAINER": "1", "ROD_NO_SANDBOX": "1"}))
		if r.Env.ContainerHint != "POLICYPDF_CONTAINER=1" {
			t.Errorf("ContainerHint = %q", r.Env.ContainerHint)
		}
	})

	t.Run("temp not writable", func(t *testing.T) {
		t.Parallel()

		c := fakeChecks(nil)
		c.writeProbe = func(string) error { return errors.New("read-only") }
		r := runDoctor(c)
		if r.Status != statusErrors || r.System.TempWritable {
			t.Errorf("result = %+v", r)
		}
	})
}

func TestPrintDoctorResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printDoctorResult(&buf, &doctorResult{
		Status:   statusWarnings,
		Chrome:   chromeInfo{Found: true, Path: "/usr/bin/chromium", Sandbox: false},
		Env:      envInfo{OS: "linux", Arch: "amd64", CI: true},
		System:   systemInfo{TempWritable: true},
		Warnings: []string{"something odd"},
	})

	out := buf.String()
	for _, want := range []string{
		"policypdf doctor",
		"[OK] Found at /usr/bin/chromium",
		"Sandbox: disabled",
		"[OK] Platform: linux/amd64",
		"[OK] CI: detected",
		"[WARN] something odd",
		"Status: Ready with warnings",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunDoctorCmd_UnknownFlag(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	if code := runDoctorCmd([]string{"--yaml"}, env.Environment); code != ExitUsage {
		t.Errorf("runDoctorCmd() = %d, want %d", code, ExitUsage)
	}
}
