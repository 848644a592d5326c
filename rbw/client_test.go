package rbw

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/envrbw/envrbw/logger"
	"github.com/envrbw/envrbw/store"
	"github.com/google/go-cmp/cmp"
)

type fakeRunner struct {
	stdout []byte
	stderr []byte
	err    error

	captureArgs     [][]string
	interactiveArgs [][]string
	interactiveEnv  []string

	// scriptBody captures the editor script's content at invocation time,
	// before the client cleans it up.
	scriptBody string
}

func (f *fakeRunner) Capture(args ...string) ([]byte, []byte, error) {
	f.captureArgs = append(f.captureArgs, args)
	return f.stdout, f.stderr, f.err
}

func (f *fakeRunner) Interactive(extraEnv []string, args ...string) error {
	f.interactiveArgs = append(f.interactiveArgs, args)
	f.interactiveEnv = extraEnv

	for _, kv := range extraEnv {
		if path, ok := strings.CutPrefix(kv, "VISUAL="); ok {
			b, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			f.scriptBody = string(b)
		}
	}
	return f.err
}

func newTestClient(runner *fakeRunner) *Client {
	return &Client{logger: logger.NewBuffer(), runner: runner}
}

func TestGetEntry(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{stdout: []byte(`{
		"id": "abc-123",
		"type": "Note",
		"notes": "\nAPI_KEY=xyz\n",
		"fields": [
			{"name": "LEGACY", "value": "old", "type": "hidden"},
			{"name": "linked", "value": "", "type": "linked"}
		]
	}`)}

	entry, err := newTestClient(runner).GetEntry("envrbw", "myapp")
	if err != nil {
		t.Fatalf("GetEntry error = %v", err)
	}

	want := &store.Entry{
		ID:     "abc-123",
		Name:   "myapp",
		Kind:   store.SecureNote,
		Notes:  "\nAPI_KEY=xyz\n",
		Fields: []store.Field{{Name: "LEGACY", Value: "old", Hidden: true}},
	}
	if diff := cmp.Diff(want, entry); diff != "" {
		t.Errorf("entry mismatch (-want +got):\n%s", diff)
	}

	wantArgs := []string{"get", "--raw", "--folder", "envrbw", "myapp"}
	if diff := cmp.Diff([][]string{wantArgs}, runner.captureArgs); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestGetEntryDefaultsToLoginKind(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{stdout: []byte(`{"id": "abc", "type": "Login", "notes": ""}`)}

	entry, err := newTestClient(runner).GetEntry("envrbw", "myapp")
	if err != nil {
		t.Fatalf("GetEntry error = %v", err)
	}
	if entry.Kind != store.Login {
		t.Errorf("Kind = %v, want Login", entry.Kind)
	}
}

func TestGetEntryNotFound(t *testing.T) {
	t.Parallel()

	for _, stderr := range []string{
		"rbw get: no entry found",
		"rbw get: no items found",
		"Error: Entry not found",
	} {
		runner := &fakeRunner{stderr: []byte(stderr), err: errors.New("exit status 1")}

		entry, err := newTestClient(runner).GetEntry("envrbw", "missing")
		if err != nil {
			t.Errorf("GetEntry with stderr %q error = %v, want nil", stderr, err)
		}
		if entry != nil {
			t.Errorf("GetEntry with stderr %q = %v, want nil entry", stderr, entry)
		}
	}
}

func TestGetEntryOtherFailuresAreNotAbsence(t *testing.T) {
	t.Parallel()

	cause := errors.New("exit status 1")
	runner := &fakeRunner{stderr: []byte("failed to unlock the vault"), err: cause}

	_, err := newTestClient(runner).GetEntry("envrbw", "myapp")
	if err == nil {
		t.Fatal("GetEntry error = nil, want failure")
	}
	if !errors.Is(err, cause) {
		t.Errorf("error %v does not wrap the command failure", err)
	}
	if !strings.Contains(err.Error(), "failed to unlock the vault") {
		t.Errorf("error %v is missing the rbw stderr context", err)
	}
}

func TestListNamespaces(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{stdout: []byte(`[
		{"name": "myapp", "folder": "envrbw", "type": "Note"},
		{"name": "staging", "folder": "envrbw", "type": "Login"},
		{"name": "unrelated", "folder": "personal", "type": "Note"},
		{"name": "nofolder", "folder": "", "type": "Note"}
	]`)}

	names, err := newTestClient(runner).ListNamespaces("envrbw")
	if err != nil {
		t.Fatalf("ListNamespaces error = %v", err)
	}

	want := []string{"myapp", "staging"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateEntryUsesEditorScript(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}

	err := newTestClient(runner).CreateEntry("envrbw", "myapp", store.Login, "\nAPI_KEY=it's secret\n")
	if err != nil {
		t.Fatalf("CreateEntry error = %v", err)
	}

	wantArgs := []string{"add", "--folder", "envrbw", "myapp"}
	if diff := cmp.Diff([][]string{wantArgs}, runner.interactiveArgs); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}

	var haveVisual, haveEditor bool
	for _, kv := range runner.interactiveEnv {
		haveVisual = haveVisual || strings.HasPrefix(kv, "VISUAL=")
		haveEditor = haveEditor || strings.HasPrefix(kv, "EDITOR=")
	}
	if !haveVisual || !haveEditor {
		t.Errorf("editor env not set, got %v", runner.interactiveEnv)
	}

	if !strings.HasPrefix(runner.scriptBody, "#!/bin/sh\n") {
		t.Errorf("script body = %q, want a shell script", runner.scriptBody)
	}
	if !strings.Contains(runner.scriptBody, `it'\''s secret`) {
		t.Errorf("script body %q is missing the quote-escaped content", runner.scriptBody)
	}
}

func TestUpdateEntry(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}

	err := newTestClient(runner).UpdateEntry("envrbw", "myapp", "A=1\n")
	if err != nil {
		t.Fatalf("UpdateEntry error = %v", err)
	}

	wantArgs := []string{"edit", "--folder", "envrbw", "myapp"}
	if diff := cmp.Diff([][]string{wantArgs}, runner.interactiveArgs); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestEditorScript(t *testing.T) {
	t.Parallel()

	got := editorScript("A=100%\n")
	// '%' must survive: the content is a printf argument, not a format.
	if !strings.Contains(got, "A=100%") {
		t.Errorf("editorScript = %q, lost the literal %%", got)
	}
	if !strings.HasSuffix(got, "> \"$1\"\n") {
		t.Errorf("editorScript = %q, must overwrite the editor temp file", got)
	}
}
