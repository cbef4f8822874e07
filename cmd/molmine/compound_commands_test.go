package main

import (
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func newRecognitionStub(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func addTestPdf(t *testing.T, env cliTestEnv) {
	t.Helper()
	source := filepath.Join(t.TempDir(), "paper.pdf")
	if err := os.WriteFile(source, []byte("%PDF"), 0o644); err != nil {
		t.Fatalf("write source pdf: %v", err)
	}
	if _, err := runCLI(t, env, "pdf", "add", source, "--title", "Test Paper"); err != nil {
		t.Fatalf("pdf add: %v", err)
	}
}

func TestCompoundAddFromSMILES(t *testing.T) {
	server := newRecognitionStub(t, `{"valid":true,"smiles":"CCO","inchi":"InChI=1S/C2H6O/c1-2-3/h3H,2H2,1H3","structure_image":"","molblock":""}`)
	env := setupCLITestEnv(t, server.URL)
	addTestPdf(t, env)

	out, err := runCLI(t, env, "compound", "add", "--pdf", "1", "--smiles", "CCO")
	if err != nil {
		t.Fatalf("compound add: %v", err)
	}
	requireContains(t, out, "Stored compound 1")

	out, err = runCLI(t, env, "compound", "show", "1")
	if err != nil {
		t.Fatalf("compound show: %v", err)
	}
	requireContains(t, out, "CCO")
	requireContains(t, out, "InChI=1S/C2H6O")
}

func TestCompoundAddWritesStructureImage(t *testing.T) {
	image := base64.StdEncoding.EncodeToString([]byte("fake png bytes"))
	server := newRecognitionStub(t, `{"valid":true,"smiles":"C","structure_image":"`+image+`"}`)
	env := setupCLITestEnv(t, server.URL)
	addTestPdf(t, env)

	out, err := runCLI(t, env, "compound", "add", "--pdf", "1", "--smiles", "C")
	if err != nil {
		t.Fatalf("compound add: %v", err)
	}
	requireContains(t, out, "Stored compound 1")

	// No active project, so the image lands in the data directory.
	structuresDir := filepath.Join(env.baseDir, "data", "structures")
	entries, err := os.ReadDir(structuresDir)
	if err != nil {
		t.Fatalf("read structures dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 structure image, got %d", len(entries))
	}
	written, err := os.ReadFile(filepath.Join(structuresDir, entries[0].Name()))
	if err != nil {
		t.Fatalf("read structure image: %v", err)
	}
	if string(written) != "fake png bytes" {
		t.Fatalf("unexpected image contents: %q", written)
	}
}

func TestCompoundAddRejectsInvalidStructure(t *testing.T) {
	server := newRecognitionStub(t, `{"valid":false,"smiles":""}`)
	env := setupCLITestEnv(t, server.URL)
	addTestPdf(t, env)

	if _, err := runCLI(t, env, "compound", "add", "--pdf", "1", "--smiles", "nonsense"); err == nil {
		t.Fatal("expected error for invalid structure")
	}
}

func TestCompoundAddRequiresOneSource(t *testing.T) {
	env := setupCLITestEnv(t, "")

	if _, err := runCLI(t, env, "compound", "add", "--pdf", "1"); err == nil {
		t.Fatal("expected error with no structure source")
	}
	if _, err := runCLI(t, env, "compound", "add", "--pdf", "1", "--smiles", "C", "--molfile", "x.mol"); err == nil {
		t.Fatal("expected error with two structure sources")
	}
}

func TestCompoundAddDanglingPdf(t *testing.T) {
	server := newRecognitionStub(t, `{"valid":true,"smiles":"CCO"}`)
	env := setupCLITestEnv(t, server.URL)

	if _, err := runCLI(t, env, "compound", "add", "--pdf", "42", "--smiles", "CCO"); err == nil {
		t.Fatal("expected error for dangling pdf id")
	}
}

func TestCompoundListByPdf(t *testing.T) {
	server := newRecognitionStub(t, `{"valid":true,"smiles":"CCO"}`)
	env := setupCLITestEnv(t, server.URL)
	addTestPdf(t, env)

	if _, err := runCLI(t, env, "compound", "add", "--pdf", "1", "--smiles", "CCO"); err != nil {
		t.Fatalf("compound add: %v", err)
	}

	out, err := runCLI(t, env, "compound", "list", "--pdf", "1")
	if err != nil {
		t.Fatalf("compound list: %v", err)
	}
	requireContains(t, out, "CCO")
}
