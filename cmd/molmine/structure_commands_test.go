package main

import (
	"testing"
)

func TestStructureValidatePrintsRawResponse(t *testing.T) {
	const body = `{"valid":true,"smiles":"CCO","inchi":"InChI=1S/C2H6O/c1-2-3/h3H,2H2,1H3"}`
	server := newRecognitionStub(t, body)
	env := setupCLITestEnv(t, server.URL)

	out, err := runCLI(t, env, "structure", "validate", "CCO")
	if err != nil {
		t.Fatalf("structure validate: %v", err)
	}
	requireContains(t, out, body)
}

func TestStructureValidatePrintsInvalidResultUnchanged(t *testing.T) {
	// An invalid SMILES comes back as HTTP 200 with valid=false; the command
	// still succeeds and emits the body verbatim.
	const body = `{"valid": false, "error": "Invalid SMILES"}`
	server := newRecognitionStub(t, body)
	env := setupCLITestEnv(t, server.URL)

	out, err := runCLI(t, env, "structure", "validate", "not-smiles")
	if err != nil {
		t.Fatalf("structure validate: %v", err)
	}
	requireContains(t, out, body)
}

func TestStructureValidateServiceDown(t *testing.T) {
	env := setupCLITestEnv(t, "http://127.0.0.1:1")

	if _, err := runCLI(t, env, "structure", "validate", "CCO"); err == nil {
		t.Fatal("expected error when service is unreachable")
	}
}
