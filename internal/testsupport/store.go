package testsupport

import (
	"context"
	"testing"

	"molmine/internal/config"
	"molmine/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// NewProject inserts a project for tests using the provided store.
func NewProject(t testing.TB, st *store.Store, name, path string) *store.Project {
	t.Helper()

	project, err := st.InsertProject(context.Background(), store.NewProject{
		Name: name,
		Path: path,
	})
	if err != nil {
		t.Fatalf("store.InsertProject: %v", err)
	}
	return project
}

// NewPdf inserts a PDF record for tests using the provided store.
func NewPdf(t testing.TB, st *store.Store, title string) *store.Pdf {
	t.Helper()

	pdf, err := st.InsertPdf(context.Background(), store.NewPdf{
		Title:   title,
		Authors: "Test Author",
		Year:    2023,
		Journal: "Test Journal",
		Volume:  "1",
		Data:    []byte{0x25, 0x50, 0x44, 0x46},
	})
	if err != nil {
		t.Fatalf("store.InsertPdf: %v", err)
	}
	return pdf
}
