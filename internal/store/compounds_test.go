package store_test

import (
	"context"
	"errors"
	"testing"

	"molmine/internal/store"
	"molmine/internal/testsupport"
)

func TestInsertCompoundRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	pdf := testsupport.NewPdf(t, st, "Source Paper")
	compound, err := st.InsertCompound(ctx, store.NewCompound{
		PdfID:        pdf.ID,
		SMILES:       "CCO",
		InChI:        "InChI=1S/C2H6O/c1-2-3/h3H,2H2,1H3",
		Image:        "/tmp/structures/ethanol.png",
		ChemicalData: `{"mw":46.07}`,
	})
	if err != nil {
		t.Fatalf("InsertCompound failed: %v", err)
	}
	if compound.ID == 0 {
		t.Fatal("expected compound ID to be assigned")
	}

	fetched, err := st.GetCompound(ctx, compound.ID)
	if err != nil {
		t.Fatalf("GetCompound failed: %v", err)
	}
	if fetched.PdfID != pdf.ID || fetched.SMILES != "CCO" {
		t.Fatalf("unexpected compound: %#v", fetched)
	}
	if fetched.ChemicalData != `{"mw":46.07}` {
		t.Fatalf("unexpected chemical data: %s", fetched.ChemicalData)
	}
}

func TestInsertCompoundDefaultsChemicalData(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	pdf := testsupport.NewPdf(t, st, "Source Paper")
	compound, err := st.InsertCompound(ctx, store.NewCompound{PdfID: pdf.ID, SMILES: "C"})
	if err != nil {
		t.Fatalf("InsertCompound failed: %v", err)
	}
	if compound.ChemicalData != "{}" {
		t.Fatalf("expected empty chemical data document, got %q", compound.ChemicalData)
	}
}

func TestInsertCompoundRejectsDanglingPdf(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	_, err := st.InsertCompound(ctx, store.NewCompound{PdfID: store.PdfID(4242), SMILES: "CCO"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for dangling pdf id, got %v", err)
	}

	compounds, err := st.Compounds(ctx)
	if err != nil {
		t.Fatalf("Compounds failed: %v", err)
	}
	if len(compounds) != 0 {
		t.Fatalf("expected compound count unchanged, got %d rows", len(compounds))
	}
}

func TestCompoundsByPdf(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	first := testsupport.NewPdf(t, st, "First Paper")
	second := testsupport.NewPdf(t, st, "Second Paper")

	for _, smiles := range []string{"C", "CC"} {
		if _, err := st.InsertCompound(ctx, store.NewCompound{PdfID: first.ID, SMILES: smiles}); err != nil {
			t.Fatalf("InsertCompound failed: %v", err)
		}
	}
	if _, err := st.InsertCompound(ctx, store.NewCompound{PdfID: second.ID, SMILES: "CCC"}); err != nil {
		t.Fatalf("InsertCompound failed: %v", err)
	}

	compounds, err := st.CompoundsByPdf(ctx, first.ID)
	if err != nil {
		t.Fatalf("CompoundsByPdf failed: %v", err)
	}
	if len(compounds) != 2 {
		t.Fatalf("expected 2 compounds for first pdf, got %d", len(compounds))
	}
	for _, compound := range compounds {
		if compound.PdfID != first.ID {
			t.Fatalf("expected compound bound to pdf %v, got %v", first.ID, compound.PdfID)
		}
	}
}

func TestUpdateCompound(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	pdf := testsupport.NewPdf(t, st, "Source Paper")
	compound, err := st.InsertCompound(ctx, store.NewCompound{PdfID: pdf.ID, SMILES: "CCO"})
	if err != nil {
		t.Fatalf("InsertCompound failed: %v", err)
	}

	compound.SMILES = "OCC"
	compound.ChemicalData = `{"revised":true}`
	updated, err := st.UpdateCompound(ctx, compound)
	if err != nil {
		t.Fatalf("UpdateCompound failed: %v", err)
	}
	if updated.SMILES != "OCC" || updated.ChemicalData != `{"revised":true}` {
		t.Fatalf("unexpected updated compound: %#v", updated)
	}
}

func TestDeleteCompound(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	pdf := testsupport.NewPdf(t, st, "Source Paper")
	compound, err := st.InsertCompound(ctx, store.NewCompound{PdfID: pdf.ID, SMILES: "CCO"})
	if err != nil {
		t.Fatalf("InsertCompound failed: %v", err)
	}

	count, err := st.DeleteCompound(ctx, compound.ID)
	if err != nil {
		t.Fatalf("DeleteCompound failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row deleted, got %d", count)
	}
	if _, err := st.GetCompound(ctx, compound.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	count, err = st.DeleteCompound(ctx, compound.ID)
	if err != nil {
		t.Fatalf("DeleteCompound of missing row failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 rows deleted for missing id, got %d", count)
	}
}
