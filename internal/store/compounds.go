package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const compoundColumns = "id, pdf_id, smiles, inchi, image, chemical_data"

// InsertCompound stores a new compound and returns the fully materialized
// row. The referenced Pdf must exist: the schema declares no foreign key for
// pdf_id, so this lookup is the only referential-integrity check, and it runs
// before the transaction starts so a dangling reference fails with
// ErrNotFound without touching the compounds table.
func (s *Store) InsertCompound(ctx context.Context, nc NewCompound) (*Compound, error) {
	if err := nc.validate(); err != nil {
		return nil, fmt.Errorf("insert compound: %w", err)
	}
	if _, err := getPdf(ctx, s.db, nc.PdfID); err != nil {
		return nil, fmt.Errorf("insert compound: pdf %s: %w", nc.PdfID, err)
	}
	chemicalData := nc.ChemicalData
	if chemicalData == "" {
		chemicalData = "{}"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("insert compound: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(
		ctx,
		`INSERT INTO compounds (pdf_id, smiles, inchi, image, chemical_data) VALUES (?, ?, ?, ?, ?)`,
		nc.PdfID,
		nc.SMILES,
		nc.InChI,
		nc.Image,
		chemicalData,
	)
	if err != nil {
		return nil, fmt.Errorf("insert compound: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert compound: last insert id: %w", err)
	}

	compound, err := getCompound(ctx, tx, CompoundID(id))
	if err != nil {
		return nil, fmt.Errorf("insert compound: refetch: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("insert compound: commit: %w", err)
	}
	return compound, nil
}

// GetCompound fetches a compound by identifier.
func (s *Store) GetCompound(ctx context.Context, id CompoundID) (*Compound, error) {
	compound, err := getCompound(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("get compound %s: %w", id, err)
	}
	return compound, nil
}

// Compounds returns all compounds in insertion order.
func (s *Store) Compounds(ctx context.Context) ([]*Compound, error) {
	return s.queryCompounds(ctx, `SELECT `+compoundColumns+` FROM compounds ORDER BY id`)
}

// CompoundsByPdf returns the compounds extracted from one PDF document.
func (s *Store) CompoundsByPdf(ctx context.Context, pdfID PdfID) ([]*Compound, error) {
	return s.queryCompounds(ctx, `SELECT `+compoundColumns+` FROM compounds WHERE pdf_id = ? ORDER BY id`, pdfID)
}

func (s *Store) queryCompounds(ctx context.Context, query string, args ...any) ([]*Compound, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list compounds: %w", err)
	}
	defer rows.Close()

	var compounds []*Compound
	for rows.Next() {
		compound, err := scanCompound(rows)
		if err != nil {
			return nil, err
		}
		compounds = append(compounds, compound)
	}
	return compounds, rows.Err()
}

// UpdateCompound overwrites all mutable columns of the row matching the
// compound's identifier and returns the updated row.
func (s *Store) UpdateCompound(ctx context.Context, c *Compound) (*Compound, error) {
	if c == nil {
		return nil, errors.New("update compound: compound is nil")
	}
	check := NewCompound{PdfID: c.PdfID, ChemicalData: c.ChemicalData}
	if err := check.validate(); err != nil {
		return nil, fmt.Errorf("update compound: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("update compound: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(
		ctx,
		`UPDATE compounds SET pdf_id = ?, smiles = ?, inchi = ?, image = ?, chemical_data = ? WHERE id = ?`,
		c.PdfID,
		c.SMILES,
		c.InChI,
		c.Image,
		c.ChemicalData,
		c.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update compound: %w", err)
	}

	compound, err := getCompound(ctx, tx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("update compound %s: refetch: %w", c.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update compound: commit: %w", err)
	}
	return compound, nil
}

// DeleteCompound removes a compound by identifier and reports how many rows
// were removed (0 or 1).
func (s *Store) DeleteCompound(ctx context.Context, id CompoundID) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM compounds WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete compound %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete compound %s: rows affected: %w", id, err)
	}
	return affected, nil
}

func getCompound(ctx context.Context, q querier, id CompoundID) (*Compound, error) {
	row := q.QueryRowContext(ctx, `SELECT `+compoundColumns+` FROM compounds WHERE id = ?`, id)
	compound, err := scanCompound(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return compound, nil
}

func scanCompound(sc scanner) (*Compound, error) {
	var compound Compound
	if err := sc.Scan(&compound.ID, &compound.PdfID, &compound.SMILES, &compound.InChI, &compound.Image, &compound.ChemicalData); err != nil {
		return nil, err
	}
	return &compound, nil
}
