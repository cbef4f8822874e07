package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const pdfColumns = "id, title, authors, year, journal, volume, data"

// InsertPdf stores a new PDF document and returns the fully materialized row.
// Insert and re-fetch share one transaction so a failed re-fetch rolls the
// insert back.
func (s *Store) InsertPdf(ctx context.Context, np NewPdf) (*Pdf, error) {
	if err := np.validate(); err != nil {
		return nil, fmt.Errorf("insert pdf: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("insert pdf: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(
		ctx,
		`INSERT INTO pdfs (title, authors, year, journal, volume, data) VALUES (?, ?, ?, ?, ?, ?)`,
		np.Title,
		np.Authors,
		np.Year,
		np.Journal,
		np.Volume,
		np.Data,
	)
	if err != nil {
		return nil, fmt.Errorf("insert pdf: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert pdf: last insert id: %w", err)
	}

	pdf, err := getPdf(ctx, tx, PdfID(id))
	if err != nil {
		return nil, fmt.Errorf("insert pdf: refetch: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("insert pdf: commit: %w", err)
	}
	return pdf, nil
}

// GetPdf fetches a PDF by identifier.
func (s *Store) GetPdf(ctx context.Context, id PdfID) (*Pdf, error) {
	pdf, err := getPdf(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("get pdf %s: %w", id, err)
	}
	return pdf, nil
}

// Pdfs returns all PDF documents in insertion order.
func (s *Store) Pdfs(ctx context.Context) ([]*Pdf, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+pdfColumns+` FROM pdfs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list pdfs: %w", err)
	}
	defer rows.Close()

	var pdfs []*Pdf
	for rows.Next() {
		pdf, err := scanPdf(rows)
		if err != nil {
			return nil, err
		}
		pdfs = append(pdfs, pdf)
	}
	return pdfs, rows.Err()
}

// UpdatePdf overwrites all mutable columns of the row matching the PDF's
// identifier and returns the updated row.
func (s *Store) UpdatePdf(ctx context.Context, p *Pdf) (*Pdf, error) {
	if p == nil {
		return nil, errors.New("update pdf: pdf is nil")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("update pdf: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(
		ctx,
		`UPDATE pdfs SET title = ?, authors = ?, year = ?, journal = ?, volume = ?, data = ? WHERE id = ?`,
		p.Title,
		p.Authors,
		p.Year,
		p.Journal,
		p.Volume,
		p.Data,
		p.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update pdf: %w", err)
	}

	pdf, err := getPdf(ctx, tx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("update pdf %s: refetch: %w", p.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update pdf: commit: %w", err)
	}
	return pdf, nil
}

// DeletePdf removes a PDF by identifier and reports how many rows were
// removed (0 or 1).
func (s *Store) DeletePdf(ctx context.Context, id PdfID) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM pdfs WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete pdf %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete pdf %s: rows affected: %w", id, err)
	}
	return affected, nil
}

func getPdf(ctx context.Context, q querier, id PdfID) (*Pdf, error) {
	row := q.QueryRowContext(ctx, `SELECT `+pdfColumns+` FROM pdfs WHERE id = ?`, id)
	pdf, err := scanPdf(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

func scanPdf(sc scanner) (*Pdf, error) {
	var pdf Pdf
	if err := sc.Scan(&pdf.ID, &pdf.Title, &pdf.Authors, &pdf.Year, &pdf.Journal, &pdf.Volume, &pdf.Data); err != nil {
		return nil, err
	}
	return &pdf, nil
}
