package store

import (
	"fmt"
	"strconv"
)

// Identifier types are distinct named types so a PdfID cannot be passed where
// a CompoundID is expected. Each wraps the 32-bit integer SQLite assigns on
// insert and exposes no arithmetic.
type (
	// ProjectID identifies a row in the projects table.
	ProjectID int32
	// PdfID identifies a row in the pdfs table.
	PdfID int32
	// CompoundID identifies a row in the compounds table.
	CompoundID int32
)

func (id ProjectID) String() string  { return strconv.FormatInt(int64(id), 10) }
func (id PdfID) String() string      { return strconv.FormatInt(int64(id), 10) }
func (id CompoundID) String() string { return strconv.FormatInt(int64(id), 10) }

// ParseProjectID parses a decimal project identifier.
func ParseProjectID(value string) (ProjectID, error) {
	id, err := parseID(value)
	return ProjectID(id), err
}

// ParsePdfID parses a decimal PDF identifier.
func ParsePdfID(value string) (PdfID, error) {
	id, err := parseID(value)
	return PdfID(id), err
}

// ParseCompoundID parses a decimal compound identifier.
func ParseCompoundID(value string) (CompoundID, error) {
	id, err := parseID(value)
	return CompoundID(id), err
}

func parseID(value string) (int32, error) {
	id, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse id %q: %w", value, err)
	}
	return int32(id), nil
}
