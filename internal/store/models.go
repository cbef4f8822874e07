package store

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Project is a research project with a filesystem location and a JSON
// document describing its custom field schema.
type Project struct {
	ID        ProjectID `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
	Fields    string    `json:"fields"`
}

// NewProject carries the caller-supplied values for a project insert. The
// identifier is database-assigned. A zero CreatedAt is filled with the
// current time at insert; an empty Fields document defaults to "[]".
type NewProject struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
	Fields    string    `json:"fields"`
}

func (p *NewProject) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("project name required")
	}
	if p.Fields != "" && !json.Valid([]byte(p.Fields)) {
		return errors.New("project fields must be valid JSON")
	}
	return nil
}

// Pdf is a stored document with bibliographic metadata and the raw binary
// content of the file.
type Pdf struct {
	ID      PdfID  `json:"id"`
	Title   string `json:"title"`
	Authors string `json:"authors"`
	Year    int    `json:"year"`
	Journal string `json:"journal"`
	Volume  string `json:"volume"`
	Data    []byte `json:"data"`
}

// NewPdf carries the caller-supplied values for a PDF insert.
type NewPdf struct {
	Title   string `json:"title"`
	Authors string `json:"authors"`
	Year    int    `json:"year"`
	Journal string `json:"journal"`
	Volume  string `json:"volume"`
	Data    []byte `json:"data"`
}

func (p *NewPdf) validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return errors.New("pdf title required")
	}
	return nil
}

// Compound is a chemical structure extracted from a PDF. Image holds a
// rendered structure reference (file path or data URI); ChemicalData is an
// opaque JSON object of arbitrary chemical properties.
type Compound struct {
	ID           CompoundID `json:"id"`
	PdfID        PdfID      `json:"pdf_id"`
	SMILES       string     `json:"smiles"`
	InChI        string     `json:"inchi"`
	Image        string     `json:"image"`
	ChemicalData string     `json:"chemical_data"`
}

// NewCompound carries the caller-supplied values for a compound insert.
// PdfID must reference an existing Pdf; an empty ChemicalData document
// defaults to "{}".
type NewCompound struct {
	PdfID        PdfID  `json:"pdf_id"`
	SMILES       string `json:"smiles"`
	InChI        string `json:"inchi"`
	Image        string `json:"image"`
	ChemicalData string `json:"chemical_data"`
}

func (c *NewCompound) validate() error {
	if c.PdfID == 0 {
		return errors.New("compound pdf id required")
	}
	if c.ChemicalData != "" && !json.Valid([]byte(c.ChemicalData)) {
		return errors.New("compound chemical data must be valid JSON")
	}
	return nil
}

// ProjectData is one key/value settings row scoped to the store.
type ProjectData struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ActiveProjectKey is the settings key holding the active project identifier.
const ActiveProjectKey = "active_project"
