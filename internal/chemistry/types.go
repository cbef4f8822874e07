package chemistry

import "encoding/json"

// Structure is the recognition service response. The typed fields cover the
// documented shape; Raw retains the body byte-for-byte so callers that treat
// the response opaquely see exactly what the service sent.
type Structure struct {
	Valid          *bool  `json:"valid,omitempty"`
	SMILES         string `json:"smiles"`
	InChI          string `json:"inchi"`
	StructureImage string `json:"structure_image"`
	Molblock       string `json:"molblock"`
	Error          string `json:"error,omitempty"`

	Raw json.RawMessage `json:"-"`
}
