// Command molmine manages research projects, reference PDFs, and the chemical
// compounds extracted from them, backed by an embedded SQLite database and an
// external structure-recognition service.
package main
