// Package chemistry talks to the external structure-recognition service.
// The service validates SMILES strings, recognizes chemical structures in
// images, and converts molfiles; Molmine only forwards requests and stores
// what comes back.
package chemistry
