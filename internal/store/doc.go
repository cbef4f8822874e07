// Package store persists Molmine projects, PDF documents, compounds, and
// project settings in a single-file SQLite database. All writes assume a
// single active application instance; consistency for multi-step inserts
// relies on SQLite transactions rather than application locking.
package store
