// Package catalog implements the ingredient and dish catalog: CRUD over the
// entities, the reconciliation engine that keeps a dish's ingredient
// associations in sync with a submitted row set, and the referential guard
// that blocks deletion of ingredients still used by dishes.
package catalog

import (
	"gorm.io/gorm"
)

// Options tunes service behavior.
type Options struct {
	// LenientRows restores the legacy reconciliation behavior of silently
	// skipping rows whose ingredient id does not resolve. The default is
	// strict: an unknown ingredient aborts the whole reconciliation.
	LenientRows bool
}

// Service exposes the catalog operations over a gorm database.
type Service struct {
	db      *gorm.DB
	lenient bool
}

// New builds a Service bound to the given database handle.
func New(db *gorm.DB, opts Options) *Service {
	return &Service{
		db:      db,
		lenient: opts.LenientRows,
	}
}
