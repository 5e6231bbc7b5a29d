package specification

import "gorm.io/gorm"

// Specification defines the interface for query specifications
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// Noop leaves the query untouched.
type Noop struct{}

func (Noop) Apply(db *gorm.DB) *gorm.DB {
	return db
}
