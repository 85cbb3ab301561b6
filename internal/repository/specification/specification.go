package specification

import "gorm.io/gorm"

// Specification is a composable query predicate. Repositories apply each
// one in order to the base query before executing it.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
