package specification

import "gorm.io/gorm"

// BySaveStatus filters generated artifacts by save-state.
type BySaveStatus struct {
	Saved bool
}

func (s BySaveStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Saved)
}
