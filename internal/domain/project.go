package domain

import "time"

// Project represents a portfolio entry owned by exactly one user. The owner
// is fixed at creation and never reassigned. DeletedAt == nil means the
// project is active; a non-nil value marks it soft-deleted and restorable
// until it is permanently removed.
type Project struct {
	ID           int64      `json:"id" db:"id"`
	OwnerID      int64      `json:"owner_id" db:"owner_id"`
	ProjectName  string     `json:"project_name" db:"project_name"`
	StartDate    *time.Time `json:"start_date,omitempty" db:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty" db:"end_date"`
	Description  *string    `json:"description,omitempty" db:"description"`
	Technologies []string   `json:"technologies"`
	Image        *string    `json:"image,omitempty"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// Deleted reports whether the project is soft-deleted.
func (p Project) Deleted() bool {
	return p.DeletedAt != nil
}
