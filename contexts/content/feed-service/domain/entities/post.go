package entities

import "time"

// Post is the owned content unit under CRUD control. OwnerID and CreatedAt
// are set at creation and never change; UpdatedAt is bumped on every
// successful mutation.
type Post struct {
	ID        string
	Title     string
	Content   string
	ImagePath string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
