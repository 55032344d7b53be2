package models

import "time"

// Tag is a free-form label attached to articles through NewsTag rows.
type Tag struct {
	ID        int64      `json:"tagId"`
	Name      string     `json:"tagName"`
	Note      *string    `json:"note"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
	DeletedAt *time.Time `json:"-"`
	IsDeleted bool       `json:"-"`
}
