// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Category groups news articles. Categories form a tree through
// ParentID; only direct self-reference is rejected.
type Category struct {
	ID          int64      `json:"categoryId"`
	Name        string     `json:"categoryName"`
	Description *string    `json:"categoryDescription"`
	ParentID    *int64     `json:"parentCategoryId"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
	DeletedAt   *time.Time `json:"-"`
	IsDeleted   bool       `json:"-"`
}
