// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"
)

// StatusActive is the status value that marks an article as published.
// Comparison is case-insensitive; any other value counts as inactive.
const StatusActive = "active"

// NewsArticle is a news item owned by a category and authored by an account.
type NewsArticle struct {
	ID         int64      `json:"newsArticleId"`
	Title      string     `json:"newsTitle"`
	Headline   *string    `json:"headline"`
	Content    string     `json:"newsContent"`
	Source     *string    `json:"newsSource"`
	Status     string     `json:"newsStatus"`
	CategoryID int64      `json:"categoryId"`
	CreatedBy  int64      `json:"createdBy"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt"`
	DeletedAt  *time.Time `json:"-"`
	IsDeleted  bool       `json:"-"`

	// Virtual fields populated by store joins.
	CategoryName  *string `json:"categoryName"`
	CreatedByName *string `json:"createdByName"`
	Tags          []Tag   `json:"tags"`
}

// IsActive reports whether the article status equals "active", ignoring case.
func (n *NewsArticle) IsActive() bool {
	return IsActiveStatus(n.Status)
}

// IsActiveStatus applies the article status rule to a raw value.
func IsActiveStatus(status string) bool {
	return strings.EqualFold(status, StatusActive)
}

// NewsTag links an article to a tag.
type NewsTag struct {
	NewsArticleID int64 `json:"newsArticleId"`
	TagID         int64 `json:"tagId"`
}
