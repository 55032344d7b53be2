package models

import "time"

// DateCount is a per-day article count.
type DateCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// NewsStatistics summarises articles created in a date range.
type NewsStatistics struct {
	StartDate    time.Time   `json:"startDate"`
	EndDate      time.Time   `json:"endDate"`
	TotalNews    int         `json:"totalNews"`
	ActiveNews   int         `json:"activeNews"`
	InactiveNews int         `json:"inactiveNews"`
	NewsByDate   []DateCount `json:"newsByDate"`
}

// ArticleSummary is the compact article projection used inside reports.
type ArticleSummary struct {
	NewsArticleID int64     `json:"newsArticleId"`
	NewsTitle     string    `json:"newsTitle"`
	NewsStatus    string    `json:"newsStatus"`
	CreatedAt     time.Time `json:"createdAt"`
}

// StaffDayReport groups the articles created on one day.
type StaffDayReport struct {
	Date         time.Time        `json:"date"`
	Count        int              `json:"count"`
	NewsArticles []ArticleSummary `json:"newsArticles"`
}

// CategoryReport counts articles per category.
type CategoryReport struct {
	CategoryID    int64  `json:"categoryId"`
	CategoryName  string `json:"categoryName"`
	Count         int    `json:"count"`
	ActiveCount   int    `json:"activeCount"`
	InactiveCount int    `json:"inactiveCount"`
}

// AuthorDayReport is one row of the top-authors report. Rows are keyed by
// creation day rather than by author.
type AuthorDayReport struct {
	Date       time.Time `json:"date"`
	TotalNews  int       `json:"totalNews"`
	ActiveNews int       `json:"activeNews"`
}
