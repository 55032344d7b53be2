package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"funews/internal/models"
	"funews/internal/store"
)

// ReportService aggregates live articles created in a date range.
type ReportService struct {
	uow store.UnitOfWork
}

// NewReportService creates a ReportService.
func NewReportService(uow store.UnitOfWork) *ReportService {
	return &ReportService{uow: uow}
}

func (s *ReportService) load(ctx context.Context, from, to time.Time) ([]models.NewsArticle, error) {
	if from.After(to) {
		return nil, invalid(MsgDateRangeInverted)
	}
	items, err := s.uow.Articles().List(ctx, store.ArticleFilter{From: &from, To: &to})
	if err != nil {
		return nil, fmt.Errorf("load report articles: %w", err)
	}
	return items, nil
}

// day truncates t to midnight UTC.
func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Statistics counts articles by status and by creation day, newest day
// first.
func (s *ReportService) Statistics(ctx context.Context, from, to time.Time) (*models.NewsStatistics, error) {
	items, err := s.load(ctx, from, to)
	if err != nil {
		return nil, err
	}

	stats := &models.NewsStatistics{
		StartDate:  from,
		EndDate:    to,
		TotalNews:  len(items),
		NewsByDate: []models.DateCount{},
	}

	byDay := map[time.Time]int{}
	for i := range items {
		if items[i].IsActive() {
			stats.ActiveNews++
		} else {
			stats.InactiveNews++
		}
		byDay[day(items[i].CreatedAt)]++
	}

	for d, n := range byDay {
		stats.NewsByDate = append(stats.NewsByDate, models.DateCount{Date: d, Count: n})
	}
	sort.Slice(stats.NewsByDate, func(i, j int) bool {
		return stats.NewsByDate[i].Date.After(stats.NewsByDate[j].Date)
	})
	return stats, nil
}

// NewsByStaff groups articles by creation day, newest day first. Articles
// within a day keep the store order.
func (s *ReportService) NewsByStaff(ctx context.Context, from, to time.Time) ([]models.StaffDayReport, error) {
	items, err := s.load(ctx, from, to)
	if err != nil {
		return nil, err
	}

	index := map[time.Time]int{}
	report := []models.StaffDayReport{}
	for i := range items {
		n := &items[i]
		d := day(n.CreatedAt)
		pos, ok := index[d]
		if !ok {
			pos = len(report)
			index[d] = pos
			report = append(report, models.StaffDayReport{Date: d, NewsArticles: []models.ArticleSummary{}})
		}
		report[pos].Count++
		report[pos].NewsArticles = append(report[pos].NewsArticles, models.ArticleSummary{
			NewsArticleID: n.ID,
			NewsTitle:     n.Title,
			NewsStatus:    n.Status,
			CreatedAt:     n.CreatedAt,
		})
	}

	sort.SliceStable(report, func(i, j int) bool {
		return report[i].Date.After(report[j].Date)
	})
	return report, nil
}

// NewsByCategory counts articles per category, largest first. Ties are
// ordered by category id.
func (s *ReportService) NewsByCategory(ctx context.Context, from, to time.Time) ([]models.CategoryReport, error) {
	items, err := s.load(ctx, from, to)
	if err != nil {
		return nil, err
	}

	index := map[int64]int{}
	report := []models.CategoryReport{}
	for i := range items {
		n := &items[i]
		pos, ok := index[n.CategoryID]
		if !ok {
			pos = len(report)
			index[n.CategoryID] = pos
			name := ""
			if n.CategoryName != nil {
				name = *n.CategoryName
			}
			report = append(report, models.CategoryReport{CategoryID: n.CategoryID, CategoryName: name})
		}
		report[pos].Count++
		if n.IsActive() {
			report[pos].ActiveCount++
		} else {
			report[pos].InactiveCount++
		}
	}

	sort.Slice(report, func(i, j int) bool {
		if report[i].Count != report[j].Count {
			return report[i].Count > report[j].Count
		}
		return report[i].CategoryID < report[j].CategoryID
	})
	return report, nil
}

// TopAuthors counts articles per creation day, busiest day first. Ties are
// ordered newest day first. Rows are keyed by day, not by author.
func (s *ReportService) TopAuthors(ctx context.Context, from, to time.Time) ([]models.AuthorDayReport, error) {
	items, err := s.load(ctx, from, to)
	if err != nil {
		return nil, err
	}

	index := map[time.Time]int{}
	report := []models.AuthorDayReport{}
	for i := range items {
		d := day(items[i].CreatedAt)
		pos, ok := index[d]
		if !ok {
			pos = len(report)
			index[d] = pos
			report = append(report, models.AuthorDayReport{Date: d})
		}
		report[pos].TotalNews++
		if items[i].IsActive() {
			report[pos].ActiveNews++
		}
	}

	sort.Slice(report, func(i, j int) bool {
		if report[i].TotalNews != report[j].TotalNews {
			return report[i].TotalNews > report[j].TotalNews
		}
		return report[i].Date.After(report[j].Date)
	})
	return report, nil
}
