package repository

import (
	"context"
	"time"

	"gamestudio/website/internal/database"
	"gamestudio/website/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	dayLayout      = "2006-01-02"
	topPagesLimit  = 10
	maxSummaryDays = 90
	maxRecentViews = 200
	defaultDays    = 7
)

// DailyTraffic is one day of the analytics summary.
type DailyTraffic struct {
	Date           string `json:"date"`
	PageViews      int64  `json:"page_views"`
	UniqueSessions int64  `json:"unique_sessions"`
}

// PageCount is a page path with its view count.
type PageCount struct {
	PagePath string `json:"page_path"`
	Views    int64  `json:"views"`
}

// Summary aggregates analytics for the back office dashboard.
type Summary struct {
	Days               []DailyTraffic   `json:"days"`
	TopPages           []PageCount      `json:"top_pages"`
	InteractionsByType map[string]int64 `json:"interactions_by_type"`
	DeviceTypes        map[string]int64 `json:"device_types"`
	TotalPageViews     int64            `json:"total_page_views"`
	TotalSessions      int64            `json:"total_sessions"`
}

// AnalyticsRepository stores tracked events and aggregates them.
type AnalyticsRepository struct {
	conn
	now func() time.Time
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{conn: conn{db}, now: time.Now}
}

func (r *AnalyticsRepository) InsertPageView(ctx context.Context, pv *models.PageView) error {
	q, err := r.with(ctx)
	if err != nil {
		return err
	}
	return database.Classify(q.Create(pv).Error)
}

func (r *AnalyticsRepository) InsertInteraction(ctx context.Context, in *models.UserInteraction) error {
	q, err := r.with(ctx)
	if err != nil {
		return err
	}
	return database.Classify(q.Create(in).Error)
}

// UpsertSession inserts the session row or refreshes its activity counters.
func (r *AnalyticsRepository) UpsertSession(ctx context.Context, s *models.UserSession) error {
	q, err := r.with(ctx)
	if err != nil {
		return err
	}
	err = q.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_activity", "page_views"}),
	}).Create(s).Error
	return database.Classify(err)
}

// RecentPageViews returns the latest page views, newest first.
func (r *AnalyticsRepository) RecentPageViews(ctx context.Context, limit int) ([]models.PageView, error) {
	q, err := r.with(ctx)
	if err != nil {
		return nil, err
	}
	if limit < 1 || limit > maxRecentViews {
		limit = maxRecentViews
	}
	var views []models.PageView
	if err := q.Order("created_at DESC").Limit(limit).Find(&views).Error; err != nil {
		return nil, database.Classify(err)
	}
	return views, nil
}

// Summary builds per-day traffic for the last days days, today included,
// plus totals over the same window.
func (r *AnalyticsRepository) Summary(ctx context.Context, days int) (*Summary, error) {
	q, err := r.with(ctx)
	if err != nil {
		return nil, err
	}
	if days < 1 {
		days = defaultDays
	}
	days = min(days, maxSummaryDays)

	today := r.now().UTC()
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -days+1)

	// 1) Page views and distinct sessions per day.
	type dayRow struct {
		Day      time.Time
		Views    int64
		Sessions int64
	}
	var dayRows []dayRow
	if err := q.Raw(`
        SELECT DATE(created_at) AS day, COUNT(*) AS views, COUNT(DISTINCT session_id) AS sessions
        FROM page_views
        WHERE created_at >= ?
        GROUP BY DATE(created_at)
        ORDER BY day
    `, start).Scan(&dayRows).Error; err != nil {
		return nil, database.Classify(err)
	}
	byDay := make(map[string]dayRow, len(dayRows))
	for _, row := range dayRows {
		byDay[row.Day.Format(dayLayout)] = row
	}

	// 2) Top pages.
	var top []PageCount
	if err := q.Raw(`
        SELECT page_path, COUNT(*) AS views
        FROM page_views
        WHERE created_at >= ?
        GROUP BY page_path
        ORDER BY views DESC, page_path
        LIMIT ?
    `, start, topPagesLimit).Scan(&top).Error; err != nil {
		return nil, database.Classify(err)
	}

	// 3) Interactions by type.
	type kindRow struct {
		Kind string
		Cnt  int64
	}
	var kindRows []kindRow
	if err := q.Raw(`
        SELECT interaction_type AS kind, COUNT(*) AS cnt
        FROM user_interactions
        WHERE created_at >= ?
        GROUP BY interaction_type
    `, start).Scan(&kindRows).Error; err != nil {
		return nil, database.Classify(err)
	}

	// 4) Sessions by device type.
	var deviceRows []kindRow
	if err := q.Raw(`
        SELECT COALESCE(NULLIF(device_type, ''), 'unknown') AS kind, COUNT(*) AS cnt
        FROM user_sessions
        WHERE last_activity >= ?
        GROUP BY 1
    `, start).Scan(&deviceRows).Error; err != nil {
		return nil, database.Classify(err)
	}

	// 5) Distinct sessions over the whole window.
	var sessions int64
	if err := q.Model(&models.PageView{}).Where("created_at >= ?", start).
		Distinct("session_id").Count(&sessions).Error; err != nil {
		return nil, database.Classify(err)
	}

	summary := &Summary{
		Days:               make([]DailyTraffic, 0, days),
		TopPages:           top,
		InteractionsByType: make(map[string]int64, len(kindRows)),
		DeviceTypes:        make(map[string]int64, len(deviceRows)),
		TotalSessions:      sessions,
	}
	for d := 0; d < days; d++ {
		key := start.AddDate(0, 0, d).Format(dayLayout)
		row := byDay[key]
		summary.Days = append(summary.Days, DailyTraffic{Date: key, PageViews: row.Views, UniqueSessions: row.Sessions})
		summary.TotalPageViews += row.Views
	}
	for _, row := range kindRows {
		summary.InteractionsByType[row.Kind] = row.Cnt
	}
	for _, row := range deviceRows {
		summary.DeviceTypes[row.Kind] = row.Cnt
	}
	if summary.TopPages == nil {
		summary.TopPages = []PageCount{}
	}
	return summary, nil
}
