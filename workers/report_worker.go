package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"growth-garden-system/models"
	"growth-garden-system/services"
	"growth-garden-system/utils"

	"gorm.io/gorm"
)

// ReportExporter renders weekly progress reports for recently-active children
// and pushes them to R2 for the parent dashboard CDN.
type ReportExporter struct {
	DB        *gorm.DB
	Analytics *services.AnalyticsService
}

func NewReportExporter(db *gorm.DB, analytics *services.AnalyticsService) *ReportExporter {
	return &ReportExporter{DB: db, Analytics: analytics}
}

// ChildReport is the JSON document uploaded per child.
type ChildReport struct {
	ChildID          string                `json:"child_id"`
	Name             string                `json:"name"`
	GrowthMeterLevel int                   `json:"growth_meter_level"`
	TotalPoints      int64                 `json:"total_points"`
	Weekly           *services.WeeklyStats `json:"weekly"`
	Performance      []PerformanceEntry    `json:"performance"`
	GeneratedAt      time.Time             `json:"generated_at"`
}

// PerformanceEntry pairs a per-game summary with its dashboard display name.
type PerformanceEntry struct {
	services.GameTypeSummary
	DisplayName string `json:"display_name"`
}

// Run polls on an interval until ctx is cancelled.
func (e *ReportExporter) Run(ctx context.Context, interval time.Duration) {
	log.Println("Starting progress report exporter...")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Progress report exporter stopped.")
			return
		case <-ticker.C:
			if err := e.ExportActiveChildren(ctx); err != nil {
				log.Printf("❌ Report export failed: %v", err)
			}
		}
	}
}

// ExportActiveChildren uploads a fresh report for every child active in the
// last 7 days.
func (e *ReportExporter) ExportActiveChildren(ctx context.Context) error {
	since := time.Now().UTC().AddDate(0, 0, -7)

	var children []models.Child
	if err := e.DB.Where("last_activity >= ?", since).Find(&children).Error; err != nil {
		return fmt.Errorf("failed to list active children: %w", err)
	}

	if len(children) == 0 {
		return nil
	}

	exported := 0
	for i := range children {
		report, err := e.BuildReport(&children[i])
		if err != nil {
			log.Printf("❌ Report build failed for child %s: %v", children[i].ID, err)
			continue
		}

		payload, err := json.Marshal(report)
		if err != nil {
			log.Printf("❌ Report marshal failed for child %s: %v", children[i].ID, err)
			continue
		}

		key := fmt.Sprintf("reports/%s/weekly.json", children[i].ID)
		url, err := utils.UploadBytesToR2(ctx, payload, key, "application/json")
		if err != nil {
			log.Printf("❌ Report upload failed for child %s: %v", children[i].ID, err)
			continue
		}

		exported++
		log.Printf("📊 Weekly report exported: child=%s → %s", children[i].ID, url)
	}

	log.Printf("📊 Report export pass done: %d/%d children", exported, len(children))
	return nil
}

// BuildReport assembles the report document from the analytics read side.
func (e *ReportExporter) BuildReport(child *models.Child) (*ChildReport, error) {
	weekly, err := e.Analytics.WeeklyStats(child.ID)
	if err != nil {
		return nil, err
	}

	summary, err := e.Analytics.PerformanceSummary(child.ID)
	if err != nil {
		return nil, err
	}

	performance := make([]PerformanceEntry, len(summary))
	for i, s := range summary {
		performance[i] = PerformanceEntry{
			GameTypeSummary: s,
			DisplayName:     utils.DisplayTitle(s.GameType),
		}
	}

	return &ChildReport{
		ChildID:          child.ID,
		Name:             child.Name,
		GrowthMeterLevel: child.GrowthMeterLevel,
		TotalPoints:      child.TotalPoints,
		Weekly:           weekly,
		Performance:      performance,
		GeneratedAt:      time.Now().UTC(),
	}, nil
}
