package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/muhsinkalodi/qmexai-ecom/internal/model"
)

// ReportService aggregates orders into summary statistics. Read-only.
type ReportService struct {
	db *gorm.DB
}

// NewReportService creates a ReportService backed by db
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// RevenueStats summarizes the full order set
type RevenueStats struct {
	TotalSales   float64        `json:"total_sales"`
	OrderCount   int64          `json:"order_count"`
	StatusCounts map[string]int `json:"status_counts"`
}

// Stats scans the full order set: total sales, order count and a histogram
// of the status values present. An empty order set yields zero values and
// an empty histogram.
func (s *ReportService) Stats(ctx context.Context) (*RevenueStats, error) {
	db := s.db.WithContext(ctx)

	var totalSales float64
	err := db.Model(&model.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalSales).Error
	if err != nil {
		return nil, storagef("sales sum", err)
	}

	var orderCount int64
	if err := db.Model(&model.Order{}).Count(&orderCount).Error; err != nil {
		return nil, storagef("order count", err)
	}

	type statusRow struct {
		Status string
		Count  int
	}
	var rows []statusRow
	err = db.Model(&model.Order{}).
		Select("status, COUNT(id) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, storagef("status histogram", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return &RevenueStats{
		TotalSales:   totalSales,
		OrderCount:   orderCount,
		StatusCounts: counts,
	}, nil
}
