package services

import (
	"time"

	"saltbay-backend/models"

	"gorm.io/gorm"
)

type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

type RevenueReport struct {
	TotalRevenue float64            `json:"totalRevenue"`
	ByRoomType   map[string]float64 `json:"byRoomType"`
	StartDate    string             `json:"startDate"`
	EndDate      string             `json:"endDate"`
}

// Revenue sums billing records over [start, end] with a per-category
// breakdown. Defaults: start of the current month through now.
func (s *ReportService) Revenue(start, end time.Time) (*RevenueReport, error) {
	nowTime := time.Now()
	if start.IsZero() {
		start = time.Date(nowTime.Year(), nowTime.Month(), 1, 0, 0, 0, 0, nowTime.Location())
	}
	if end.IsZero() {
		end = nowTime
	}

	var billings []models.BillingRecord
	err := s.DB.Preload("Reservation.RoomCategory").
		Where("created_at >= ? AND created_at <= ?", start, end).
		Find(&billings).Error
	if err != nil {
		return nil, err
	}

	report := &RevenueReport{
		ByRoomType: map[string]float64{},
		StartDate:  start.Format("2006-01-02"),
		EndDate:    end.Format("2006-01-02"),
	}
	for _, billing := range billings {
		report.TotalRevenue += billing.Amount
		name := billing.Reservation.RoomCategory.Name
		if name == "" {
			name = "Unknown"
		}
		report.ByRoomType[name] += billing.Amount
	}
	return report, nil
}

type OccupancyReport struct {
	Date          string         `json:"date"`
	TotalRooms    int64          `json:"totalRooms"`
	ByStatus      map[string]int `json:"byStatus"`
	OccupancyRate float64        `json:"occupancyRate"`
}

// Occupancy is a point-in-time snapshot of room statuses.
func (s *ReportService) Occupancy() (*OccupancyReport, error) {
	type statusCount struct {
		Status models.RoomStatus
		Count  int
	}
	var counts []statusCount
	err := s.DB.Model(&models.Room{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	report := &OccupancyReport{
		Date:     time.Now().Format("2006-01-02"),
		ByStatus: map[string]int{},
	}
	occupied := 0
	for _, c := range counts {
		report.ByStatus[c.Status.String()] = c.Count
		report.TotalRooms += int64(c.Count)
		if c.Status == models.RoomOccupied || c.Status == models.RoomReserved {
			occupied += c.Count
		}
	}
	if report.TotalRooms > 0 {
		report.OccupancyRate = float64(occupied) / float64(report.TotalRooms)
	}
	return report, nil
}
