package service

import (
	"context"
	"encoding/json"
	"time"

	"schedly/cmd/internal/domain/entity"
	"schedly/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
)

const (
	summaryCacheKey = "dashboard:summary"
	summaryCacheTTL = 30 * time.Second
)

type Counter interface {
	CountAll() (int64, error)
}

type StatusCounter interface {
	Counter
	CountByStatus() (map[entity.Status]int64, error)
}

type Summary struct {
	Registrants  int64            `json:"registrants"`
	Appointments int64            `json:"appointments"`
	Employees    int64            `json:"employees"`
	ByStatus     map[string]int64 `json:"appointments_by_status"`
}

// DefaultDashboardService aggregates store counts. When a Redis client is
// configured the summary is cached briefly; cache failures fall back to
// direct queries.
type DefaultDashboardService struct {
	AppointmentCounts StatusCounter
	RegistrantCounts  Counter
	EmployeeCounts    Counter
	Cache             *redis.Client
}

func NewDashboardService(apptCounts StatusCounter, registrantCounts, employeeCounts Counter, cache *redis.Client) *DefaultDashboardService {
	return &DefaultDashboardService{
		AppointmentCounts: apptCounts,
		RegistrantCounts:  registrantCounts,
		EmployeeCounts:    employeeCounts,
		Cache:             cache,
	}
}

func (d *DefaultDashboardService) GetSummary(ctx context.Context) (*Summary, apierror.ErrorResponse) {
	if cached := d.fromCache(ctx); cached != nil {
		return cached, nil
	}

	registrants, err := d.RegistrantCounts.CountAll()
	if err != nil {
		log.Errorf("failed to count registrants: %v", err)
		return nil, apierror.InternalServerError
	}
	appointments, err := d.AppointmentCounts.CountAll()
	if err != nil {
		log.Errorf("failed to count appointments: %v", err)
		return nil, apierror.InternalServerError
	}
	employees, err := d.EmployeeCounts.CountAll()
	if err != nil {
		log.Errorf("failed to count employees: %v", err)
		return nil, apierror.InternalServerError
	}
	byStatus, err := d.AppointmentCounts.CountByStatus()
	if err != nil {
		log.Errorf("failed to count appointments by status: %v", err)
		return nil, apierror.InternalServerError
	}

	summary := &Summary{
		Registrants:  registrants,
		Appointments: appointments,
		Employees:    employees,
		ByStatus:     make(map[string]int64, len(byStatus)),
	}
	for status, n := range byStatus {
		summary.ByStatus[string(status)] = n
	}

	d.toCache(ctx, summary)
	return summary, nil
}

func (d *DefaultDashboardService) fromCache(ctx context.Context) *Summary {
	if d.Cache == nil {
		return nil
	}

	raw, err := d.Cache.Get(ctx, summaryCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warnf("dashboard cache read failed: %v", err)
		}
		return nil
	}

	var summary Summary
	if err := json.Unmarshal(raw, &summary); err != nil {
		log.Warnf("dashboard cache entry corrupt: %v", err)
		return nil
	}
	return &summary
}

func (d *DefaultDashboardService) toCache(ctx context.Context, summary *Summary) {
	if d.Cache == nil {
		return
	}

	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := d.Cache.Set(ctx, summaryCacheKey, raw, summaryCacheTTL).Err(); err != nil {
		log.Warnf("dashboard cache write failed: %v", err)
	}
}
