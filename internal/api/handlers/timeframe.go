package handlers

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// TimeframeBody таймфрейм в теле запроса. Даты в формате YYYY-MM-DD, время HH:MM.
type TimeframeBody struct {
	Title                 string   `json:"title"`
	Kind                  int      `json:"kind"`
	LocationID            *int64   `json:"locationId"`
	ItemID                *int64   `json:"itemId"`
	StartDate             *string  `json:"startDate"`
	EndDate               *string  `json:"endDate"`
	StartTime             *string  `json:"startTime"`
	EndTime               *string  `json:"endTime"`
	Grid                  int      `json:"grid"`
	FullDay               bool     `json:"fullDay"`
	MaxAdvanceBookingDays *int     `json:"maxAdvanceBookingDays"`
	Locked                bool     `json:"locked"`
	AllowedRoles          []string `json:"allowedRoles"`
	UserID                *int64   `json:"userId"`
	Status                *string  `json:"status"`
	BookingCode           *string  `json:"bookingCode"`
}

// ToDomain конвертирует тело запроса в доменный таймфрейм с указанным ID
func (b *TimeframeBody) ToDomain(id int64) (*domain.Timeframe, error) {
	startDate, err := parseBodyDate(b.StartDate)
	if err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}
	endDate, err := parseBodyDate(b.EndDate)
	if err != nil {
		return nil, fmt.Errorf("endDate: %w", err)
	}
	startTime, err := parseBodyTime(b.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}
	endTime, err := parseBodyTime(b.EndTime)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}

	return &domain.Timeframe{
		ID:                    id,
		Title:                 b.Title,
		Kind:                  domain.TimeframeKind(b.Kind),
		LocationID:            b.LocationID,
		ItemID:                b.ItemID,
		StartDate:             startDate,
		EndDate:               endDate,
		StartTime:             startTime,
		EndTime:               endTime,
		Grid:                  domain.GridType(b.Grid),
		FullDay:               b.FullDay,
		MaxAdvanceBookingDays: b.MaxAdvanceBookingDays,
		Locked:                b.Locked,
		AllowedRoles:          b.AllowedRoles,
		UserID:                b.UserID,
		Status:                b.Status,
		BookingCode:           b.BookingCode,
	}, nil
}

// TimeframeResponse таймфрейм в ответе
type TimeframeResponse struct {
	ID                    int64    `json:"id"`
	Title                 string   `json:"title"`
	Kind                  int      `json:"kind"`
	KindName              string   `json:"kindName"`
	LocationID            *int64   `json:"locationId,omitempty"`
	ItemID                *int64   `json:"itemId,omitempty"`
	StartDate             *string  `json:"startDate,omitempty"`
	EndDate               *string  `json:"endDate,omitempty"`
	StartTime             *string  `json:"startTime,omitempty"`
	EndTime               *string  `json:"endTime,omitempty"`
	Grid                  int      `json:"grid"`
	FullDay               bool     `json:"fullDay"`
	MaxAdvanceBookingDays int      `json:"maxAdvanceBookingDays"`
	Locked                bool     `json:"locked"`
	AllowedRoles          []string `json:"allowedRoles,omitempty"`
	Status                *string  `json:"status,omitempty"`
	UpdatedAt             string   `json:"updatedAt"`
}

// FromDomainTimeframe конвертирует доменный таймфрейм в ответ
func FromDomainTimeframe(tf *domain.Timeframe) *TimeframeResponse {
	return &TimeframeResponse{
		ID:                    tf.ID,
		Title:                 tf.Title,
		Kind:                  int(tf.Kind),
		KindName:              tf.Kind.String(),
		LocationID:            tf.LocationID,
		ItemID:                tf.ItemID,
		StartDate:             formatBodyDate(tf.StartDate),
		EndDate:               formatBodyDate(tf.EndDate),
		StartTime:             formatBodyTime(tf.StartTime),
		EndTime:               formatBodyTime(tf.EndTime),
		Grid:                  int(tf.Grid),
		FullDay:               tf.FullDay,
		MaxAdvanceBookingDays: tf.AdvanceBookingDays(),
		Locked:                tf.Locked,
		AllowedRoles:          tf.AllowedRoles,
		Status:                tf.Status,
		UpdatedAt:             tf.UpdatedAt.Format(time.RFC3339),
	}
}

func parseBodyDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	return ParseOptionalDate(*s)
}

func parseBodyTime(s *string) (*types.TimeString, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	ts, err := types.NewTimeStringFromString(*s)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func formatBodyDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateFormat)
	return &s
}

func formatBodyTime(t *types.TimeString) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}
