package models

import (
	"time"

	"github.com/m04kA/SMC-HotelBooking/internal/domain"
	"github.com/m04kA/SMC-HotelBooking/pkg/types"
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID      string  `json:"userId"`           // Чьи бронирования
	RequesterID string  `json:"-"`                // Кто запрашивает (X-User-ID)
	Status      *string `json:"status,omitempty"` // upcoming / occupied / past (опционально)
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         string `json:"id"`
	RoomID     string `json:"roomId"`
	UserID     string `json:"userId"`
	RoomTitle  string `json:"roomTitle"`
	StartDate  string `json:"startDate"` // "2025-01-10"
	EndDate    string `json:"endDate"`   // "2025-01-15"
	Nights     int    `json:"nights"`
	GuestName  string `json:"guestName"`
	GuestCount int    `json:"guestCount"`
	Status     string `json:"status"` // upcoming / occupied / past на момент запроса
	CreatedAt  string `json:"createdAt"`
}

// GroupedBookingsResponse бронирования, разбитые по классификации
type GroupedBookingsResponse struct {
	Today    string            `json:"today"`
	Occupied []BookingResponse `json:"occupied"`
	Upcoming []BookingResponse `json:"upcoming"`
	Past     []BookingResponse `json:"past"`
	Total    int               `json:"total"`
}

// OccupancyResponse сводка по номерам администратора на день
type OccupancyResponse struct {
	Date          string `json:"date"`
	OccupiedRooms int    `json:"occupiedRooms"`
	CheckIns      int    `json:"checkIns"`
	CheckOuts     int    `json:"checkOuts"`
	Guests        int    `json:"guests"`
}

// FromDomainOccupancy конвертирует domain.Occupancy
func FromDomainOccupancy(o domain.Occupancy) *OccupancyResponse {
	return &OccupancyResponse{
		Date:          o.Day.String(),
		OccupiedRooms: o.OccupiedRooms,
		CheckIns:      o.CheckIns,
		CheckOuts:     o.CheckOuts,
		Guests:        o.Guests,
	}
}

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking, today types.Date) *BookingResponse {
	return &BookingResponse{
		ID:         b.ID,
		RoomID:     b.RoomID,
		UserID:     b.UserID,
		RoomTitle:  b.RoomTitle,
		StartDate:  b.Range.Start().String(),
		EndDate:    b.Range.End().String(),
		Nights:     b.Range.Nights(),
		GuestName:  b.GuestName,
		GuestCount: b.GuestCount,
		Status:     b.Classify(today).String(),
		CreatedAt:  b.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainGroups конвертирует результат GroupByClassification.
// only != 0 оставляет одну группу, остальные возвращаются пустыми.
func FromDomainGroups(groups map[domain.Classification][]*domain.Booking, today types.Date, only domain.Classification) *GroupedBookingsResponse {
	resp := &GroupedBookingsResponse{
		Today:    today.String(),
		Occupied: make([]BookingResponse, 0),
		Upcoming: make([]BookingResponse, 0),
		Past:     make([]BookingResponse, 0),
	}

	for _, c := range domain.Classifications {
		if only != 0 && c != only {
			continue
		}

		items := make([]BookingResponse, 0, len(groups[c]))
		for _, b := range groups[c] {
			items = append(items, *FromDomainBooking(b, today))
		}

		switch c {
		case domain.Occupied:
			resp.Occupied = items
		case domain.Upcoming:
			resp.Upcoming = items
		case domain.Past:
			resp.Past = items
		}
		resp.Total += len(items)
	}

	return resp
}
