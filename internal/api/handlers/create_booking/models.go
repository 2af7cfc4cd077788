package create_booking

import (
	"fmt"
	"time"

	createBooking "github.com/m04kA/SMC-HotelBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-HotelBooking/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	StartDate  string `json:"startDate" validate:"required,calendar_date"` // "2025-01-10" или "10-01-2025"
	EndDate    string `json:"endDate" validate:"required,calendar_date"`
	GuestName  string `json:"guestName" validate:"required,max=100"`
	GuestCount int    `json:"guestCount" validate:"min=1"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         string `json:"id"`
	RoomID     string `json:"roomId"`
	UserID     string `json:"userId"`
	RoomTitle  string `json:"roomTitle"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Nights     int    `json:"nights"`
	GuestName  string `json:"guestName"`
	GuestCount int    `json:"guestCount"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
}

// ConflictResponse 409 с периодом, который занимает номер
type ConflictResponse struct {
	Error                string `json:"error"`
	ConflictingStartDate string `json:"conflictingStartDate,omitempty"`
	ConflictingEndDate   string `json:"conflictingEndDate,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID, roomID string) (*createBooking.Request, error) {
	start, err := types.ParseDate(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}

	end, err := types.ParseDate(r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("endDate: %w", err)
	}

	return &createBooking.Request{
		UserID:     userID,
		RoomID:     roomID,
		StartDate:  start,
		EndDate:    end,
		GuestName:  r.GuestName,
		GuestCount: r.GuestCount,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:         resp.ID,
		RoomID:     resp.RoomID,
		UserID:     resp.UserID,
		RoomTitle:  resp.RoomTitle,
		StartDate:  resp.StartDate.String(),
		EndDate:    resp.EndDate.String(),
		Nights:     resp.Nights,
		GuestName:  resp.GuestName,
		GuestCount: resp.GuestCount,
		Status:     resp.Status,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
	}
}
