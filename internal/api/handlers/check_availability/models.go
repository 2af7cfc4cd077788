package check_availability

import (
	checkAvailability "github.com/m04kA/SMC-HotelBooking/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	RoomID               string `json:"roomId"`
	StartDate            string `json:"startDate"`
	EndDate              string `json:"endDate"`
	Nights               int    `json:"nights"`
	Available            bool   `json:"available"`
	ConflictingStartDate string `json:"conflictingStartDate,omitempty"`
	ConflictingEndDate   string `json:"conflictingEndDate,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		RoomID:    resp.RoomID,
		StartDate: resp.Range.Start().String(),
		EndDate:   resp.Range.End().String(),
		Nights:    resp.Range.Nights(),
		Available: resp.Available,
	}
	if resp.Conflicting != nil {
		out.ConflictingStartDate = resp.Conflicting.Start().String()
		out.ConflictingEndDate = resp.Conflicting.End().String()
	}
	return out
}
