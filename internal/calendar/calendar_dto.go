package calendar

type CreateHolidayRequest struct {
	HolidayDate string `json:"holiday_date" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type UpdateHolidayRequest struct {
	Description string `json:"description" binding:"required"`
}

type HolidayResponse struct {
	ID          string `json:"id"`
	HolidayDate string `json:"holiday_date"`
	Description string `json:"description"`
}
