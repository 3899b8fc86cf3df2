package changeoff

// SubmitClaimRequest covers both single-day and date-range submissions:
// leaving end_date empty claims start_date only. The attachment travels as a
// separate multipart part.
type SubmitClaimRequest struct {
	StartDate   string `form:"start_date" binding:"required"`
	EndDate     string `form:"end_date"`
	StartTime   string `form:"start_time" binding:"required"`
	EndTime     string `form:"end_time" binding:"required"`
	Travelling  bool   `form:"travelling"`
	Standby     bool   `form:"standby"`
	Description string `form:"description" binding:"required"`
}

type RejectClaimRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ClaimResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	Category       string  `json:"category"`
	WorkPattern    string  `json:"work_pattern"`
	WorkDate       string  `json:"work_date"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	Hours          float64 `json:"hours"`
	Travelling     bool    `json:"travelling"`
	Standby        bool    `json:"standby"`
	Classification string  `json:"classification"`
	DayValue       float64 `json:"day_value"`
	Description    string  `json:"description"`
	AttachmentPath *string `json:"attachment_path,omitempty"`
	Status         string  `json:"status"`
	RejectReason   *string `json:"reject_reason,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

type SubmitClaimResponse struct {
	Claims     []ClaimResponse `json:"claims"`
	TotalValue float64         `json:"total_value"`
}
