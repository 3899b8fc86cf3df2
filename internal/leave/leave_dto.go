package leave

type CreateLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required,oneof=PERSONAL CHANGE_OFF SICK_NO_DOC"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	HalfDay   bool   `json:"half_day"`
	Reason    string `json:"reason" binding:"required"`
}

type RejectLeaveRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type LeaveResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	LeaveType    string  `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	HalfDay      bool    `json:"half_day"`
	TotalDays    float64 `json:"total_days"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	RejectReason *string `json:"reject_reason,omitempty"`
	CreatedAt    string  `json:"created_at"`

	// BalanceWarning is advisory only: the request still goes through and the
	// authoritative check happens at HR approval.
	BalanceWarning string `json:"balance_warning,omitempty"`
}
