package employee

type CreateEmployeeRequest struct {
	NIK           string  `json:"nik" binding:"required"`
	FullName      string  `json:"full_name" binding:"required"`
	Email         string  `json:"email" binding:"required,email"`
	Role          string  `json:"role" binding:"required,oneof=employee manager hr"`
	Category      string  `json:"category" binding:"required,oneof=TEKNISI BACK_OFFICE"`
	WorkPattern   string  `json:"work_pattern" binding:"required,oneof=non-shift 2-shift 3-shift back-office travelling standby"`
	JoinDate      string  `json:"join_date" binding:"required"`
	PermanentDate *string `json:"permanent_date"`
	ManagerID     *string `json:"manager_id"`
	Password      string  `json:"password" binding:"required,min=8"`
}

type UpdateEmployeeRequest struct {
	NIK           string  `json:"nik" binding:"required"`
	FullName      string  `json:"full_name" binding:"required"`
	Email         string  `json:"email" binding:"required,email"`
	Role          string  `json:"role" binding:"required,oneof=employee manager hr"`
	Category      string  `json:"category" binding:"required,oneof=TEKNISI BACK_OFFICE"`
	WorkPattern   string  `json:"work_pattern" binding:"required,oneof=non-shift 2-shift 3-shift back-office travelling standby"`
	JoinDate      string  `json:"join_date" binding:"required"`
	PermanentDate *string `json:"permanent_date"`
	ManagerID     *string `json:"manager_id"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

type EmployeeResponse struct {
	ID            string  `json:"id"`
	NIK           string  `json:"nik"`
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	Role          string  `json:"role"`
	Category      string  `json:"category"`
	WorkPattern   string  `json:"work_pattern"`
	JoinDate      string  `json:"join_date"`
	PermanentDate *string `json:"permanent_date,omitempty"`
	ManagerID     *string `json:"manager_id,omitempty"`
}
