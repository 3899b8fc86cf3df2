package ledger

type BalanceResponse struct {
	EmployeeID  string  `json:"employee_id"`
	LastYear    int     `json:"last_year"`
	CurrentYear int     `json:"current_year"`
	ChangeOff   float64 `json:"change_off"`
	SickNoDoc   int     `json:"sick_no_doc"`
}

type OverwriteBalanceRequest struct {
	LastYear    int     `json:"last_year" binding:"min=0"`
	CurrentYear int     `json:"current_year" binding:"min=0"`
	ChangeOff   float64 `json:"change_off" binding:"min=0"`
	SickNoDoc   int     `json:"sick_no_doc" binding:"min=0,max=6"`
}
