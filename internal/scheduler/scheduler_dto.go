package scheduler

// TriggerRolloverRequest is the manual disaster-recovery trigger: HR must
// type the acknowledgment word so a stray click cannot wipe last-year
// balances.
type TriggerRolloverRequest struct {
	Acknowledge string `json:"acknowledge" binding:"required,eq=ROLLOVER"`
}

type JobExecutionResponse struct {
	ID         string  `json:"id"`
	JobName    string  `json:"job_name"`
	PeriodKey  string  `json:"period_key"`
	ExecutedAt string  `json:"executed_at"`
	ExecutedBy *string `json:"executed_by,omitempty"`
}
