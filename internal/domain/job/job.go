package job

import "time"

type ExecutionMode string

const (
	ModeManual    ExecutionMode = "MANUAL"
	ModeAutomatic ExecutionMode = "AUTOMATIC"
)

type Status string

const (
	StatusRunning   Status = "RUNNING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusSkipped   Status = "SKIPPED"
)

// JobNameLoanBilling is the seeded job definition dispatched to the billing
// sweep engine.
const JobNameLoanBilling = "LOAN_BILLING"

// Job is one execution audit record. It is created RUNNING when a sweep
// starts and finalized exactly once; it is never deleted.
type Job struct {
	SeqNo         int64
	JobMasterID   *int64
	JobType       string
	ExecutionMode ExecutionMode
	Status        Status
	ProcessedDate time.Time
	StartTime     time.Time
	EndTime       *time.Time
	Remarks       string
}

// JobMaster is a job definition: what to run and on which cron schedule.
type JobMaster struct {
	JobID          int64
	JobName        string
	Description    string
	CronExpression string
	Active         bool
}

// JobDefinition is a JobMaster decorated with its most recent execution.
type JobDefinition struct {
	JobMaster
	LastStatus  string
	LastRunTime *time.Time
}
