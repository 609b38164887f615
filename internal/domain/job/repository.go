package job

import "context"

type Repository interface {
	CreateJob(ctx context.Context, j *Job) (*Job, error)

	UpdateJob(ctx context.Context, j *Job) error

	GetJobMasterByID(ctx context.Context, jobMasterID int64) (*JobMaster, error)

	GetJobMasterByName(ctx context.Context, jobName string) (*JobMaster, error)

	ListJobMasters(ctx context.Context) ([]JobMaster, error)

	// GetJobHistory returns executions for a definition, most recent first.
	GetJobHistory(ctx context.Context, jobMasterID int64) ([]Job, error)

	// GetLastExecution returns apperrors.ErrNotFound when the definition has
	// never run.
	GetLastExecution(ctx context.Context, jobMasterID int64) (*Job, error)
}
