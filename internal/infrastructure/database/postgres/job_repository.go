package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"lending-engine/internal/domain/job"
	"lending-engine/internal/pkg/apperrors"
)

const jobColumns = `seq_no, job_master_id, job_type, execution_mode, status,
	processed_date, start_time, end_time, remarks`

const jobMasterColumns = `job_id, job_name, description, cron_expression, active`

type JobRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ job.Repository = (*JobRepository)(nil)

func NewJobRepository(db DBPool, logger *slog.Logger) *JobRepository {
	if db == nil {
		panic("JobRepository: db pool cannot be nil")
	}
	return &JobRepository{db: db, logger: logger.With("component", "JobRepository")}
}

func (r *JobRepository) CreateJob(ctx context.Context, j *job.Job) (*job.Job, error) {
	query := `
		INSERT INTO jobs (job_master_id, job_type, execution_mode, status,
			processed_date, start_time, remarks)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING seq_no`

	start := time.Now()
	err := r.db.QueryRow(ctx, query,
		j.JobMasterID, j.JobType, j.ExecutionMode, j.Status,
		j.ProcessedDate, j.StartTime, j.Remarks,
	).Scan(&j.SeqNo)
	track("create_job", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert job execution", "jobType", j.JobType, "error", err)
		return nil, translateDBError(err, "jobs")
	}
	return j, nil
}

func (r *JobRepository) UpdateJob(ctx context.Context, j *job.Job) error {
	query := `
		UPDATE jobs
		SET status = $2, end_time = $3, remarks = $4
		WHERE seq_no = $1`

	start := time.Now()
	tag, err := r.db.Exec(ctx, query, j.SeqNo, j.Status, j.EndTime, j.Remarks)
	track("update_job", start, err)
	if err != nil {
		return translateDBError(err, "jobs")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: job execution %d", apperrors.ErrNotFound, j.SeqNo)
	}
	return nil
}

func (r *JobRepository) GetJobMasterByID(ctx context.Context, jobMasterID int64) (*job.JobMaster, error) {
	query := fmt.Sprintf(`SELECT %s FROM job_master WHERE job_id = $1`, jobMasterColumns)

	start := time.Now()
	m, err := scanJobMaster(r.db.QueryRow(ctx, query, jobMasterID))
	track("get_job_master_by_id", start, err)
	if err != nil {
		return nil, translateDBError(err, "job_master")
	}
	return m, nil
}

func (r *JobRepository) GetJobMasterByName(ctx context.Context, jobName string) (*job.JobMaster, error) {
	query := fmt.Sprintf(`SELECT %s FROM job_master WHERE job_name = $1`, jobMasterColumns)

	start := time.Now()
	m, err := scanJobMaster(r.db.QueryRow(ctx, query, jobName))
	track("get_job_master_by_name", start, err)
	if err != nil {
		return nil, translateDBError(err, "job_master")
	}
	return m, nil
}

func (r *JobRepository) ListJobMasters(ctx context.Context) ([]job.JobMaster, error) {
	query := fmt.Sprintf(`SELECT %s FROM job_master ORDER BY job_id`, jobMasterColumns)

	start := time.Now()
	rows, err := r.db.Query(ctx, query)
	track("list_job_masters", start, err)
	if err != nil {
		return nil, translateDBError(err, "job_master")
	}
	defer rows.Close()

	var masters []job.JobMaster
	for rows.Next() {
		m, err := scanJobMaster(rows)
		if err != nil {
			return nil, translateDBError(err, "job_master")
		}
		masters = append(masters, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, translateDBError(err, "job_master")
	}
	return masters, nil
}

func (r *JobRepository) GetJobHistory(ctx context.Context, jobMasterID int64) ([]job.Job, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM jobs WHERE job_master_id = $1 ORDER BY start_time DESC, seq_no DESC`, jobColumns)

	start := time.Now()
	rows, err := r.db.Query(ctx, query, jobMasterID)
	track("get_job_history", start, err)
	if err != nil {
		return nil, translateDBError(err, "jobs")
	}
	defer rows.Close()

	var history []job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, translateDBError(err, "jobs")
		}
		history = append(history, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, translateDBError(err, "jobs")
	}
	return history, nil
}

func (r *JobRepository) GetLastExecution(ctx context.Context, jobMasterID int64) (*job.Job, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM jobs WHERE job_master_id = $1 ORDER BY start_time DESC, seq_no DESC LIMIT 1`, jobColumns)

	start := time.Now()
	j, err := scanJob(r.db.QueryRow(ctx, query, jobMasterID))
	track("get_last_execution", start, err)
	if err != nil {
		return nil, translateDBError(err, "jobs")
	}
	return j, nil
}

func scanJob(row pgx.Row) (*job.Job, error) {
	var j job.Job
	err := row.Scan(
		&j.SeqNo, &j.JobMasterID, &j.JobType, &j.ExecutionMode, &j.Status,
		&j.ProcessedDate, &j.StartTime, &j.EndTime, &j.Remarks,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func scanJobMaster(row pgx.Row) (*job.JobMaster, error) {
	var m job.JobMaster
	err := row.Scan(&m.JobID, &m.JobName, &m.Description, &m.CronExpression, &m.Active)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
