package dto

import (
	"time"

	"lending-engine/internal/domain/job"
)

type JobResponse struct {
	SeqNo         int64      `json:"seqNo"`
	JobMasterID   *int64     `json:"jobMasterId,omitempty"`
	JobType       string     `json:"jobType"`
	ExecutionMode string     `json:"executionMode"`
	Status        string     `json:"status"`
	ProcessedDate string     `json:"processedDate"`
	StartTime     time.Time  `json:"startTime"`
	EndTime       *time.Time `json:"endTime,omitempty"`
	Remarks       string     `json:"remarks,omitempty"`
}

type JobDefinitionResponse struct {
	JobID          int64      `json:"jobId"`
	JobName        string     `json:"jobName"`
	Description    string     `json:"description,omitempty"`
	CronExpression string     `json:"cronExpression"`
	Active         bool       `json:"active"`
	LastStatus     string     `json:"lastStatus"`
	LastRunTime    *time.Time `json:"lastRunTime,omitempty"`
}

func NewJobResponse(j *job.Job) JobResponse {
	return JobResponse{
		SeqNo:         j.SeqNo,
		JobMasterID:   j.JobMasterID,
		JobType:       j.JobType,
		ExecutionMode: string(j.ExecutionMode),
		Status:        string(j.Status),
		ProcessedDate: j.ProcessedDate.Format(time.DateOnly),
		StartTime:     j.StartTime,
		EndTime:       j.EndTime,
		Remarks:       j.Remarks,
	}
}

func NewJobDefinitionResponse(d *job.JobDefinition) JobDefinitionResponse {
	return JobDefinitionResponse{
		JobID:          d.JobID,
		JobName:        d.JobName,
		Description:    d.Description,
		CronExpression: d.CronExpression,
		Active:         d.Active,
		LastStatus:     d.LastStatus,
		LastRunTime:    d.LastRunTime,
	}
}
