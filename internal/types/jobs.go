package types

import (
	"time"
)

// JobType identifies which extraction source a job belongs to.
type JobType string

// Supported job types.
const (
	JobTypeCVExtraction       JobType = "cv-extraction"
	JobTypeGitHubExtraction   JobType = "github-extraction"
	JobTypeLinkedInExtraction JobType = "linkedin-extraction"
)

// JobStatus is the lifecycle state of a job. A job is terminal once it
// reaches completed or failed; there is no retry state.
type JobStatus string

// Job lifecycle states.
const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Job is a tracked unit of asynchronous extraction work. Jobs live only in
// process memory for the process lifetime; they are not persisted across
// restarts. This is the documented contract, not an oversight.
type Job struct {
	ID        string    `json:"id"`
	Type      JobType   `json:"type"`
	Status    JobStatus `json:"status"`
	Payload   any       `json:"payload,omitempty"`
	Result    any       `json:"result,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Terminal reports whether the job has finished, successfully or not.
func (j *Job) Terminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}
