// Package orchestrator is the public entry point for skill extraction. It
// wires the job queue, connectors, AI client, and merge engine together,
// choosing a synchronous or asynchronous execution mode per source type.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jonathan/skill-profiler/internal/connectors"
	"github.com/jonathan/skill-profiler/internal/fetch"
	"github.com/jonathan/skill-profiler/internal/jobqueue"
	"github.com/jonathan/skill-profiler/internal/merge"
	"github.com/jonathan/skill-profiler/internal/store"
	"github.com/jonathan/skill-profiler/internal/types"
)

// StatusQueued is the status returned by every asynchronous entry point.
const StatusQueued = "queued"

// StatusCompleted is the status returned by the synchronous CV-file path.
const StatusCompleted = "completed"

// QueuedResult is the response of the asynchronous extraction operations.
// Callers poll GetJobStatus with the returned id.
type QueuedResult struct {
	JobID  string `json:"jobId"`
	Status string `json:"status"`
}

// SyncResult is the response of the synchronous CV-file extraction.
type SyncResult struct {
	Status      string              `json:"status"`
	SkillsFound int                 `json:"skillsFound"`
	Result      *connectors.CVResult `json:"result"`
}

// Payload types carried by queued jobs.
type (
	// CVURLPayload requests extraction from a CV reachable at a URL.
	CVURLPayload struct {
		UserID  string `json:"user_id"`
		FileURL string `json:"file_url"`
	}
	// GitHubPayload requests extraction from a GitHub account.
	GitHubPayload struct {
		UserID   string `json:"user_id"`
		Username string `json:"username"`
	}
	// LinkedInPayload requests extraction from a LinkedIn profile.
	LinkedInPayload struct {
		UserID     string `json:"user_id"`
		ProfileURL string `json:"profile_url"`
	}
)

// Orchestrator coordinates extraction across sources. All collaborators
// are injected; there are no package-level singletons.
type Orchestrator struct {
	queue    *jobqueue.Queue
	cv       *connectors.CVConnector
	github   *connectors.GitHubConnector
	linkedin *connectors.LinkedInConnector
	profiles store.ProfileStore

	// userLocks serializes the read-merge-write cycle per user so
	// concurrent extractions cannot silently drop an update.
	userLocks sync.Map // map[string]*sync.Mutex
}

// New creates an orchestrator and registers its processor on the queue.
func New(
	queue *jobqueue.Queue,
	cv *connectors.CVConnector,
	github *connectors.GitHubConnector,
	linkedin *connectors.LinkedInConnector,
	profiles store.ProfileStore,
) *Orchestrator {
	o := &Orchestrator{
		queue:    queue,
		cv:       cv,
		github:   github,
		linkedin: linkedin,
		profiles: profiles,
	}
	queue.SetProcessor(o.process)
	return o
}

// ExtractFromCVByURL enqueues extraction of a CV document reachable at
// fileURL. Asynchronous: the caller polls GetJobStatus.
func (o *Orchestrator) ExtractFromCVByURL(userID, fileURL string) (*QueuedResult, error) {
	if userID == "" || fileURL == "" {
		return nil, fmt.Errorf("user id and file URL are required")
	}

	jobID := o.queue.CreateJob(types.JobTypeCVExtraction, CVURLPayload{
		UserID:  userID,
		FileURL: fileURL,
	})
	return &QueuedResult{JobID: jobID, Status: StatusQueued}, nil
}

// ExtractFromCVFile runs the whole pipeline synchronously: upload, extract,
// merge, persist. Errors are returned directly to the caller instead of
// being buried in a job record.
func (o *Orchestrator) ExtractFromCVFile(ctx context.Context, userID string, data []byte, fileName, mimeType string) (*SyncResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	result, err := o.cv.Extract(ctx, userID, data, fileName, mimeType)
	if err != nil {
		return nil, err
	}

	if err := o.mergeIntoProfile(ctx, userID, result.Skills.Skills, connectors.SourceCV); err != nil {
		return nil, err
	}

	return &SyncResult{
		Status:      StatusCompleted,
		SkillsFound: len(result.Skills.Skills),
		Result:      result,
	}, nil
}

// ExtractFromGitHub enqueues extraction from a GitHub account.
func (o *Orchestrator) ExtractFromGitHub(userID, username string) (*QueuedResult, error) {
	if userID == "" || username == "" {
		return nil, fmt.Errorf("user id and username are required")
	}

	jobID := o.queue.CreateJob(types.JobTypeGitHubExtraction, GitHubPayload{
		UserID:   userID,
		Username: username,
	})
	return &QueuedResult{JobID: jobID, Status: StatusQueued}, nil
}

// ExtractFromLinkedIn validates the profile URL synchronously, then
// enqueues extraction. An invalid URL fails fast and nothing is queued.
func (o *Orchestrator) ExtractFromLinkedIn(userID, profileURL string) (*QueuedResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if err := connectors.ValidateLinkedInURL(profileURL); err != nil {
		return nil, err
	}

	jobID := o.queue.CreateJob(types.JobTypeLinkedInExtraction, LinkedInPayload{
		UserID:     userID,
		ProfileURL: profileURL,
	})
	return &QueuedResult{JobID: jobID, Status: StatusQueued}, nil
}

// GetJobStatus returns the job record for polling. The second return value
// is false for unknown ids.
func (o *Orchestrator) GetJobStatus(jobID string) (types.Job, bool) {
	return o.queue.GetJob(jobID)
}

// process executes queued jobs. Errors returned here land in the job
// record; they never reach the caller that created the job.
func (o *Orchestrator) process(ctx context.Context, job *types.Job) (any, error) {
	switch job.Type {
	case types.JobTypeCVExtraction:
		var payload CVURLPayload
		if err := decodePayload(job.Payload, &payload); err != nil {
			return nil, err
		}
		return o.processCVURL(ctx, payload)
	case types.JobTypeGitHubExtraction:
		var payload GitHubPayload
		if err := decodePayload(job.Payload, &payload); err != nil {
			return nil, err
		}
		return o.processGitHub(ctx, payload)
	case types.JobTypeLinkedInExtraction:
		var payload LinkedInPayload
		if err := decodePayload(job.Payload, &payload); err != nil {
			return nil, err
		}
		return o.processLinkedIn(ctx, payload)
	default:
		return nil, fmt.Errorf("unknown job type: %s", job.Type)
	}
}

// processCVURL downloads the document and runs it through the direct-text
// extraction path. Unlike the upload path, the document is not passed to
// the model by reference; its bytes are treated as text.
func (o *Orchestrator) processCVURL(ctx context.Context, payload CVURLPayload) (any, error) {
	doc, err := fetch.Document(ctx, payload.FileURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download CV: %w", err)
	}

	text, err := doc.Text()
	if err != nil {
		return nil, fmt.Errorf("failed to read CV document: %w", err)
	}

	result, err := o.cv.ExtractText(ctx, []byte(text))
	if err != nil {
		return nil, err
	}

	if err := o.mergeIntoProfile(ctx, payload.UserID, result.Skills, connectors.SourceCV); err != nil {
		return nil, err
	}

	return map[string]any{
		"source":      connectors.SourceCV,
		"fileUrl":     payload.FileURL,
		"skillsFound": len(result.Skills),
	}, nil
}

func (o *Orchestrator) processGitHub(ctx context.Context, payload GitHubPayload) (any, error) {
	result, err := o.github.Extract(ctx, payload.Username)
	if err != nil {
		return nil, err
	}

	if err := o.mergeIntoProfile(ctx, payload.UserID, result.Skills, connectors.SourceGitHub); err != nil {
		return nil, err
	}

	return result, nil
}

func (o *Orchestrator) processLinkedIn(ctx context.Context, payload LinkedInPayload) (any, error) {
	result, err := o.linkedin.Extract(ctx, payload.ProfileURL)
	if err != nil {
		return nil, err
	}

	if err := o.mergeIntoProfile(ctx, payload.UserID, result.Skills, connectors.SourceLinkedIn); err != nil {
		return nil, err
	}

	return result, nil
}

// mergeIntoProfile folds candidates into the user's profile under the
// per-user lock and persists the result with refreshed counts.
func (o *Orchestrator) mergeIntoProfile(ctx context.Context, userID string, candidates []types.SkillCandidate, sourceTag string) error {
	lock := o.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	profile, err := o.profiles.Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		profile = &types.Profile{UserID: userID}
	} else if err != nil {
		return fmt.Errorf("failed to load profile for %s: %w", userID, err)
	}

	profile.Skills = merge.Merge(profile.Skills, candidates, sourceTag)
	profile.RecomputeCounts()
	profile.UpdatedAt = time.Now()

	if err := o.profiles.Update(ctx, userID, profile); err != nil {
		return fmt.Errorf("failed to save profile for %s: %w", userID, err)
	}

	log.Printf("[orchestrator] merged %d candidates from %s into profile %s (now %d skills)",
		len(candidates), sourceTag, userID, profile.SkillCount)
	return nil
}

func (o *Orchestrator) lockFor(userID string) *sync.Mutex {
	lock, _ := o.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// decodePayload converts the stored payload (a typed struct in-process,
// or generic JSON if it ever round-trips through serialization) into dst.
func decodePayload(payload any, dst any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode job payload: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to decode job payload: %w", err)
	}
	return nil
}
