package orchestrator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-profiler/internal/connectors"
	"github.com/jonathan/skill-profiler/internal/githubapi"
	"github.com/jonathan/skill-profiler/internal/jobqueue"
	"github.com/jonathan/skill-profiler/internal/llm"
	"github.com/jonathan/skill-profiler/internal/store"
	"github.com/jonathan/skill-profiler/internal/types"
)

type fakeGitHub struct {
	repos     []githubapi.Repo
	languages map[string]map[string]int64
	readmes   map[string]string
}

func (f *fakeGitHub) ListRepos(ctx context.Context, username string, perPage int, sort string) ([]githubapi.Repo, error) {
	return f.repos, nil
}

func (f *fakeGitHub) ListLanguages(ctx context.Context, owner, repo string) (map[string]int64, error) {
	return f.languages[repo], nil
}

func (f *fakeGitHub) GetReadme(ctx context.Context, owner, repo string) (string, error) {
	if md, ok := f.readmes[repo]; ok {
		return md, nil
	}
	return "", githubapi.ErrNotFound
}

func newTestOrchestrator(t *testing.T, gh githubapi.Client) (*Orchestrator, *store.MemoryProfileStore) {
	t.Helper()

	ai := llm.NewClient(nil) // deterministic mock mode
	profiles := store.NewMemoryProfileStore()
	blobs := store.NewMemoryBlobStore("test-key")
	queue := jobqueue.New(2)
	t.Cleanup(queue.Close)

	o := New(
		queue,
		connectors.NewCVConnector(blobs, ai),
		connectors.NewGitHubConnector(gh, ai),
		connectors.NewLinkedInConnector(connectors.PlaceholderFetcher{}, ai),
		profiles,
	)
	return o, profiles
}

func waitForTerminal(t *testing.T, o *Orchestrator, jobID string) types.Job {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		job, ok := o.GetJobStatus(jobID)
		require.True(t, ok, "job disappeared: %s", jobID)
		if job.Terminal() {
			return job
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("job %s never reached a terminal state", jobID)
	return types.Job{}
}

func TestExtractFromCVFileSynchronous(t *testing.T) {
	o, profiles := newTestOrchestrator(t, &fakeGitHub{})

	cv := []byte("Senior engineer with Python, Docker and Kubernetes experience.")
	result, err := o.ExtractFromCVFile(context.Background(), "user-1", cv, "resume.pdf", "application/pdf")
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, result.Status)
	assert.Equal(t, result.SkillsFound, len(result.Result.Skills.Skills))
	assert.GreaterOrEqual(t, result.SkillsFound, 3)

	profile, err := profiles.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, profile.SkillCount, len(profile.Skills))
	assert.Equal(t, 1, profile.SourcesConnected)

	for _, skill := range profile.Skills {
		assert.Contains(t, skill.Sources, connectors.SourceCV)
		assert.Equal(t, 1, skill.Occurrences)
	}
}

func TestExtractFromCVFileRejectsEmptyInput(t *testing.T) {
	o, _ := newTestOrchestrator(t, &fakeGitHub{})

	_, err := o.ExtractFromCVFile(context.Background(), "", []byte("x"), "cv.pdf", "application/pdf")
	assert.Error(t, err)

	_, err = o.ExtractFromCVFile(context.Background(), "user-1", nil, "cv.pdf", "application/pdf")
	assert.Error(t, err)
}

func TestExtractFromGitHubAsync(t *testing.T) {
	gh := &fakeGitHub{
		repos: []githubapi.Repo{
			{Name: "svc", FullName: "octo/svc"},
			{Name: "web", FullName: "octo/web"},
		},
		languages: map[string]map[string]int64{
			"svc": {"Go": 1000},
			"web": {"TypeScript": 800},
		},
		readmes: map[string]string{
			"svc": "A service built with Docker and Kubernetes.",
		},
	}
	o, profiles := newTestOrchestrator(t, gh)

	queued, err := o.ExtractFromGitHub("user-2", "octo")
	require.NoError(t, err)
	assert.Equal(t, StatusQueued, queued.Status)
	assert.NotEmpty(t, queued.JobID)

	job := waitForTerminal(t, o, queued.JobID)
	require.Equal(t, types.JobStatusCompleted, job.Status, "job error: %s", job.Error)

	profile, err := profiles.Get(context.Background(), "user-2")
	require.NoError(t, err)
	assert.Equal(t, 1, profile.SourcesConnected)

	names := make(map[string]bool)
	for _, skill := range profile.Skills {
		names[skill.Name] = true
	}
	assert.True(t, names["Docker"], "README skills should be extracted")
	assert.True(t, names["Kubernetes"], "README skills should be extracted")
}

func TestExtractFromLinkedInValidatesURLBeforeQueueing(t *testing.T) {
	o, _ := newTestOrchestrator(t, &fakeGitHub{})

	_, err := o.ExtractFromLinkedIn("user-3", "https://example.com/in/someone")
	var invalidErr *connectors.ErrInvalidLinkedInURL
	assert.ErrorAs(t, err, &invalidErr)

	queued, err := o.ExtractFromLinkedIn("user-3", "https://www.linkedin.com/in/someone")
	require.NoError(t, err)

	job := waitForTerminal(t, o, queued.JobID)
	assert.Equal(t, types.JobStatusCompleted, job.Status, "job error: %s", job.Error)
}

func TestCVURLJobFailureRecordedOnJob(t *testing.T) {
	o, _ := newTestOrchestrator(t, &fakeGitHub{})

	queued, err := o.ExtractFromCVByURL("user-4", "http://127.0.0.1:1/missing.pdf")
	require.NoError(t, err)

	job := waitForTerminal(t, o, queued.JobID)
	assert.Equal(t, types.JobStatusFailed, job.Status)
	assert.Contains(t, job.Error, "failed to download CV")
}

func TestGetJobStatusUnknownID(t *testing.T) {
	o, _ := newTestOrchestrator(t, &fakeGitHub{})

	_, ok := o.GetJobStatus("nope")
	assert.False(t, ok)
}

func TestCrossSourceMergeAccumulates(t *testing.T) {
	gh := &fakeGitHub{
		repos:     []githubapi.Repo{{Name: "infra", FullName: "dev/infra"}},
		languages: map[string]map[string]int64{"infra": {"Python": 500}},
		readmes:   map[string]string{"infra": "Python tooling for Docker deployments."},
	}
	o, profiles := newTestOrchestrator(t, gh)

	cv := []byte("Python developer using Docker daily.")
	_, err := o.ExtractFromCVFile(context.Background(), "user-5", cv, "cv.txt", "text/plain")
	require.NoError(t, err)

	queued, err := o.ExtractFromGitHub("user-5", "dev")
	require.NoError(t, err)
	job := waitForTerminal(t, o, queued.JobID)
	require.Equal(t, types.JobStatusCompleted, job.Status, "job error: %s", job.Error)

	profile, err := profiles.Get(context.Background(), "user-5")
	require.NoError(t, err)
	assert.Equal(t, 2, profile.SourcesConnected)

	var python *types.ProfileSkill
	for i := range profile.Skills {
		if profile.Skills[i].Name == "Python" {
			python = &profile.Skills[i]
		}
	}
	require.NotNil(t, python, "Python should be in the merged profile")
	assert.GreaterOrEqual(t, python.Occurrences, 2)
	assert.Contains(t, python.Sources, connectors.SourceCV)
	assert.Contains(t, python.Sources, connectors.SourceGitHub)
}

func TestConcurrentMergesDoNotDropUpdates(t *testing.T) {
	o, profiles := newTestOrchestrator(t, &fakeGitHub{})

	const rounds = 20
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cv := []byte("Python and Docker everywhere.")
			_, err := o.ExtractFromCVFile(context.Background(), "user-6", cv, "cv.txt", "text/plain")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	profile, err := profiles.Get(context.Background(), "user-6")
	require.NoError(t, err)
	for _, skill := range profile.Skills {
		assert.Equal(t, rounds, skill.Occurrences, "lost update for %s", skill.Name)
	}
}
