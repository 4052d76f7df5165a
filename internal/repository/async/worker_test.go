package async

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"guildcalendar/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeRepo struct {
	mu      sync.Mutex
	applied [][]domain.Statement
	failOn  domain.StatementKind
}

func (r *fakeRepo) LoadEvents(ctx context.Context) ([]*domain.Event, error) { return nil, nil }
func (r *fakeRepo) LoadInvites(ctx context.Context) ([]*domain.Invite, error) { return nil, nil }

func (r *fakeRepo) Apply(ctx context.Context, stmts []domain.Statement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, st := range stmts {
		if st.Kind == r.failOn {
			return errors.New("constraint violation")
		}
	}
	r.applied = append(r.applied, stmts)
	return nil
}

type countingRecorder struct {
	mu       sync.Mutex
	ok, fail int
}

func (c *countingRecorder) StorageApplied(_ int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.fail++
	} else {
		c.ok++
	}
}

func startWorker(t *testing.T, repo *fakeRepo, rec Recorder) *Worker {
	t.Helper()
	w := NewWorker(repo, 16, time.Second, rec, testLogger)
	done := make(chan struct{})
	go func() {
		_ = w.Run(context.Background())
		close(done)
	}()
	t.Cleanup(func() {
		w.Close()
		<-done
	})
	return w
}

func TestWorker_AppliesInOrder(t *testing.T) {
	repo := &fakeRepo{}
	w := startWorker(t, repo, nil)

	var last <-chan error
	for id := domain.EventID(1); id <= 5; id++ {
		last = w.Execute(domain.DeleteEventStmt(id))
	}
	require.NoError(t, <-last)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	require.Len(t, repo.applied, 5)
	for i, batch := range repo.applied {
		assert.Equal(t, domain.EventID(i+1), batch[0].EventID)
	}
}

func TestWorker_CommitRunsHooksOnSuccess(t *testing.T) {
	tests := []struct {
		name      string
		failOn    domain.StatementKind
		wantErr   bool
		wantHooks int
	}{
		{name: "committed", wantHooks: 1},
		{name: "failed", failOn: domain.StmtDeleteEvent, wantErr: true, wantHooks: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{failOn: tt.failOn}
			rec := &countingRecorder{}
			w := startWorker(t, repo, rec)

			hooks := 0
			tx := domain.NewTransaction()
			tx.Append(domain.DeleteInviteStmt(3))
			tx.Append(domain.DeleteEventStmt(7))
			tx.OnCommit(func() { hooks++ })

			err := <-w.Commit(tx)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantHooks, hooks)

			rec.mu.Lock()
			defer rec.mu.Unlock()
			if tt.wantErr {
				assert.Equal(t, 1, rec.fail)
			} else {
				assert.Equal(t, 1, rec.ok)
			}
		})
	}
}

func TestWorker_CloseDrainsQueue(t *testing.T) {
	repo := &fakeRepo{}
	w := NewWorker(repo, 8, time.Second, nil, testLogger)

	var results []<-chan error
	for id := domain.InviteID(1); id <= 3; id++ {
		results = append(results, w.Execute(domain.DeleteInviteStmt(id)))
	}
	assert.Equal(t, 3, w.Pending())
	w.Close()

	require.NoError(t, w.Run(context.Background()))
	for _, ch := range results {
		require.NoError(t, <-ch)
	}
	assert.Len(t, repo.applied, 3)

	err := <-w.Execute(domain.DeleteInviteStmt(9))
	assert.ErrorIs(t, err, domain.ErrStorageClosed)
	w.Close()
}

func TestWorker_RunIgnoresCancellationForQueuedJobs(t *testing.T) {
	repo := &fakeRepo{}
	w := NewWorker(repo, 4, time.Second, nil, testLogger)
	ch := w.Execute(domain.DeleteEventStmt(1))
	w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, w.Run(ctx))
	require.NoError(t, <-ch)
	assert.Len(t, repo.applied, 1)
}
