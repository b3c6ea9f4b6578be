package media

import (
	"bytes"
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/linechat/backend/internal/media/entity"
	"github.com/linechat/backend/pkg/apperrors"
)

type fakeRepo struct {
	nextID   int64
	payloads map[int64]*entity.Payload
	cutoffs  []int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{payloads: map[int64]*entity.Payload{}}
}

func (f *fakeRepo) Create(ctx context.Context, data []byte, mimeType string, createdAt int64) (int64, error) {
	f.nextID++
	f.payloads[f.nextID] = &entity.Payload{ID: f.nextID, FileData: data, MimeType: mimeType, CreatedAt: createdAt}
	return f.nextID, nil
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (*entity.Payload, error) {
	p, ok := f.payloads[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

func (f *fakeRepo) DeleteOlderThan(ctx context.Context, cutoff int64) (int64, error) {
	f.cutoffs = append(f.cutoffs, cutoff)
	var n int64
	for id, p := range f.payloads {
		if p.CreatedAt < cutoff {
			delete(f.payloads, id)
			n++
		}
	}
	return n, nil
}

func newTestService(repo Repository, now time.Time) *Service {
	return &Service{repo: repo, now: func() time.Time { return now }}
}

func TestUpload_SizeCeiling(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, time.Now())

	// exactly at the ceiling is accepted
	id, err := svc.Upload(context.Background(), make([]byte, MaxPayloadBytes), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	// one byte over is rejected before anything is persisted
	_, err = svc.Upload(context.Background(), make([]byte, MaxPayloadBytes+1), "image/jpeg")
	assert.ErrorIs(t, err, apperrors.ErrPayloadTooLarge)
	assert.Len(t, repo.payloads, 1)
}

func TestUploadDownload_RoundTrip(t *testing.T) {
	svc := newTestService(newFakeRepo(), time.Now())
	payload := []byte{0xff, 0xd8, 0x00, 0x01, 0x02}

	id, err := svc.Upload(context.Background(), payload, "image/jpeg")
	require.NoError(t, err)

	data, mimeType, err := svc.Download(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(payload, data))
	assert.Equal(t, "image/jpeg", mimeType)
}

func TestDownload_NotFound(t *testing.T) {
	svc := newTestService(newFakeRepo(), time.Now())
	_, _, err := svc.Download(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrMediaNotFound)
}

func TestUpload_DefaultMimeType(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, time.Now())

	id, err := svc.Upload(context.Background(), []byte("x"), "")
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", repo.payloads[id].MimeType)
}

func TestSweepExpired_RetentionBoundary(t *testing.T) {
	now := time.Now()
	repo := newFakeRepo()
	svc := newTestService(repo, now)

	old, _ := repo.Create(context.Background(), []byte("old"), "image/png", now.Add(-25*time.Hour).UnixMilli())
	fresh, _ := repo.Create(context.Background(), []byte("fresh"), "image/png", now.Add(-23*time.Hour).UnixMilli())

	deleted, err := svc.SweepExpired(context.Background(), DefaultRetention)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, ok := repo.payloads[old]
	assert.False(t, ok, "25h-old payload must be swept")
	_, ok = repo.payloads[fresh]
	assert.True(t, ok, "23h-old payload must survive")
}

func TestSweeper_RunOnce(t *testing.T) {
	now := time.Now()
	repo := newFakeRepo()
	svc := newTestService(repo, now)
	_, _ = repo.Create(context.Background(), []byte("old"), "image/png", now.Add(-48*time.Hour).UnixMilli())

	sw := NewSweeper(svc, zap.NewNop().Sugar())
	sw.RunOnce(context.Background())

	assert.Empty(t, repo.payloads)
	require.Len(t, repo.cutoffs, 1)
	assert.Equal(t, now.Add(-DefaultRetention).UnixMilli(), repo.cutoffs[0])
}

func TestSweeper_RunStopsOnCancel(t *testing.T) {
	svc := newTestService(newFakeRepo(), time.Now())
	sw := NewSweeper(svc, zap.NewNop().Sugar())
	sw.Interval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sw.Run(ctx)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancellation")
	}
}
