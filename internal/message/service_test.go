package message

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linechat/backend/internal/message/entity"
)

type fakeRepo struct {
	nextID int64
	rows   []*entity.Message
}

func (f *fakeRepo) Create(ctx context.Context, m *entity.Message) (int64, error) {
	f.nextID++
	m.ID = f.nextID
	f.rows = append(f.rows, m)
	return m.ID, nil
}

func (f *fakeRepo) ListAfter(ctx context.Context, userID, after int64) ([]*entity.Message, error) {
	var out []*entity.Message
	for _, m := range f.rows {
		if (m.SenderID == userID || m.ReceiverID == userID) && m.Timestamp > after {
			out = append(out, m)
		}
	}
	return out, nil
}

func strptr(s string) *string { return &s }

func TestSend_AssignsServerTimestamp(t *testing.T) {
	repo := &fakeRepo{}
	at := time.UnixMilli(1_700_000_000_000)
	svc := &Service{repo: repo, now: func() time.Time { return at }}

	require.NoError(t, svc.Send(context.Background(), 1, 2, strptr("hi"), nil))
	require.Len(t, repo.rows, 1)
	assert.Equal(t, at.UnixMilli(), repo.rows[0].Timestamp)
}

func TestSync_CursorNeverReplays(t *testing.T) {
	repo := &fakeRepo{}
	var ts int64 = 1000
	svc := &Service{repo: repo, now: func() time.Time {
		ts++
		return time.UnixMilli(ts)
	}}

	require.NoError(t, svc.Send(context.Background(), 1, 2, strptr("first"), nil))
	require.NoError(t, svc.Send(context.Background(), 2, 1, strptr("second"), nil))
	require.NoError(t, svc.Send(context.Background(), 1, 3, strptr("not for user 2"), nil))

	msgs, err := svc.Sync(context.Background(), 2, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	for _, m := range msgs {
		assert.True(t, m.SenderID == 2 || m.ReceiverID == 2)
	}

	// advancing the cursor to the last received timestamp yields nothing new
	cursor := msgs[len(msgs)-1].Timestamp
	again, err := svc.Sync(context.Background(), 2, cursor)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestSend_AllowsEmptyContent(t *testing.T) {
	// neither text nor media is required; gap carried from the protocol
	repo := &fakeRepo{}
	svc := &Service{repo: repo, now: time.Now}

	require.NoError(t, svc.Send(context.Background(), 1, 2, nil, nil))
	require.Len(t, repo.rows, 1)
	assert.Nil(t, repo.rows[0].TextContent)
	assert.Nil(t, repo.rows[0].MediaIDRef)
}
