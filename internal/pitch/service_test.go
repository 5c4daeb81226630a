package pitch

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sujalbistaa/swipe/internal/apperr"
	"github.com/sujalbistaa/swipe/internal/models"
	"github.com/sujalbistaa/swipe/internal/testutil"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingPublisher) Publish(event string, _ any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func newTestService(t *testing.T) (*Service, *gorm.DB, *recordingPublisher) {
	t.Helper()
	gdb := testutil.NewDB(t)
	pub := &recordingPublisher{}
	return NewService(gdb, pub), gdb, pub
}

func countRows(t *testing.T, gdb *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gdb.Model(model).Count(&n).Error)
	return n
}

func TestListEmpty(t *testing.T) {
	svc, _, _ := newTestService(t)

	pitches, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, pitches)
	assert.Empty(t, pitches)
}

func TestCreate(t *testing.T) {
	svc, _, pub := newTestService(t)
	ctx := context.Background()
	caller := &models.User{ID: uuid.New(), Username: "alice"}

	p, err := svc.Create(ctx, CreateInput{
		Title:       "Standing desks for cats",
		Description: "Ergonomics matter.",
		Type:        models.PitchTypePitch,
	}, caller)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, "alice", p.Submitter)

	pitches, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, pitches, 1)
	assert.Equal(t, p.ID, pitches[0].ID)
	assert.Equal(t, "Standing desks for cats", pitches[0].Title)
	assert.Equal(t, []string{EventPitchCreated}, pub.events)
}

func TestCreateRequiresCaller(t *testing.T) {
	svc, gdb, pub := newTestService(t)

	_, err := svc.Create(context.Background(), CreateInput{Title: "t", Description: "d", Type: "idea"}, nil)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	assert.EqualValues(t, 0, countRows(t, gdb, &models.Pitch{}))
	assert.Empty(t, pub.events)
}

func TestCreateRejectsUnknownType(t *testing.T) {
	svc, gdb, _ := newTestService(t)
	caller := &models.User{ID: uuid.New(), Username: "alice"}

	_, err := svc.Create(context.Background(), CreateInput{Title: "t", Description: "d", Type: "rant"}, caller)
	assert.Equal(t, apperr.CodeInvalidPitchType, apperr.CodeOf(err))
	assert.EqualValues(t, 0, countRows(t, gdb, &models.Pitch{}))
}

func TestVoteEchoesInput(t *testing.T) {
	svc, _, pub := newTestService(t)
	ctx := context.Background()
	pitchID := uuid.New()

	first, err := svc.Vote(ctx, VoteInput{PitchID: pitchID, VoteType: models.VoteLike})
	require.NoError(t, err)
	assert.Equal(t, pitchID, first.PitchID)
	assert.Equal(t, models.VoteLike, first.VoteType)
	assert.NotZero(t, first.ID)

	second, err := svc.Vote(ctx, VoteInput{PitchID: pitchID, VoteType: models.VoteDislike})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, []string{EventVoteRecorded, EventVoteRecorded}, pub.events)
}

func TestVoteRejectsUnknownType(t *testing.T) {
	svc, gdb, _ := newTestService(t)

	_, err := svc.Vote(context.Background(), VoteInput{PitchID: uuid.New(), VoteType: "superlike"})
	assert.Equal(t, apperr.CodeInvalidVoteType, apperr.CodeOf(err))
	assert.EqualValues(t, 0, countRows(t, gdb, &models.Vote{}))
}

func TestConcurrentVotesAllPersist(t *testing.T) {
	svc, gdb, _ := newTestService(t)
	ctx := context.Background()
	pitchID := uuid.New()

	const voters = 10
	var wg sync.WaitGroup
	ids := make(chan uint, voters)
	errs := make(chan error, voters)
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := svc.Vote(ctx, VoteInput{PitchID: pitchID, VoteType: models.VoteLike})
			if err != nil {
				errs <- err
				return
			}
			ids <- v.ID
		}()
	}
	wg.Wait()
	close(ids)
	close(errs)

	for err := range errs {
		t.Errorf("vote failed: %v", err)
	}
	seen := map[uint]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate vote id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, voters)
	assert.EqualValues(t, voters, countRows(t, gdb, &models.Vote{}))
}

func TestTally(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	pitchID := uuid.New()

	for _, vt := range []string{"like", "like", "dislike"} {
		_, err := svc.Vote(ctx, VoteInput{PitchID: pitchID, VoteType: vt})
		require.NoError(t, err)
	}
	_, err := svc.Vote(ctx, VoteInput{PitchID: uuid.New(), VoteType: "like"})
	require.NoError(t, err)

	tally, err := svc.Tally(ctx, pitchID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, tally.Likes)
	assert.EqualValues(t, 1, tally.Dislikes)

	empty, err := svc.Tally(ctx, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, empty.Likes)
	assert.Zero(t, empty.Dislikes)
}
