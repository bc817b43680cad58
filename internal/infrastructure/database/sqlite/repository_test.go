package sqlite

import (
	"context"
	"hrreminder/internal/domain/constant"
	"hrreminder/internal/domain/entity"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDB(":memory:", "silent")
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDB(db) })
	return db
}

func seedCandidate(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	id, err := NewCandidateRepository(db).Create(context.Background(), &entity.Candidate{
		Name:   name,
		JobID:  "job-1",
		Status: constant.CandidateScreening.String(),
	})
	require.NoError(t, err)
	return id
}

func TestCandidateRepository_ScheduleReplacesInterview(t *testing.T) {
	db := newTestDB(t)
	repo := NewCandidateRepository(db)
	ctx := context.Background()
	id := seedCandidate(t, db, "Alice")

	first := entity.Interview{Date: "2026-04-01", Time: "10:00", Interviewers: []string{"ana"}, Notes: "first"}
	require.NoError(t, repo.ScheduleInterviews(ctx, []uint{id}, first, constant.CandidateApproved))
	require.NoError(t, repo.SetNoShow(ctx, id, true))

	second := entity.Interview{Date: "2026-04-02", Time: "11:30", Interviewers: []string{"bruno", "carla"}}
	require.NoError(t, repo.ScheduleInterviews(ctx, []uint{id}, second, constant.CandidateApproved))

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.Interview)
	assert.Equal(t, "2026-04-02", got.Interview.Date)
	assert.Equal(t, "11:30", got.Interview.Time)
	assert.Equal(t, []string{"bruno", "carla"}, got.Interview.Interviewers)
	assert.Empty(t, got.Interview.Notes)
	assert.False(t, got.Interview.NoShow, "a new schedule resets the no-show flag")
	assert.Equal(t, constant.CandidateApproved, got.GetStatus())

	var count int64
	require.NoError(t, db.Model(&entity.Interview{}).Where("candidate_id = ?", id).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCandidateRepository_ScheduleUnknownCandidateRollsBack(t *testing.T) {
	db := newTestDB(t)
	repo := NewCandidateRepository(db)
	ctx := context.Background()
	id := seedCandidate(t, db, "Alice")

	err := repo.ScheduleInterviews(ctx, []uint{id, 999}, entity.Interview{Date: "2026-04-01", Time: "10:00"}, constant.CandidateApproved)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.Interview)
	assert.Equal(t, constant.CandidateScreening, got.GetStatus())
}

func TestCandidateRepository_FindWithInterviewsAndCancel(t *testing.T) {
	db := newTestDB(t)
	repo := NewCandidateRepository(db)
	ctx := context.Background()
	a := seedCandidate(t, db, "Alice")
	seedCandidate(t, db, "Bob")
	c := seedCandidate(t, db, "Carol")

	iv := entity.Interview{Date: "2026-04-01", Time: "10:00", Interviewers: []string{"ana"}}
	require.NoError(t, repo.ScheduleInterviews(ctx, []uint{a, c}, iv, constant.CandidateApproved))

	roster, err := repo.FindWithInterviews(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, a, roster[0].ID)
	assert.Equal(t, c, roster[1].ID)
	for _, cand := range roster {
		require.NotNil(t, cand.Interview)
		assert.Equal(t, cand.ID, cand.Interview.CandidateID)
	}

	require.NoError(t, repo.CancelInterviews(ctx, []uint{a}, constant.CandidateApproved))
	roster, err = repo.FindWithInterviews(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, c, roster[0].ID)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCandidateRepository_SetNoShowWithoutInterview(t *testing.T) {
	db := newTestDB(t)
	repo := NewCandidateRepository(db)
	id := seedCandidate(t, db, "Alice")

	err := repo.SetNoShow(context.Background(), id, true)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCandidateRepository_FindByIDNotFound(t *testing.T) {
	repo := NewCandidateRepository(newTestDB(t))
	_, err := repo.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSessionRepository_CRUD(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))
	ctx := context.Background()
	line := "U1"

	require.NoError(t, repo.Create(ctx, &entity.Session{ID: "s1", Username: "hr", LineUserID: &line}))
	require.NoError(t, repo.Create(ctx, &entity.Session{ID: "s2", Username: "hr2"}))

	got, err := repo.FindByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "hr", got.Username)
	target, ok := got.PushTarget()
	assert.True(t, ok)
	assert.Equal(t, "U1", target)

	require.NoError(t, repo.Delete(ctx, "s1"))
	_, err = repo.FindByID(ctx, "s1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
