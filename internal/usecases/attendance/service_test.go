package attendance

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-report-api/infrastructure/repository"
	"github.com/vfg2006/sales-report-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"go.uber.org/mock/gomock"
)

var checkIn = time.Date(2024, 5, 6, 8, 15, 30, 0, time.UTC)

func newService() *Service {
	s := NewService(repository.NewMemoryRecordRepository(domain.AttendanceSchema))
	s.now = func() time.Time { return checkIn }
	return s
}

func TestService_MarkAndList(t *testing.T) {
	service := newService()

	_, err := service.Put(&domain.AttendanceEntry{ID: "1", Name: "Ana", Group: "3A"})
	require.NoError(t, err)
	_, err = service.Put(&domain.AttendanceEntry{ID: "2", Name: "Bob", Group: "3A"})
	require.NoError(t, err)
	_, err = service.Put(&domain.AttendanceEntry{ID: "3", Name: "Carla", Group: "3B"})
	require.NoError(t, err)

	entry, err := service.Mark("1", true)
	require.NoError(t, err)
	assert.True(t, entry.Present)
	require.NotNil(t, entry.CheckedAt)
	assert.True(t, checkIn.Equal(*entry.CheckedAt))

	entries, summary, err := service.List("3a")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, domain.AttendanceSummary{Total: 2, Present: 1, Absent: 1}, summary)

	_, summary, err = service.List("")
	require.NoError(t, err)
	assert.Equal(t, domain.AttendanceSummary{Total: 3, Present: 1, Absent: 2}, summary)
}

func TestService_PutKeepsMark(t *testing.T) {
	service := newService()

	_, err := service.Put(&domain.AttendanceEntry{ID: "1", Name: "Ana"})
	require.NoError(t, err)
	_, err = service.Mark("1", true)
	require.NoError(t, err)

	updated, err := service.Put(&domain.AttendanceEntry{ID: "1", Name: "Ana María"})
	require.NoError(t, err)
	assert.True(t, updated.Present)
	assert.Equal(t, "Ana María", updated.Name)
}

func TestService_MarkAbsentClearsTime(t *testing.T) {
	service := newService()

	_, err := service.Put(&domain.AttendanceEntry{ID: "1", Name: "Ana"})
	require.NoError(t, err)
	_, err = service.Mark("1", true)
	require.NoError(t, err)

	entry, err := service.Mark("1", false)
	require.NoError(t, err)
	assert.False(t, entry.Present)
	assert.Nil(t, entry.CheckedAt)
}

func TestService_Reset(t *testing.T) {
	service := newService()

	for _, id := range []string{"1", "2", "3"} {
		_, err := service.Put(&domain.AttendanceEntry{ID: id, Name: "Pessoa " + id})
		require.NoError(t, err)
	}
	_, err := service.Mark("1", true)
	require.NoError(t, err)
	_, err = service.Mark("3", true)
	require.NoError(t, err)

	n, err := service.Reset()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, summary, err := service.List("")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Present)
	assert.Equal(t, 3, summary.Absent)
}

func TestService_Errors(t *testing.T) {
	service := newService()

	_, err := service.Mark("nada", true)
	assert.ErrorIs(t, err, ErrEntryNotFound)
	assert.ErrorIs(t, service.Delete("nada"), ErrEntryNotFound)

	_, err = service.Put(&domain.AttendanceEntry{ID: "1"})
	assert.Error(t, err)

	entry, err := service.Put(&domain.AttendanceEntry{Name: "Sem id"})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
}

func TestService_TrimsID(t *testing.T) {
	service := newService()

	_, err := service.Put(&domain.AttendanceEntry{ID: " 7 ", Name: "Ana", Group: "3A"})
	require.NoError(t, err)

	entry, err := service.Mark("7 ", true)
	require.NoError(t, err)
	assert.Equal(t, "7", entry.ID)
	assert.True(t, entry.Present)

	require.NoError(t, service.Delete(" 7"))
	_, err = service.Mark("7", false)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestService_ResetRepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockRecordRepository(ctrl)
	marked := (&domain.AttendanceEntry{ID: "1", Name: "Ana", Present: true, CheckedAt: &checkIn}).ToRecord()

	repo.EXPECT().List().Return([]*domain.Record{marked}, nil)
	repo.EXPECT().Put(gomock.Any()).Return(errors.New("disco cheio"))

	_, err := NewService(repo).Reset()
	assert.EqualError(t, err, "disco cheio")
}
