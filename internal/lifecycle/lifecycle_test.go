package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"radiorsser/internal/models"
	"radiorsser/internal/notify"
	"radiorsser/internal/test"
)

type stubStrategy struct {
	programs []models.Program
	err      error
}

func (s stubStrategy) ExtractPrograms(ctx context.Context, station models.Station) ([]models.Program, error) {
	return s.programs, s.err
}

func (s stubStrategy) ExtractEpisodes(ctx context.Context, program models.Program) ([]models.Episode, error) {
	return nil, nil
}

type stubNotifier struct {
	delivered  bool
	recipients []string
	change     notify.Change
	called     bool
}

func (n *stubNotifier) Notify(recipients []string, change notify.Change) bool {
	n.called = true
	n.recipients = recipients
	n.change = change
	return n.delivered
}

func TestReconcile(t *testing.T) {
	stored := []models.Program{
		{ID: 1, Title: "A", Status: models.StatusCurrent},
		{ID: 2, Title: "B", Status: models.StatusCurrent},
	}
	fresh := []models.Program{
		{Title: "A"},
		{Title: "C"},
	}

	result := Reconcile(stored, fresh)

	assert.Equal(t, []models.Program{stored[0]}, result.Current)
	assert.Equal(t, []models.Program{{Title: "C"}}, result.New)
	assert.Equal(t, []models.Program{stored[1]}, result.Archived)
}

func TestReconcileSkipsReruns(t *testing.T) {
	fresh := []models.Program{
		{Title: "Умные парни (повтор)"},
		{Title: "Новости"},
	}

	result := Reconcile(nil, fresh)

	assert.Len(t, result.New, 1)
	assert.Equal(t, "Новости", result.New[0].Title)
}

func TestReconcileIgnoresDuplicateTitles(t *testing.T) {
	fresh := []models.Program{
		{Title: "A"},
		{Title: "A"},
	}

	result := Reconcile(nil, fresh)
	assert.Len(t, result.New, 1)
}

func TestReconcileNoChanges(t *testing.T) {
	stored := []models.Program{{ID: 1, Title: "A", Status: models.StatusCurrent}}
	fresh := []models.Program{{Title: "A"}}

	result := Reconcile(stored, fresh)
	assert.Len(t, result.Current, 1)
	assert.Empty(t, result.New)
	assert.Empty(t, result.Archived)
}

var programColumns = []string{
	"id", "station_id", "title", "slug", "description", "url",
	"feed_url", "image", "status", "created_at", "updated_at",
}

func programRow(rows *sqlmock.Rows, p models.Program) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(p.ID, p.StationID, p.Title, p.Slug, p.Description, p.URL,
		p.FeedURL, p.Image, p.Status, now, now)
}

func expectRosterWrite(mock sqlmock.Sqlmock, station models.Station, fresh models.Program) {
	stored := sqlmock.NewRows(programColumns)
	programRow(stored, models.Program{ID: 1, StationID: station.ID, Title: "A", Status: models.StatusCurrent})
	programRow(stored, models.Program{ID: 2, StationID: station.ID, Title: "B", Status: models.StatusCurrent})
	mock.ExpectQuery(`SELECT \* FROM programs WHERE station_id = \$1 ORDER BY title`).
		WithArgs(station.ID).WillReturnRows(stored)

	mock.ExpectExec(`UPDATE programs SET status = \$1, updated_at = NOW\(\) WHERE station_id = \$2`).
		WithArgs(models.StatusArchive, station.ID).WillReturnResult(sqlmock.NewResult(0, 2))

	mock.ExpectExec(`UPDATE programs SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(models.StatusCurrent, 1).WillReturnResult(sqlmock.NewResult(0, 1))

	inserted := sqlmock.NewRows(programColumns)
	created := fresh
	created.ID = 3
	created.Status = models.StatusNew
	programRow(inserted, created)
	mock.ExpectQuery(`INSERT INTO programs`).
		WithArgs(station.ID, fresh.Title, fresh.Slug, fresh.Description, fresh.URL, fresh.FeedURL, fresh.Image, models.StatusNew).
		WillReturnRows(inserted)

	subscribers := sqlmock.NewRows([]string{"id", "email", "notify", "created_at"}).
		AddRow(1, "listener@example.com", true, time.Now())
	mock.ExpectQuery(`SELECT \* FROM subscribers WHERE notify = TRUE ORDER BY id`).
		WillReturnRows(subscribers)
}

func TestUpdateProgramsNotificationSucceeds(t *testing.T) {
	_, mock := test.NewMockDB(t)

	station := models.Station{ID: 1, Name: "Говорит Москва", ShortName: "gm"}
	freshC := models.Program{StationID: 1, Title: "C", Slug: "c", Description: "C", URL: "https://example.com/c/", FeedURL: "https://example.com/feeds/gm/c.xml"}

	expectRosterWrite(mock, station, freshC)
	// Delivery confirmed: archived programs get purged.
	mock.ExpectExec(`DELETE FROM programs WHERE station_id = \$1 AND status = \$2`).
		WithArgs(station.ID, models.StatusArchive).WillReturnResult(sqlmock.NewResult(0, 1))

	strategy := stubStrategy{programs: []models.Program{
		{StationID: 1, Title: "A"},
		freshC,
	}}
	notifier := &stubNotifier{delivered: true}

	err := UpdatePrograms(context.Background(), station, strategy, notifier)
	assert.NoError(t, err)

	assert.True(t, notifier.called)
	assert.Equal(t, []string{"listener@example.com"}, notifier.recipients)
	assert.Equal(t, "Говорит Москва", notifier.change.StationName)
	assert.Len(t, notifier.change.New, 1)
	assert.Equal(t, "C", notifier.change.New[0].Title)
	assert.Len(t, notifier.change.Archived, 1)
	assert.Equal(t, "B", notifier.change.Archived[0].Title)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestUpdateProgramsNotificationFails(t *testing.T) {
	_, mock := test.NewMockDB(t)

	station := models.Station{ID: 1, Name: "Говорит Москва", ShortName: "gm"}
	freshC := models.Program{StationID: 1, Title: "C", Slug: "c", Description: "C", URL: "https://example.com/c/", FeedURL: "https://example.com/feeds/gm/c.xml"}

	// No DELETE is expected: unconfirmed delivery keeps archived programs
	// stored for the next run to retry.
	expectRosterWrite(mock, station, freshC)

	strategy := stubStrategy{programs: []models.Program{
		{StationID: 1, Title: "A"},
		freshC,
	}}
	notifier := &stubNotifier{delivered: false}

	err := UpdatePrograms(context.Background(), station, strategy, notifier)
	assert.NoError(t, err)
	assert.True(t, notifier.called)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestUpdateProgramsNoChangesSkipsNotification(t *testing.T) {
	_, mock := test.NewMockDB(t)

	station := models.Station{ID: 1, Name: "Говорит Москва", ShortName: "gm"}

	stored := sqlmock.NewRows(programColumns)
	programRow(stored, models.Program{ID: 1, StationID: 1, Title: "A", Status: models.StatusCurrent})
	mock.ExpectQuery(`SELECT \* FROM programs WHERE station_id = \$1 ORDER BY title`).
		WithArgs(station.ID).WillReturnRows(stored)

	mock.ExpectExec(`UPDATE programs SET status = \$1, updated_at = NOW\(\) WHERE station_id = \$2`).
		WithArgs(models.StatusArchive, station.ID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE programs SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(models.StatusCurrent, 1).WillReturnResult(sqlmock.NewResult(0, 1))

	strategy := stubStrategy{programs: []models.Program{{StationID: 1, Title: "A"}}}
	notifier := &stubNotifier{delivered: true}

	err := UpdatePrograms(context.Background(), station, strategy, notifier)
	assert.NoError(t, err)
	assert.False(t, notifier.called)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
