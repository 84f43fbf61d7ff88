package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-teetime/internal/models"
	"ms-teetime/internal/store"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	st := store.New(dir)

	st.AddUser(models.User{Username: "jdoe", Password: "pw", FirstName: "Jane", LastName: "Doe", Email: "j@e.com", HasPaid: true})
	created, err := st.CreateTeeTime("2025-11-15", "09:00", "Hole 1", 4, 30)
	require.NoError(t, err)
	res, _, err := st.BookTeeTime(created.ID, 2, "jdoe")
	require.NoError(t, err)
	_, err = st.CreateEvent("Club Championship", "2025-11-20", "08:00", "2025-11-21", "18:00", 55)
	require.NoError(t, err)
	settings := models.DefaultCourseSettings()
	settings.CourseName = "Pine Valley"
	require.NoError(t, st.SetCourseSettings(settings))

	require.NoError(t, st.SaveToFile())

	reloaded := store.New(dir)
	require.NoError(t, reloaded.LoadFromFile())

	assert.Len(t, reloaded.GetAllUsers(), 1)
	assert.Len(t, reloaded.GetAllTeeTimes(), 1)
	assert.Len(t, reloaded.GetAllEvents(), 1)
	assert.Equal(t, "Pine Valley", reloaded.GetCourseSettings().CourseName)

	got, found := reloaded.FindReservation(res.ID)
	require.True(t, found)
	assert.Equal(t, *res, got)
}

func TestLoadFromMissingFilesYieldsEmptyCollections(t *testing.T) {
	st := store.New(t.TempDir())
	require.NoError(t, st.LoadFromFile())

	assert.Empty(t, st.GetAllUsers())
	assert.Empty(t, st.GetAllReservations())
	assert.Empty(t, st.GetAllEvents())
	assert.Empty(t, st.GetAllTeeTimes())
	assert.Equal(t, models.DefaultCourseSettings(), st.GetCourseSettings())
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	users := "good,pw,First,Last,a@b.com,true,false\n" +
		"too,few,fields\n" +
		"bad,pw,First,Last,a@b.com,notabool,false\n" +
		"also-good,pw,First,Last,a@b.com,false,true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.txt"), []byte(users), 0644))

	st := store.New(dir)
	require.NoError(t, st.LoadFromFile())

	names := []string{}
	for _, u := range st.GetAllUsers() {
		names = append(names, u.Username)
	}
	assert.Equal(t, []string{"good", "also-good"}, names)
}

func TestLoadRecognizesEventTagInReservationsFile(t *testing.T) {
	dir := t.TempDir()
	e := models.NewEvent("ev-1", "Championship", "2025-11-20", "08:00", "2025-11-21", "18:00", 55)
	r := models.Reservation{ID: "r1", Username: "jdoe", Date: "2025-11-15", Time: "09:00", PartySize: 2, TeeBox: "Hole 1", Price: 60}
	merged := r.ToFileString() + "\n" + e.ToFileString() + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reservations.txt"), []byte(merged), 0644))

	st := store.New(dir)
	require.NoError(t, st.LoadFromFile())

	assert.Len(t, st.GetAllReservations(), 1)
	require.Len(t, st.GetAllEvents(), 1)
	assert.Equal(t, e, st.GetAllEvents()[0])
}

func TestLoadSeedsTeeTimeCounter(t *testing.T) {
	dir := t.TempDir()
	lines := "TT3,2025-11-15,09:00,Hole 1,4,30\nTT17,2025-11-15,09:10,Hole 2,4,30\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "teetimes.txt"), []byte(lines), 0644))

	st := store.New(dir)
	require.NoError(t, st.LoadFromFile())

	created, err := st.CreateTeeTime("2025-11-16", "09:00", "Hole 1", 4, 30)
	require.NoError(t, err)
	assert.Equal(t, "TT18", created.ID)
}

func TestSaveWritesAllFiveFiles(t *testing.T) {
	dir := t.TempDir()
	st := store.New(dir)
	require.NoError(t, st.SaveToFile())

	for _, name := range []string{"users.txt", "reservations.txt", "events.txt", "teetimes.txt", "settings.txt"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}
