package server_test

import (
	"bufio"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-teetime/internal/logger"
	"ms-teetime/internal/models"
	"ms-teetime/internal/server"
	"ms-teetime/internal/store"
)

func startServer(t *testing.T) (*server.Server, *store.Store, string) {
	t.Helper()
	dir := t.TempDir()
	st := store.New(dir)
	srv := server.New("127.0.0.1:0", st, logger.NewLogger(""))
	require.NoError(t, srv.Start())
	t.Cleanup(srv.Stop)
	return srv, st, dir
}

type client struct {
	conn   net.Conn
	reader *bufio.Reader
}

func dial(t *testing.T, srv *server.Server) *client {
	t.Helper()
	addr := srv.Addr()
	require.NotNil(t, addr)
	conn, err := net.Dial("tcp", addr.String())
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return &client{conn: conn, reader: bufio.NewReader(conn)}
}

func (c *client) send(t *testing.T, line string) string {
	t.Helper()
	_, err := c.conn.Write([]byte(line + "\n"))
	require.NoError(t, err)
	c.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	resp, err := c.reader.ReadString('\n')
	require.NoError(t, err)
	return strings.TrimRight(resp, "\n")
}

func TestPingAndUnknownCommand(t *testing.T) {
	srv, _, _ := startServer(t)
	c := dial(t, srv)

	assert.Equal(t, "RESP|OK|PONG", c.send(t, "PING"))
	assert.Equal(t, "RESP|ERROR|Unknown command: FOO", c.send(t, "FOO|1|2"))
}

func TestCommandWordIsCaseInsensitive(t *testing.T) {
	srv, _, _ := startServer(t)
	c := dial(t, srv)

	assert.Equal(t, "RESP|OK|PONG", c.send(t, "ping"))
}

func TestBlankLinesAreIgnored(t *testing.T) {
	srv, _, _ := startServer(t)
	c := dial(t, srv)

	_, err := c.conn.Write([]byte("\n   \n"))
	require.NoError(t, err)
	assert.Equal(t, "RESP|OK|PONG", c.send(t, "PING"), "blank lines get no response and do not shift replies")
}

func TestUserCommands(t *testing.T) {
	srv, _, _ := startServer(t)
	c := dial(t, srv)

	assert.Equal(t, "RESP|OK|User added", c.send(t, "ADD_USER|jdoe|secret|Jane|Doe|j@e.com|true"))
	assert.Equal(t, "RESP|ERROR|User already exists: jdoe", c.send(t, "ADD_USER|jdoe|other|Jane|Doe|j@e.com|false"))
	assert.True(t, strings.HasPrefix(c.send(t, "ADD_USER|short"), "RESP|ERROR|"))

	assert.Equal(t, "RESP|OK|Login successful", c.send(t, "LOGIN|jdoe|secret"))
	assert.Equal(t, "RESP|ERROR|Invalid username or password", c.send(t, "LOGIN|jdoe|wrong"))
	assert.True(t, strings.HasPrefix(c.send(t, "LOGIN|jdoe"), "RESP|ERROR|"))

	assert.Equal(t, "RESP|OK|User removed", c.send(t, "REMOVE_USER|jdoe"))
	assert.Equal(t, "RESP|ERROR|User not found: jdoe", c.send(t, "REMOVE_USER|jdoe"))
}

func TestTeeTimeBookingFlow(t *testing.T) {
	srv, st, _ := startServer(t)
	c := dial(t, srv)

	resp := c.send(t, "ADD_TT|2025-11-15|09:00|Hole 1|4|30")
	require.True(t, strings.HasPrefix(resp, "RESP|OK|"))
	created, err := models.TeeTimeFromFileString(strings.TrimPrefix(resp, "RESP|OK|"))
	require.NoError(t, err)

	assert.Equal(t, "RESP|OK|"+created.ID+";2025-11-15;09:00;4;4;30", c.send(t, "LIST_TT|2025-11-15"))
	assert.Equal(t, "RESP|OK", c.send(t, "LIST_TT|2099-01-01"), "no slots on that date means an empty payload")
	assert.True(t, strings.HasPrefix(c.send(t, "LIST_TT"), "RESP|ERROR|"))

	resp = c.send(t, "BOOK_TT|"+created.ID+"|2|jdoe")
	require.True(t, strings.HasPrefix(resp, "RESP|OK|"))
	res, err := models.ReservationFromFileString(strings.TrimPrefix(resp, "RESP|OK|"))
	require.NoError(t, err)
	assert.Equal(t, "jdoe", res.Username)
	assert.Equal(t, 60.0, res.Price)

	assert.Equal(t, "RESP|ERROR|Not enough spots available", c.send(t, "BOOK_TT|"+created.ID+"|3|other"))
	assert.Equal(t, "RESP|ERROR|Invalid party size: two", c.send(t, "BOOK_TT|"+created.ID+"|two|jdoe"))
	assert.Equal(t, "RESP|ERROR|Tee time not found: TT999", c.send(t, "BOOK_TT|TT999|2|jdoe"))

	assert.Equal(t, "RESP|OK|"+res.ToFileString(), c.send(t, "GET_RESERVATIONS|jdoe"))

	assert.Equal(t, "RESP|OK|Cancelled", c.send(t, "CANCEL_RESERVATION|"+res.ID))
	assert.Equal(t, "RESP|ERROR|Reservation not found: "+res.ID, c.send(t, "CANCEL_RESERVATION|"+res.ID))

	tt, found := st.FindTeeTime(created.ID)
	require.True(t, found)
	assert.Equal(t, 4, tt.AvailableSpots())

	assert.Equal(t, "RESP|OK|Removed", c.send(t, "REMOVE_TT|"+created.ID))
	assert.Equal(t, "RESP|ERROR|Tee time not found: "+created.ID, c.send(t, "REMOVE_TT|"+created.ID))
}

func TestEventCommands(t *testing.T) {
	srv, _, _ := startServer(t)
	c := dial(t, srv)

	assert.Equal(t, "RESP|OK", c.send(t, "LIST_EVENTS"))

	resp := c.send(t, "ADD_EVENT|Club Championship|2025-11-20|08:00|2025-11-21|18:00|55")
	require.True(t, strings.HasPrefix(resp, "RESP|OK|EVENT,"))
	event, err := models.EventFromFileString(strings.TrimPrefix(resp, "RESP|OK|"))
	require.NoError(t, err)

	assert.Equal(t,
		"RESP|OK|"+event.ID+";Club Championship;2025-11-20;08:00;2025-11-21;18:00;200;All;55",
		c.send(t, "LIST_EVENTS"))

	resp = c.send(t, "BOOK_EVENT|"+event.ID+"|4|jdoe")
	require.True(t, strings.HasPrefix(resp, "RESP|OK|"))
	res, err := models.ReservationFromFileString(strings.TrimPrefix(resp, "RESP|OK|"))
	require.NoError(t, err)
	assert.Equal(t, 220.0, res.Price)

	assert.Equal(t, "RESP|ERROR|Event not found: missing", c.send(t, "BOOK_EVENT|missing|4|jdoe"))
	assert.True(t, strings.HasPrefix(c.send(t, "BOOK_EVENT|"+event.ID+"|0|jdoe"), "RESP|ERROR|"))
}

func TestSettingsCommands(t *testing.T) {
	srv, _, _ := startServer(t)
	c := dial(t, srv)

	defaults := models.DefaultCourseSettings()
	assert.Equal(t, "RESP|OK|"+defaults.ToFileString(), c.send(t, "GET_SETTINGS"))

	updated := defaults
	updated.CourseName = "Pine Valley"
	updated.OpenDays[6] = false
	fields := strings.ReplaceAll(updated.ToFileString(), ",", "|")
	assert.Equal(t, "RESP|OK|Settings updated", c.send(t, "SET_SETTINGS|"+fields))
	assert.Equal(t, "RESP|OK|"+updated.ToFileString(), c.send(t, "GET_SETTINGS"))

	bad := updated
	bad.OpeningTime = "25:61"
	badFields := strings.ReplaceAll(bad.ToFileString(), ",", "|")
	assert.True(t, strings.HasPrefix(c.send(t, "SET_SETTINGS|"+badFields), "RESP|ERROR|"))
	assert.True(t, strings.HasPrefix(c.send(t, "SET_SETTINGS|just|three|fields"), "RESP|ERROR|"))
}

func TestMutationsFlushToDisk(t *testing.T) {
	srv, _, dir := startServer(t)
	c := dial(t, srv)

	c.send(t, "ADD_USER|jdoe|secret|Jane|Doe|j@e.com|true")

	data, err := os.ReadFile(filepath.Join(dir, "users.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "jdoe,secret,Jane,Doe,j@e.com,true,false")
}

func TestStartAndStopAreIdempotent(t *testing.T) {
	dir := t.TempDir()
	srv := server.New("127.0.0.1:0", store.New(dir), logger.NewLogger(""))

	srv.Stop() // before start: no-op

	require.NoError(t, srv.Start())
	addr := srv.Addr()
	require.NoError(t, srv.Start(), "second start is a no-op")
	assert.Equal(t, addr.String(), srv.Addr().String(), "second start must not rebind")

	srv.Stop()
	srv.Stop() // again: no-op
	assert.Nil(t, srv.Addr())
}

func TestStopTerminatesTrackedConnections(t *testing.T) {
	srv, _, _ := startServer(t)

	clients := []*client{dial(t, srv), dial(t, srv), dial(t, srv)}
	for _, c := range clients {
		assert.Equal(t, "RESP|OK|PONG", c.send(t, "PING"))
	}
	assert.Equal(t, 3, srv.ConnCount())

	done := make(chan struct{})
	go func() {
		srv.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return, idle workers were not reclaimed")
	}

	assert.Equal(t, 0, srv.ConnCount())
	assert.Nil(t, srv.Addr())

	for _, c := range clients {
		c.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, err := c.reader.ReadString('\n')
		assert.Error(t, err, "forced close must unblock the client side")
	}
}
