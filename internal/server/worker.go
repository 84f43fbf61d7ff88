package server

import (
	"bufio"
	"fmt"
	"net"
	"strings"

	"ms-teetime/internal/logger"
	"ms-teetime/internal/protocol"
	"ms-teetime/internal/store"
)

// worker owns one client connection: it reads a line, dispatches it, writes
// the single response line, and loops until the stream ends or fails.
type worker struct {
	conn  net.Conn
	store *store.Store
	log   *logger.Logger
}

func newWorker(conn net.Conn, st *store.Store, log *logger.Logger) *worker {
	return &worker{conn: conn, store: st, log: log}
}

func (w *worker) Run() {
	defer w.conn.Close()

	remote := w.conn.RemoteAddr().String()
	scanner := bufio.NewScanner(w.conn)
	writer := bufio.NewWriter(w.conn)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		resp := w.dispatch(line)
		if _, err := writer.WriteString(resp + "\n"); err != nil {
			w.log.LogConn(remote, fmt.Sprintf("write failed: %v", err))
			return
		}
		if err := writer.Flush(); err != nil {
			w.log.LogConn(remote, fmt.Sprintf("write failed: %v", err))
			return
		}
	}
	w.log.LogConn(remote, "disconnected")
}

// dispatch routes one request line to its handler. A panicking handler is
// converted to a generic error response so a bad command never tears the
// connection down.
func (w *worker) dispatch(line string) (resp string) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("CONN", fmt.Sprintf("handler panic: %v", r))
			resp = protocol.Error("Internal server error")
		}
	}()

	cmd, args := protocol.ParseRequest(line)
	w.log.LogProtocol(cmd, fmt.Sprintf("%d args", len(args)))

	switch cmd {
	case protocol.CmdPing:
		return protocol.OK("PONG")
	case protocol.CmdLogin:
		return w.handleLogin(args)
	case protocol.CmdAddUser:
		return w.handleAddUser(args)
	case protocol.CmdRemoveUser:
		return w.handleRemoveUser(args)
	case protocol.CmdListTeeTimes:
		return w.handleListTeeTimes(args)
	case protocol.CmdAddTeeTime:
		return w.handleAddTeeTime(args)
	case protocol.CmdRemoveTeeTime:
		return w.handleRemoveTeeTime(args)
	case protocol.CmdBookTeeTime:
		return w.handleBookTeeTime(args)
	case protocol.CmdListEvents:
		return w.handleListEvents()
	case protocol.CmdAddEvent:
		return w.handleAddEvent(args)
	case protocol.CmdBookEvent:
		return w.handleBookEvent(args)
	case protocol.CmdGetReservations:
		return w.handleGetReservations(args)
	case protocol.CmdCancelReservation:
		return w.handleCancelReservation(args)
	case protocol.CmdGetSettings:
		return w.handleGetSettings()
	case protocol.CmdSetSettings:
		return w.handleSetSettings(args)
	default:
		return protocol.Errorf("Unknown command: %s", cmd)
	}
}

// flushStore persists the whole store after a successful mutation. A failure
// is logged, never surfaced: the mutation already happened in memory.
func (w *worker) flushStore() {
	if err := w.store.SaveToFile(); err != nil {
		w.log.Error("STORE", fmt.Sprintf("save failed: %v", err))
	}
}
