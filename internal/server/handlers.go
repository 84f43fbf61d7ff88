package server

import (
	"strconv"
	"strings"

	"ms-teetime/internal/models"
	"ms-teetime/internal/protocol"
)

func (w *worker) handleLogin(args []string) string {
	if len(args) < 2 {
		return protocol.Error("LOGIN requires username and password")
	}
	if !w.store.ValidateLogin(args[0], args[1]) {
		return protocol.Error("Invalid username or password")
	}
	return protocol.OK("Login successful")
}

func (w *worker) handleAddUser(args []string) string {
	if len(args) < 6 {
		return protocol.Error("ADD_USER requires username, password, first name, last name, email, hasPaid")
	}
	hasPaid, err := strconv.ParseBool(args[5])
	if err != nil {
		return protocol.Errorf("Invalid hasPaid flag: %s", args[5])
	}
	user := models.User{
		Username:  args[0],
		Password:  args[1],
		FirstName: args[2],
		LastName:  args[3],
		Email:     args[4],
		HasPaid:   hasPaid,
	}
	if !w.store.AddUser(user) {
		return protocol.Errorf("User already exists: %s", args[0])
	}
	w.flushStore()
	return protocol.OK("User added")
}

func (w *worker) handleRemoveUser(args []string) string {
	if len(args) < 1 || args[0] == "" {
		return protocol.Error("REMOVE_USER requires a username")
	}
	if !w.store.RemoveUser(args[0]) {
		return protocol.Errorf("User not found: %s", args[0])
	}
	w.flushStore()
	return protocol.OK("User removed")
}

func (w *worker) handleListTeeTimes(args []string) string {
	if len(args) < 1 || args[0] == "" {
		return protocol.Error("LIST_TT requires a date")
	}
	var records []string
	for _, t := range w.store.GetTeeTimesByDate(args[0]) {
		records = append(records, protocol.FormatTeeTime(t))
	}
	return protocol.OK(records...)
}

func (w *worker) handleAddTeeTime(args []string) string {
	if len(args) < 5 {
		return protocol.Error("ADD_TT requires date, time, tee box, max party size, price per person")
	}
	maxPartySize, err := strconv.Atoi(args[3])
	if err != nil {
		return protocol.Errorf("Invalid max party size: %s", args[3])
	}
	price, err := strconv.ParseFloat(args[4], 64)
	if err != nil {
		return protocol.Errorf("Invalid price: %s", args[4])
	}
	t, err := w.store.CreateTeeTime(args[0], args[1], args[2], maxPartySize, price)
	if err != nil {
		return protocol.Error(err.Error())
	}
	w.flushStore()
	return protocol.OK(t.ToFileString())
}

func (w *worker) handleRemoveTeeTime(args []string) string {
	if len(args) < 1 || args[0] == "" {
		return protocol.Error("REMOVE_TT requires a tee time id")
	}
	if !w.store.RemoveTeeTime(args[0]) {
		return protocol.Errorf("Tee time not found: %s", args[0])
	}
	w.flushStore()
	return protocol.OK("Removed")
}

func (w *worker) handleBookTeeTime(args []string) string {
	if len(args) < 3 {
		return protocol.Error("BOOK_TT requires tee time id, party size, username")
	}
	partySize, err := strconv.Atoi(args[1])
	if err != nil {
		return protocol.Errorf("Invalid party size: %s", args[1])
	}
	res, found, err := w.store.BookTeeTime(args[0], partySize, args[2])
	if err != nil {
		return protocol.Error(err.Error())
	}
	if !found {
		return protocol.Errorf("Tee time not found: %s", args[0])
	}
	if res == nil {
		return protocol.Error("Not enough spots available")
	}
	w.flushStore()
	return protocol.OK(res.ToFileString())
}

func (w *worker) handleListEvents() string {
	var records []string
	for _, e := range w.store.GetAllEvents() {
		records = append(records, protocol.FormatEvent(e))
	}
	return protocol.OK(records...)
}

func (w *worker) handleAddEvent(args []string) string {
	if len(args) < 6 {
		return protocol.Error("ADD_EVENT requires name, date, time, end date, end time, price")
	}
	price, err := strconv.ParseFloat(args[5], 64)
	if err != nil {
		return protocol.Errorf("Invalid price: %s", args[5])
	}
	e, err := w.store.CreateEvent(args[0], args[1], args[2], args[3], args[4], price)
	if err != nil {
		return protocol.Error(err.Error())
	}
	w.flushStore()
	return protocol.OK(e.ToFileString())
}

func (w *worker) handleBookEvent(args []string) string {
	if len(args) < 3 {
		return protocol.Error("BOOK_EVENT requires event id, party size, username")
	}
	partySize, err := strconv.Atoi(args[1])
	if err != nil {
		return protocol.Errorf("Invalid party size: %s", args[1])
	}
	res, found, err := w.store.BookEvent(args[0], partySize, args[2])
	if err != nil {
		return protocol.Error(err.Error())
	}
	if !found {
		return protocol.Errorf("Event not found: %s", args[0])
	}
	if res == nil {
		return protocol.Error("Not enough spots available")
	}
	w.flushStore()
	return protocol.OK(res.ToFileString())
}

func (w *worker) handleGetReservations(args []string) string {
	if len(args) < 1 || args[0] == "" {
		return protocol.Error("GET_RESERVATIONS requires a username")
	}
	var records []string
	for _, r := range w.store.GetReservationsByUser(args[0]) {
		records = append(records, r.ToFileString())
	}
	return protocol.OK(records...)
}

func (w *worker) handleCancelReservation(args []string) string {
	if len(args) < 1 || args[0] == "" {
		return protocol.Error("CANCEL_RESERVATION requires a reservation id")
	}
	if !w.store.CancelReservation(args[0]) {
		return protocol.Errorf("Reservation not found: %s", args[0])
	}
	w.flushStore()
	return protocol.OK("Cancelled")
}

func (w *worker) handleGetSettings() string {
	return protocol.OK(w.store.GetCourseSettings().ToFileString())
}

func (w *worker) handleSetSettings(args []string) string {
	if len(args) != 15 {
		return protocol.Error("SET_SETTINGS requires 15 fields")
	}
	settings, err := models.CourseSettingsFromFileString(strings.Join(args, ","))
	if err != nil {
		return protocol.Errorf("Invalid settings: %v", err)
	}
	if err := w.store.SetCourseSettings(settings); err != nil {
		return protocol.Errorf("Invalid settings: %v", err)
	}
	w.flushStore()
	return protocol.OK("Settings updated")
}
