package models

import (
	"fmt"
	"strconv"
	"strings"
)

type User struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	HasPaid   bool
	IsAdmin   bool
}

// ToFileString encodes the user as one comma-joined record line.
func (u User) ToFileString() string {
	return strings.Join([]string{
		u.Username,
		u.Password,
		u.FirstName,
		u.LastName,
		u.Email,
		strconv.FormatBool(u.HasPaid),
		strconv.FormatBool(u.IsAdmin),
	}, ",")
}

// UserFromFileString parses one record line back into a User.
func UserFromFileString(line string) (User, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != 7 {
		return User{}, fmt.Errorf("user record: expected 7 fields, got %d", len(fields))
	}
	hasPaid, err := strconv.ParseBool(fields[5])
	if err != nil {
		return User{}, fmt.Errorf("user record: bad hasPaid: %w", err)
	}
	isAdmin, err := strconv.ParseBool(fields[6])
	if err != nil {
		return User{}, fmt.Errorf("user record: bad isAdmin: %w", err)
	}
	return User{
		Username:  fields[0],
		Password:  fields[1],
		FirstName: fields[2],
		LastName:  fields[3],
		Email:     fields[4],
		HasPaid:   hasPaid,
		IsAdmin:   isAdmin,
	}, nil
}
