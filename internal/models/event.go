package models

import (
	"strings"
	"time"
)

// EventStatus is a manually toggled flag; it is never derived from the
// event date.
type EventStatus string

const (
	Ongoing  EventStatus = "ongoing"
	Upcoming EventStatus = "upcoming"
)

func (s EventStatus) Valid() bool {
	return s == Ongoing || s == Upcoming
}

// Toggle flips ongoing and upcoming.
func (s EventStatus) Toggle() EventStatus {
	if s == Ongoing {
		return Upcoming
	}
	return Ongoing
}

type Event struct {
	ID          string
	Title       string
	Description string
	Date        time.Time
	Status      EventStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EventInput is the admin form payload for an event.
type EventInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Status      string `json:"status"`
}

// Event validates the input. Status defaults to upcoming.
func (in EventInput) Event(now time.Time) (Event, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" {
		return Event{}, invalid("title", "Please fill in all required fields")
	}

	status := EventStatus(strings.TrimSpace(in.Status))
	if status == "" {
		status = Upcoming
	}
	if !status.Valid() {
		return Event{}, invalid("status", "Status must be ongoing or upcoming")
	}

	date, err := parseDate(in.Date, now)
	if err != nil {
		return Event{}, err
	}

	return Event{
		Title:       title,
		Description: description,
		Date:        date,
		Status:      status,
	}, nil
}
