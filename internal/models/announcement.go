package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Announcement struct {
	ID        string
	Title     string
	Content   string
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type AnnouncementInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"`
}

func (in AnnouncementInput) Announcement(now time.Time) (Announcement, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" || content == "" {
		return Announcement{}, invalid("title", "Please fill in all required fields")
	}

	date, err := parseDate(in.Date, now)
	if err != nil {
		return Announcement{}, err
	}

	return Announcement{Title: title, Content: content, Date: date}, nil
}

// Balance is the singleton treasury/current record. A missing record reads
// as a zero balance with a zero UpdatedAt.
type Balance struct {
	Amount    decimal.Decimal
	UpdatedAt time.Time
}
