package domain

import "time"

type BrowseEventType string

const (
	EventSearch  BrowseEventType = "search"
	EventFilter  BrowseEventType = "filter"
	EventCartAdd BrowseEventType = "cart_add"
)

type BrowseEvent struct {
	EventID   string
	ClientID  string
	Type      BrowseEventType
	Term      string
	Category  string
	ProductID int
	At        time.Time
}
