package repository

import "time"

// RecentDocument is a row of the recent documents history.
type RecentDocument struct {
	ID         string
	Path       string
	Name       string
	Module     string
	UseCount   int
	LastUsedAt time.Time
}
