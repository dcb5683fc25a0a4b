package entity

import "time"

// Rule types
const (
	RuleTypeFollow = "follow"
	RuleTypeAvoid  = "avoid"
)

// Event categories
const (
	CategoryWork   = "work"
	CategoryStudy  = "study"
	CategoryBreak  = "break"
	CategorySkills = "skills"
)

type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Level        int    `json:"level"`
	Experience   int    `json:"experience"`
	Points       int    `json:"points"`
	Streak       int    `json:"streak"`
}

type Task struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	Points      int       `json:"points"`
	IsCompleted bool      `json:"isCompleted"`
	IsDefault   bool      `json:"isDefault"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Skill struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"userId"`
	Name          string `json:"name"`
	Level         int    `json:"level"`
	Experience    int    `json:"experience"`
	MaxExperience int    `json:"maxExperience"`
}

type Rule struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	Description string `json:"description"`
	Type        string `json:"type"`
	IsDefault   bool   `json:"isDefault"`
}

type Event struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Title       string    `json:"title"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
}
