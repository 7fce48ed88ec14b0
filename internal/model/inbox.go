package model

import "time"

type InboxSnapshot struct {
	ID        uint       `json:"id"`
	Src       string     `json:"src"`
	Dst       string     `json:"dst"`
	StartedAt time.Time  `json:"started_at"`
	Moved     int        `json:"moved"`
	Failed    int        `json:"failed"`
	LastMove  *time.Time `json:"last_move,omitempty"`
}
