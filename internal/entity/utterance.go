package entity

import "time"

// Utterance is one NLU turn as captured for classifier retraining.
type Utterance struct {
	ID               string    `db:"id"`
	RequestID        string    `db:"request_id"`
	Turn             string    `db:"turn"`
	Message          string    `db:"message"`
	Intent           string    `db:"intent"`
	Confidence       float64   `db:"confidence"`
	Source           string    `db:"source"`
	Slots            []byte    `db:"slots"`
	MissingSlots     []byte    `db:"missing_slots"`
	FollowupQuestion *string   `db:"followup_question"`
	CreatedAt        time.Time `db:"created_at"`
}
