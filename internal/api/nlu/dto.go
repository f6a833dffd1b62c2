package nlu

import (
	"SecondSonsNLU/pkg/nlp"
	"time"
)

type NLURequest struct {
	Message string `json:"message" validate:"required,max=1000"`
}

type NLUContinueRequest struct {
	Message       string    `json:"message" validate:"required,max=1000"`
	Intent        string    `json:"intent" validate:"required,max=64"`
	PreviousSlots nlp.Slots `json:"previous_slots"`
}

type NLUResponse struct {
	Intent           nlp.Intent             `json:"intent"`
	Confidence       *float64               `json:"confidence,omitempty"`
	IntentScores     map[nlp.Intent]float64 `json:"intent_scores,omitempty"`
	Source           string                 `json:"source,omitempty"`
	Slots            nlp.Slots              `json:"slots"`
	MissingSlots     []string               `json:"missing_slots"`
	FollowupQuestion *string                `json:"followup_question"`
}

type IntentInfo struct {
	Name      nlp.Intent `json:"name"`
	Questions []string   `json:"questions"`
}

type IntentListResponse struct {
	Intents []IntentInfo `json:"intents"`
}

type UtteranceResponse struct {
	ID               string     `json:"id"`
	RequestID        string     `json:"request_id"`
	Turn             string     `json:"turn"`
	Message          string     `json:"message"`
	Intent           nlp.Intent `json:"intent"`
	Confidence       float64    `json:"confidence"`
	Source           string     `json:"source"`
	Slots            nlp.Slots  `json:"slots"`
	MissingSlots     []string   `json:"missing_slots"`
	FollowupQuestion *string    `json:"followup_question"`
	CreatedAt        time.Time  `json:"created_at"`
}

type UtteranceListResponse struct {
	Utterances []UtteranceResponse `json:"utterances"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
}
