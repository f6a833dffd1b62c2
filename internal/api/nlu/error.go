package nlu

import "SecondSonsNLU/pkg/response"

const (
	TurnInitial  = "initial"
	TurnContinue = "continue"
)

var (
	ErrEmptyMessage         = response.NewError(400, "message must not be empty")
	ErrClassificationFailed = response.NewError(502, "intent classification failed")
	ErrUtteranceLogDisabled = response.NewError(503, "utterance log is not enabled")
	ErrListUtterances       = response.NewError(500, "failed to list utterances")
)
