package nluService

import (
	"SecondSonsNLU/internal/api/nlu"
	"SecondSonsNLU/internal/entity"
	contextPkg "SecondSonsNLU/pkg/context"
	"SecondSonsNLU/pkg/nlp"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const maxUtterancePage = 100

func (s *nluService) Understand(ctx context.Context, req nlu.NLURequest) (*nlu.NLUResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, nlu.ErrEmptyMessage
	}

	result, err := s.classifier.Classify(ctx, text)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to classify intent")
		return nil, nlu.ErrClassificationFailed
	}

	intent := nlp.ApplyDomainHeuristics(text, result.Intent)
	if intent != result.Intent {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"predicted":  result.Intent,
			"intent":     intent,
		}).Debug("Domain heuristics remapped intent")
	}

	assessment := s.engine.ExtractAndAssess(text, intent)

	s.log.WithFields(logrus.Fields{
		"request_id":    requestID,
		"intent":        intent,
		"confidence":    result.Confidence,
		"source":        result.Source,
		"missing_slots": assessment.Missing,
	}).Info("Understood message")

	ctx = contextPkg.WithTurn(ctx, nlu.TurnInitial)
	s.recordUtterance(ctx, text, intent, result, assessment)

	confidence := result.Confidence
	return &nlu.NLUResponse{
		Intent:           intent,
		Confidence:       &confidence,
		IntentScores:     result.Scores,
		Source:           result.Source,
		Slots:            assessment.Slots,
		MissingSlots:     assessment.Missing,
		FollowupQuestion: assessment.Question,
	}, nil
}

func (s *nluService) Continue(ctx context.Context, req nlu.NLUContinueRequest) (*nlu.NLUResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, nlu.ErrEmptyMessage
	}

	intent := nlp.Intent(req.Intent)
	if !intent.Known() {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"intent":     intent,
		}).Warn("Continuing with an intent outside the vocabulary")
	}

	assessment := s.engine.ContinueAndAssess(text, intent, req.PreviousSlots)

	s.log.WithFields(logrus.Fields{
		"request_id":    requestID,
		"intent":        intent,
		"missing_slots": assessment.Missing,
	}).Info("Continued conversation")

	ctx = contextPkg.WithTurn(ctx, nlu.TurnContinue)
	s.recordUtterance(ctx, text, intent, nil, assessment)

	return &nlu.NLUResponse{
		Intent:           intent,
		Slots:            assessment.Slots,
		MissingSlots:     assessment.Missing,
		FollowupQuestion: assessment.Question,
	}, nil
}

func (s *nluService) ListIntents(_ context.Context) nlu.IntentListResponse {
	intents := make([]nlu.IntentInfo, 0, len(nlp.Intents))
	for _, intent := range nlp.Intents {
		intents = append(intents, nlu.IntentInfo{
			Name:      intent,
			Questions: nlp.FollowUpQuestions(intent),
		})
	}
	return nlu.IntentListResponse{Intents: intents}
}

func (s *nluService) ListUtterances(ctx context.Context, page, limit string) (*nlu.UtteranceListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if s.nluRepo == nil {
		return nil, nlu.ErrUtteranceLogDisabled
	}

	pageLimit, offset, pageNumber := s.utils.Paginate(page, limit, maxUtterancePage)

	repo, err := s.nluRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, nlu.ErrListUtterances
	}

	rows, total, err := repo.Utterances.ListUtterances(ctx, pageLimit, offset)
	if err != nil {
		return nil, nlu.ErrListUtterances
	}

	utterances := make([]nlu.UtteranceResponse, 0, len(rows))
	for _, row := range rows {
		utterances = append(utterances, s.makeUtteranceResponse(requestID, row))
	}

	return &nlu.UtteranceListResponse{
		Utterances: utterances,
		Total:      total,
		Page:       pageNumber,
		Limit:      pageLimit,
	}, nil
}

// recordUtterance stores the turn for later retraining. Failures never reach the caller.
func (s *nluService) recordUtterance(ctx context.Context, text string, intent nlp.Intent, result *nlp.IntentResult, assessment nlp.Assessment) {
	if s.nluRepo == nil {
		return
	}
	requestID := contextPkg.GetRequestID(ctx)

	fields := logrus.Fields{"request_id": requestID}

	slots, err := jsoniter.Marshal(assessment.Slots)
	if err != nil {
		fields["error"] = err.Error()
		s.log.WithFields(fields).Warn("Failed to encode slots for utterance log")
		return
	}
	missing, err := jsoniter.Marshal(assessment.Missing)
	if err != nil {
		fields["error"] = err.Error()
		s.log.WithFields(fields).Warn("Failed to encode missing slots for utterance log")
		return
	}

	now := time.Now()
	id, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		fields["error"] = err.Error()
		s.log.WithFields(fields).Warn("Failed to generate utterance id")
		return
	}

	utterance := entity.Utterance{
		ID:               id,
		RequestID:        requestID,
		Turn:             contextPkg.GetTurn(ctx),
		Message:          text,
		Intent:           string(intent),
		Slots:            slots,
		MissingSlots:     missing,
		FollowupQuestion: assessment.Question,
		CreatedAt:        now,
	}
	if result != nil {
		utterance.Confidence = result.Confidence
		utterance.Source = result.Source
	}

	repo, err := s.nluRepo.NewClient(false)
	if err != nil {
		fields["error"] = err.Error()
		s.log.WithFields(fields).Warn("Failed to create repository client for utterance log")
		return
	}

	if err := repo.Utterances.CreateUtterance(ctx, utterance); err != nil {
		fields["error"] = err.Error()
		s.log.WithFields(fields).Warn("Failed to record utterance")
	}
}

func (s *nluService) makeUtteranceResponse(requestID string, row entity.Utterance) nlu.UtteranceResponse {
	resp := nlu.UtteranceResponse{
		ID:               row.ID,
		RequestID:        row.RequestID,
		Turn:             row.Turn,
		Message:          row.Message,
		Intent:           nlp.Intent(row.Intent),
		Confidence:       row.Confidence,
		Source:           row.Source,
		MissingSlots:     []string{},
		FollowupQuestion: row.FollowupQuestion,
		CreatedAt:        row.CreatedAt,
	}

	if err := jsoniter.Unmarshal(row.Slots, &resp.Slots); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":   requestID,
			"utterance_id": row.ID,
			"error":        err.Error(),
		}).Warn("Stored slots are unreadable")
	}
	if err := jsoniter.Unmarshal(row.MissingSlots, &resp.MissingSlots); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":   requestID,
			"utterance_id": row.ID,
			"error":        err.Error(),
		}).Warn("Stored missing slots are unreadable")
	}

	return resp
}
