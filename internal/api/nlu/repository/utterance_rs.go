package nluRepository

import (
	"SecondSonsNLU/internal/entity"
	contextPkg "SecondSonsNLU/pkg/context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type UtteranceDB struct {
	ID               string         `db:"id"`
	RequestID        string         `db:"request_id"`
	Turn             string         `db:"turn"`
	Message          string         `db:"message"`
	Intent           string         `db:"intent"`
	Confidence       float64        `db:"confidence"`
	Source           string         `db:"source"`
	Slots            []byte         `db:"slots"`
	MissingSlots     []byte         `db:"missing_slots"`
	FollowupQuestion sql.NullString `db:"followup_question"`
	CreatedAt        time.Time      `db:"created_at"`
}

func (r *utterancesRepository) CreateUtterance(ctx context.Context, utterance entity.Utterance) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":                utterance.ID,
		"request_id":        utterance.RequestID,
		"turn":              utterance.Turn,
		"message":           utterance.Message,
		"intent":            utterance.Intent,
		"confidence":        utterance.Confidence,
		"source":            utterance.Source,
		"slots":             string(utterance.Slots),
		"missing_slots":     string(utterance.MissingSlots),
		"followup_question": utterance.FollowupQuestion,
		"created_at":        utterance.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateUtterance, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateUtterance")
		return err
	}
	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating utterance")
		return err
	}

	return nil
}

func (r *utterancesRepository) ListUtterances(ctx context.Context, limit, offset int) ([]entity.Utterance, int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []UtteranceDB

	query, args, err := sqlx.Named(queryListUtterances, map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListUtterances named query preparation err")
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListUtterances execution err")
		return nil, 0, err
	}

	var total int
	if err := r.q.GetContext(ctx, &total, queryCountUtterances); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountUtterances execution err")
		return nil, 0, err
	}

	utterances := make([]entity.Utterance, 0, len(rows))
	for _, row := range rows {
		utterances = append(utterances, r.makeUtterance(row))
	}

	return utterances, total, nil
}

func (r *utterancesRepository) makeUtterance(row UtteranceDB) entity.Utterance {
	var question *string
	if row.FollowupQuestion.Valid {
		question = &row.FollowupQuestion.String
	}

	return entity.Utterance{
		ID:               row.ID,
		RequestID:        row.RequestID,
		Turn:             row.Turn,
		Message:          row.Message,
		Intent:           row.Intent,
		Confidence:       row.Confidence,
		Source:           row.Source,
		Slots:            row.Slots,
		MissingSlots:     row.MissingSlots,
		FollowupQuestion: question,
		CreatedAt:        row.CreatedAt,
	}
}
