package nluService

import (
	"SecondSonsNLU/internal/api/nlu"
	nluRepository "SecondSonsNLU/internal/api/nlu/repository"
	"SecondSonsNLU/pkg/nlp"
	"SecondSonsNLU/pkg/utils"
	"context"

	"github.com/sirupsen/logrus"
)

type INLUService interface {
	Understand(ctx context.Context, req nlu.NLURequest) (*nlu.NLUResponse, error)
	Continue(ctx context.Context, req nlu.NLUContinueRequest) (*nlu.NLUResponse, error)
	ListIntents(ctx context.Context) nlu.IntentListResponse
	ListUtterances(ctx context.Context, page, limit string) (*nlu.UtteranceListResponse, error)
}

type nluService struct {
	log        *logrus.Logger
	engine     nlp.ISlotEngine
	classifier nlp.IIntentClassifier
	nluRepo    nluRepository.Repository
	utils      utils.IUtils
}

// NewNLUService wires the slot engine and classifier. nluRepo may be nil, which
// disables the utterance log.
func NewNLUService(
	log *logrus.Logger,
	engine nlp.ISlotEngine,
	classifier nlp.IIntentClassifier,
	nluRepo nluRepository.Repository,
	utils utils.IUtils,
) INLUService {
	return &nluService{
		log:        log,
		engine:     engine,
		classifier: classifier,
		nluRepo:    nluRepo,
		utils:      utils,
	}
}
