package nluHandler

import (
	nluService "SecondSonsNLU/internal/api/nlu/service"
	"SecondSonsNLU/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type NLUHandler struct {
	log        *logrus.Logger
	validator  *validator.Validate
	middleware middleware.Middleware
	nluService nluService.INLUService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ns nluService.INLUService,
) *NLUHandler {
	return &NLUHandler{
		log:        log,
		validator:  validate,
		middleware: middleware,
		nluService: ns,
	}
}

func (h *NLUHandler) Start(srv fiber.Router) {
	nlu := srv.Group("/nlu")

	nlu.Post("", h.middleware.NewRateLimiter, h.Understand)
	nlu.Post("/continue", h.middleware.NewRateLimiter, h.Continue)
	nlu.Get("/intents", h.ListIntents)
	nlu.Get("/utterances", h.ListUtterances)
}
