package config

import (
	"SecondSonsNLU/database/postgres"
	nluHandler "SecondSonsNLU/internal/api/nlu/handler"
	nluRepository "SecondSonsNLU/internal/api/nlu/repository"
	nluService "SecondSonsNLU/internal/api/nlu/service"
	"SecondSonsNLU/internal/middleware"
	"SecondSonsNLU/pkg/gemini"
	"SecondSonsNLU/pkg/log"
	"SecondSonsNLU/pkg/nlp"
	"SecondSonsNLU/pkg/openai"
	"SecondSonsNLU/pkg/redis"
	"SecondSonsNLU/pkg/utils"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

const defaultTimezone = "Asia/Kolkata"

type ServerOption func(*Server) error

type Server struct {
	engine       *fiber.App
	db           *sqlx.DB
	log          *logrus.Logger
	middleware   middleware.Middleware
	validator    *validator.Validate
	utils        utils.IUtils
	handlers     []handler
	slotEngine   nlp.ISlotEngine
	classifier   nlp.IIntentClassifier
	redisServer  redis.IRedis
	geminiClient gemini.IGemini
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.slotEngine == nil {
		return nil, fmt.Errorf("slot engine is required")
	}
	if server.classifier == nil {
		return nil, fmt.Errorf("intent classifier is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

// WithDatabase connects the utterance log. Without DB_HOST the log stays disabled.
func WithDatabase() ServerOption {
	return func(s *Server) error {
		if !postgres.Enabled() {
			if s.log != nil {
				s.log.Info("DB_HOST not set, utterance log disabled")
			}
			return nil
		}

		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

// WithRedisServer enables the LLM intent cache when REDIS_ADDRESS is set.
func WithRedisServer() ServerOption {
	return func(s *Server) error {
		if os.Getenv("REDIS_ADDRESS") == "" {
			return nil
		}
		s.redisServer = redis.New()
		return nil
	}
}

func WithSlotEngine() ServerOption {
	return func(s *Server) error {
		name := os.Getenv("NLU_TIMEZONE")
		if name == "" {
			name = defaultTimezone
		}

		loc, err := time.LoadLocation(name)
		if err != nil {
			if s.log != nil {
				s.log.Warnf("Unknown NLU_TIMEZONE %q, using local time: %v", name, err)
			}
			loc = time.Local
		}

		s.slotEngine = nlp.NewSlotEngine(nlp.WithLocation(loc))
		return nil
	}
}

func WithClassifier() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before classifier")
		}

		minConfidence, _ := strconv.ParseFloat(os.Getenv("CLASSIFIER_MIN_CONFIDENCE"), 64)
		keyword := nlp.NewKeywordClassifier(minConfidence)

		var llm nlp.IIntentClassifier
		provider := strings.ToLower(strings.TrimSpace(os.Getenv("CLASSIFIER_PROVIDER")))

		switch provider {
		case "", "keyword":
			s.classifier = keyword
			return nil
		case "gemini":
			client, err := gemini.NewGeminiClient()
			if err != nil {
				s.log.Errorf("Failed to create Gemini client: %v", err)
				return fmt.Errorf("failed to create Gemini client: %w", err)
			}
			s.geminiClient = client
			llm = client
		case "openai":
			client, err := openai.NewChatGPT()
			if err != nil {
				s.log.Errorf("Failed to create OpenAI client: %v", err)
				return fmt.Errorf("failed to create OpenAI client: %w", err)
			}
			llm = client
		default:
			return fmt.Errorf("unknown classifier provider %q", provider)
		}

		if s.redisServer != nil {
			llm = nlp.NewCachedClassifier(llm, s.redisServer)
		}

		s.classifier = nlp.NewFallbackClassifier(llm, keyword, func(err error) {
			s.log.WithFields(log.Fields{
				"provider": provider,
				"error":    err.Error(),
			}).Warn("LLM classifier failed, falling back to keywords")
		})
		s.log.Infof("Using %s intent classifier with keyword fallback", provider)
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	var nluRepo nluRepository.Repository
	if s.db != nil {
		nluRepo = nluRepository.New(s.db, s.log)
	}

	nluServices := nluService.NewNLUService(s.log, s.slotEngine, s.classifier, nluRepo, s.utils)
	nluHandlers := nluHandler.New(s.log, s.validator, s.middleware, nluServices)

	s.handlers = append(s.handlers, nluHandlers)
}

func (s *Server) Run() error {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	origins := allowedOrigins()
	s.engine.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,X-Request-ID",
		ExposeHeaders:    "X-Request-ID",
		AllowCredentials: origins != "*",
	}))
	s.engine.Use(s.middleware.NewLoggingMiddleware)

	s.setupHealthCheck()

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) Shutdown() error {
	err := s.engine.ShutdownWithTimeout(10 * time.Second)

	if s.geminiClient != nil {
		s.geminiClient.Close()
	}
	if s.redisServer != nil {
		if cerr := s.redisServer.Close(); cerr != nil {
			s.log.Warnf("Failed to close Redis client: %v", cerr)
		}
	}
	if s.db != nil {
		if cerr := s.db.Close(); cerr != nil {
			s.log.Warnf("Failed to close database: %v", cerr)
		}
	}

	return err
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message":           "Server is Healthy!",
			"utterance_log":     s.db != nil,
			"intent_cache":      s.redisServer != nil,
			"supported_intents": len(nlp.Intents),
		})
	})
}

func allowedOrigins() string {
	origins := os.Getenv("ALLOWED_ORIGINS")
	if origins == "" {
		return "http://localhost:3000"
	}
	return origins
}
