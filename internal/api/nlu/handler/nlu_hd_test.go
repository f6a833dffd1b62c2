package nluHandler

import (
	"SecondSonsNLU/internal/api/nlu"
	nluService "SecondSonsNLU/internal/api/nlu/service"
	"SecondSonsNLU/internal/middleware"
	"SecondSonsNLU/pkg/nlp"
	"SecondSonsNLU/pkg/utils"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	zone := time.FixedZone("IST", 5*3600+1800)
	engine := nlp.NewSlotEngine(
		nlp.WithClock(func() time.Time { return time.Date(2026, 10, 19, 10, 0, 0, 0, zone) }),
		nlp.WithLocation(zone),
	)
	svc := nluService.NewNLUService(logger, engine, nlp.NewKeywordClassifier(0.3), nil, utils.New())

	mw := middleware.New(logger)
	app := fiber.New(fiber.Config{
		JSONEncoder: jsoniter.Marshal,
		JSONDecoder: jsoniter.Unmarshal,
	})
	app.Use(mw.NewRequestIDMiddleware())
	New(logger, validator.New(), mw, svc).Start(app.Group("/api/v1"))

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	var decoded map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	if err := jsoniter.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("%s %s: undecodable body %q", method, path, raw)
	}
	return resp, decoded
}

func TestUnderstand_CabRoute(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/api/v1/nlu", `{"message":"book me a cab from btm to indiranagar"}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status %d, body %v", resp.StatusCode, body)
	}

	if body["intent"] != string(nlp.IntentBookCab) {
		t.Errorf("intent = %v", body["intent"])
	}
	slots := body["slots"].(map[string]interface{})
	if slots["origin"] != "btm" || slots["destination"] != "indiranagar" {
		t.Errorf("unexpected slots %v", slots)
	}
	if _, ok := slots["datetime_iso"]; !ok {
		t.Error("expected null slots to be serialized")
	}
	if body["followup_question"] != nlp.QuestionCabDatetime {
		t.Errorf("followup_question = %v", body["followup_question"])
	}
	if resp.Header.Get(middleware.RequestIDKey) == "" {
		t.Error("expected a request id header")
	}
}

func TestUnderstand_BlankMessage(t *testing.T) {
	app := newTestApp(t)

	for _, payload := range []string{`{"message":"   "}`, `{}`, `not json`} {
		resp, body := doJSON(t, app, "POST", "/api/v1/nlu", payload)
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Errorf("payload %s: status %d, want 400", payload, resp.StatusCode)
		}
		if body["code"] != "VALIDATION_ERROR" {
			t.Errorf("payload %s: code %v", payload, body["code"])
		}
	}
}

func TestContinue_CompletesBooking(t *testing.T) {
	app := newTestApp(t)

	payload := `{
		"message": "tomorrow at 5pm",
		"intent": "book_cab",
		"previous_slots": {"origin": "btm", "destination": "indiranagar"}
	}`
	resp, body := doJSON(t, app, "POST", "/api/v1/nlu/continue", payload)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status %d, body %v", resp.StatusCode, body)
	}

	slots := body["slots"].(map[string]interface{})
	if slots["origin"] != "btm" || slots["datetime_iso"] == nil {
		t.Errorf("unexpected slots %v", slots)
	}
	if missing := body["missing_slots"].([]interface{}); len(missing) != 0 {
		t.Errorf("expected nothing missing, got %v", missing)
	}
	if body["followup_question"] != nil {
		t.Errorf("expected no question, got %v", body["followup_question"])
	}
}

func TestContinue_RequiresIntent(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/api/v1/nlu/continue", `{"message":"tomorrow"}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status %d, want 400", resp.StatusCode)
	}
}

func TestListIntents(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "GET", "/api/v1/nlu/intents", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}

	var list nlu.IntentListResponse
	raw, _ := jsoniter.Marshal(body)
	if err := jsoniter.Unmarshal(raw, &list); err != nil {
		t.Fatal(err)
	}
	if len(list.Intents) != len(nlp.Intents) {
		t.Errorf("expected %d intents, got %d", len(nlp.Intents), len(list.Intents))
	}
}

func TestListUtterances_Disabled(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "GET", "/api/v1/nlu/utterances?page=1", "")
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Errorf("status %d, want 503 (body %v)", resp.StatusCode, body)
	}
}

func TestContinue_IgnoresUnknownPreviousSlotKeys(t *testing.T) {
	app := newTestApp(t)

	payload := `{
		"message": "to indiranagar tomorrow at 5pm",
		"intent": "book_cab",
		"previous_slots": {"origin": "btm", "foo": {"a": 1}, "quantity_value": null}
	}`
	resp, body := doJSON(t, app, "POST", "/api/v1/nlu/continue", payload)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status %d, body %v", resp.StatusCode, body)
	}

	slots := body["slots"].(map[string]interface{})
	if slots["origin"] != "btm" {
		t.Errorf("expected origin to survive the merge, got %v", slots["origin"])
	}
	if _, ok := slots["foo"]; ok {
		t.Error("unknown previous slot key leaked into the response")
	}
	if slots["quantity_value"] != nil || slots["datetime_iso"] == nil {
		t.Errorf("unexpected slots %v", slots)
	}
	if missing := body["missing_slots"].([]interface{}); len(missing) != 1 || missing[0] != nlp.MissingDestination {
		t.Errorf("expected only destination missing, got %v", missing)
	}
}
