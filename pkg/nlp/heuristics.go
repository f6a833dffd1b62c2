package nlp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var homeRepairKeywords = []string{
	"tap", "pipe", "leak", "fan", "light", "lights", "bulb",
	"switch", "socket", "electrician", "water is leaking",
}

var groceryKeywords = []string{
	"biscuit", "biscuits", "milk", "bread", "egg", "eggs", "rice",
	"atta", "oil", "chocolate", "fanta", "cold drink", "juice",
}

// ApplyDomainHeuristics corrects obvious classifier slips: household repair wording
// without any grocery wording is a home_service request.
func ApplyDomainHeuristics(text string, intent Intent) Intent {
	lower := strings.ToLower(text)

	if containsAny(lower, homeRepairKeywords) && !containsAny(lower, groceryKeywords) {
		switch intent {
		case IntentHealthSymptom, IntentOrderGrocery, IntentOther:
			return IntentHomeService
		}
	}
	return intent
}

var ErrEmptyReply = errors.New("empty classifier reply")

type intentReply struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// ParseIntentReply decodes an LLM reply of the form {"intent": "...", "confidence": 0.9},
// tolerating markdown code fences. Labels outside the vocabulary become IntentOther.
func ParseIntentReply(raw string) (*IntentResult, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return nil, ErrEmptyReply
	}

	var reply intentReply
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(cleaned, &reply); err != nil {
		return nil, fmt.Errorf("failed to parse classifier reply: %w", err)
	}

	intent := Intent(strings.ToLower(strings.TrimSpace(reply.Intent)))
	if !intent.Known() {
		intent = IntentOther
	}

	return &IntentResult{
		Intent:     intent,
		Confidence: clampConfidence(reply.Confidence),
	}, nil
}

func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// IntentPrompt is the instruction shared by the LLM-backed classifiers.
func IntentPrompt(text string) string {
	labels := make([]string, len(Intents))
	for i, intent := range Intents {
		labels[i] = string(intent)
	}

	return fmt.Sprintf(`You classify messages sent to a super-app assistant (groceries, cabs, housing, home services, health).
Return ONLY valid JSON: {"intent": "<label>", "confidence": <0..1>}.
Allowed labels: %s.
Use smalltalk_or_other when nothing else fits.

Message: %q`, strings.Join(labels, ", "), text)
}

// FallbackClassifier asks the primary classifier first and uses the fallback on error.
type FallbackClassifier struct {
	primary  IIntentClassifier
	fallback IIntentClassifier
	onError  func(err error)
}

func NewFallbackClassifier(primary, fallback IIntentClassifier, onError func(err error)) *FallbackClassifier {
	return &FallbackClassifier{
		primary:  primary,
		fallback: fallback,
		onError:  onError,
	}
}

func (fc *FallbackClassifier) Classify(ctx context.Context, text string) (*IntentResult, error) {
	result, err := fc.primary.Classify(ctx, text)
	if err == nil {
		return result, nil
	}

	if fc.onError != nil {
		fc.onError(err)
	}
	return fc.fallback.Classify(ctx, text)
}

type IntentCache interface {
	GetIntent(ctx context.Context, text string) (*IntentResult, bool)
	SetIntent(ctx context.Context, text string, result *IntentResult)
}

// CachedClassifier memoizes another classifier's answers, typically a paid LLM backend.
type CachedClassifier struct {
	inner IIntentClassifier
	cache IntentCache
}

func NewCachedClassifier(inner IIntentClassifier, cache IntentCache) *CachedClassifier {
	return &CachedClassifier{inner: inner, cache: cache}
}

func (cc *CachedClassifier) Classify(ctx context.Context, text string) (*IntentResult, error) {
	if cached, ok := cc.cache.GetIntent(ctx, text); ok {
		cached.Source += "+cache"
		return cached, nil
	}

	result, err := cc.inner.Classify(ctx, text)
	if err != nil {
		return nil, err
	}

	cc.cache.SetIntent(ctx, text, result)
	return result, nil
}
