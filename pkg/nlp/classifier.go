package nlp

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type IntentMapping struct {
	Intent   Intent   `json:"intent"`
	Keywords []string `json:"keywords"`
	Phrases  []string `json:"phrases"`
}

type KeywordClassifier struct {
	mappings      []IntentMapping
	stopWords     map[string]bool
	minConfidence float64
}

const (
	phraseWeight     = 1.2
	fuzzyWeight      = 0.7
	fuzzyThreshold   = 0.75
	saturationScore  = 2.0
	defaultThreshold = 0.3
)

func NewKeywordClassifier(minConfidence float64) *KeywordClassifier {
	if minConfidence <= 0 {
		minConfidence = defaultThreshold
	}

	stopWords := map[string]bool{
		"i": true, "me": true, "my": true, "a": true, "an": true, "the": true,
		"to": true, "is": true, "am": true, "are": true, "for": true, "of": true,
		"please": true, "can": true, "you": true, "want": true, "need": true,
		"some": true, "and": true, "it": true, "this": true, "that": true,
	}

	return &KeywordClassifier{
		mappings:      defaultIntentMappings(),
		stopWords:     stopWords,
		minConfidence: minConfidence,
	}
}

func (kc *KeywordClassifier) Classify(_ context.Context, text string) (*IntentResult, error) {
	startTime := time.Now()

	cleanText := kc.cleanText(text)
	tokens := kc.extractTokens(cleanText)

	result := &IntentResult{
		Intent: IntentOther,
		Scores: make(map[Intent]float64, len(kc.mappings)),
		Source: "keyword",
	}

	type candidate struct {
		intent     Intent
		confidence float64
		order      int
	}
	var candidates []candidate

	for order, mapping := range kc.mappings {
		confidence, matches := kc.calculateConfidence(tokens, cleanText, mapping)
		result.Scores[mapping.Intent] = confidence
		result.Matches = append(result.Matches, matches...)

		if confidence >= kc.minConfidence {
			candidates = append(candidates, candidate{mapping.Intent, confidence, order})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].confidence != candidates[j].confidence {
			return candidates[i].confidence > candidates[j].confidence
		}
		return candidates[i].order < candidates[j].order
	})

	if len(candidates) > 0 {
		result.Intent = candidates[0].intent
		result.Confidence = candidates[0].confidence
	}

	result.ProcessingTime = time.Since(startTime).String()
	return result, nil
}

func (kc *KeywordClassifier) calculateConfidence(tokens []string, fullText string, mapping IntentMapping) (float64, []MatchResult) {
	var matches []MatchResult
	totalScore := 0.0

	for _, keyword := range mapping.Keywords {
		for _, token := range tokens {
			if token == keyword {
				matches = append(matches, MatchResult{Intent: mapping.Intent, Keyword: keyword, Score: 1.0, Type: "exact"})
				totalScore += 1.0
				continue
			}

			if len(token) < 4 || len(keyword) < 4 {
				continue
			}
			similarity := kc.calculateSimilarity(token, keyword)
			if similarity >= fuzzyThreshold && similarity < 1.0 {
				matches = append(matches, MatchResult{Intent: mapping.Intent, Keyword: keyword, Score: similarity * fuzzyWeight, Type: "fuzzy"})
				totalScore += similarity * fuzzyWeight
			}
		}
	}

	padded := " " + fullText + " "
	for _, phrase := range mapping.Phrases {
		if strings.Contains(padded, " "+phrase+" ") {
			matches = append(matches, MatchResult{Intent: mapping.Intent, Keyword: phrase, Score: phraseWeight, Type: "phrase"})
			totalScore += phraseWeight
		}
	}

	return math.Min(totalScore/saturationScore, 1.0), matches
}

func (kc *KeywordClassifier) calculateSimilarity(text1, text2 string) float64 {
	if text1 == text2 {
		return 1.0
	}

	distance := levenshteinDistance(text1, text2)
	maxLen := math.Max(float64(len(text1)), float64(len(text2)))
	if maxLen == 0 {
		return 0.0
	}

	return math.Max(0, 1.0-(float64(distance)/maxLen))
}

func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}

	return matrix[len(s1)][len(s2)]
}

// cleanText lower-cases, strips diacritics and replaces punctuation with spaces.
func (kc *KeywordClassifier) cleanText(text string) string {
	text = strings.ToLower(text)

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, _ := transform.String(t, text)

	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, result)

	return strings.Join(strings.Fields(result), " ")
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

func (kc *KeywordClassifier) extractTokens(text string) []string {
	var tokens []string
	for _, word := range strings.Fields(text) {
		if len(word) > 1 && !kc.stopWords[word] {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

func (kc *KeywordClassifier) Mappings() []IntentMapping {
	return kc.mappings
}

func defaultIntentMappings() []IntentMapping {
	return []IntentMapping{
		{
			Intent:   IntentOrderGrocery,
			Keywords: []string{"order", "reorder", "buy", "grocery", "groceries", "biscuit", "biscuits", "milk", "bread", "egg", "eggs", "rice", "atta", "oil", "chocolate", "juice", "fanta", "coke", "packet", "litre", "kg"},
			Phrases:  []string{"order me", "cold drink", "add to cart", "my usual"},
		},
		{
			Intent:   IntentBookCab,
			Keywords: []string{"cab", "taxi", "ride", "auto", "pickup", "drop", "uber", "ola"},
			Phrases:  []string{"book a cab", "book me a cab", "get me a cab", "take me to"},
		},
		{
			Intent:   IntentHousingSearch,
			Keywords: []string{"room", "rooms", "flat", "flats", "house", "pg", "hostel", "apartment", "rent", "accommodation", "hotel"},
			Phrases:  []string{"looking for a room", "place to stay", "find a room", "rooms in", "flat near"},
		},
		{
			Intent:   IntentBookHousing,
			Keywords: []string{"property", "daily", "monthly", "night", "checkin"},
			Phrases:  []string{"book this property", "book the room", "book this room", "book a room", "per day", "per month", "per night"},
		},
		{
			Intent:   IntentHomeService,
			Keywords: []string{"plumber", "electrician", "carpenter", "cleaner", "painter", "gardener", "repair", "fix", "tap", "leak", "leaking", "fan", "switch", "socket", "wiring", "geyser", "fridge"},
			Phrases:  []string{"not working", "send a worker", "water is leaking", "ac not cooling"},
		},
		{
			Intent:   IntentHealthSymptom,
			Keywords: []string{"pain", "paining", "fever", "headache", "cough", "cold", "dizzy", "vomiting", "sick", "hurts", "nausea", "sore", "throat"},
			Phrases:  []string{"not feeling well", "my head", "stomach ache"},
		},
		{
			Intent:   IntentDoctorConsult,
			Keywords: []string{"doctor", "consult", "consultation", "appointment", "clinic", "physician", "checkup"},
			Phrases:  []string{"see a doctor", "book a doctor", "doctor appointment"},
		},
		{
			Intent:   IntentOther,
			Keywords: []string{"hi", "hello", "hey", "thanks", "thank", "bye", "joke", "weather"},
			Phrases:  []string{"how are you", "good morning", "good night", "who are you"},
		},
	}
}
