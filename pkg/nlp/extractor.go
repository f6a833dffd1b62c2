package nlp

import (
	"regexp"
	"strconv"
	"strings"
)

type keywordGroup struct {
	Name     string
	Keywords []string
}

// Order matters in every table below: the first hit wins.
var groceryCategories = []string{
	"biscuit",
	"biscuits",
	"milk",
	"bread",
	"egg",
	"eggs",
	"rice",
	"atta",
	"oil",
	"chocolate",
	"drink",
	"cold drink",
	"juice",
}

var productFallbackStopWords = map[string]bool{
	"order": true, "buy": true, "get": true, "me": true, "some": true,
	"please": true, "reorder": true, "my": true, "usual": true,
	"a": true, "an": true, "the": true, "add": true, "to": true,
	"cold": true, "drink": true, "drinks": true, "for": true,
}

var dailyPhrases = []string{
	"per day",
	"per night",
	"daily",
	"for 2 days",
	"for two days",
	"for 3 days",
	"for three days",
}

var monthlyPhrases = []string{
	"per month",
	"monthly",
	"for a month",
	"for one month",
	"for 1 month",
}

var serviceCategories = []keywordGroup{
	{ServicePlumber, []string{"tap", "pipe", "leak", "plumb", "toilet", "sink", "water is leaking"}},
	{ServiceElectrician, []string{"electric", "light", "lights", "fan", "switch", "socket", "power", "wiring", "short circuit"}},
	{ServiceCarpenter, []string{"carpenter", "wood", "door", "furniture", "bed frame", "almirah", "table"}},
	{ServiceCleaner, []string{"clean", "cleaning", "deep cleaning", "maid", "sweep", "mop", "dusting"}},
	{ServiceACRepair, []string{"ac", "air conditioner", "aircon", "cooling", "ac not cooling", "ac repair"}},
	{ServicePainter, []string{"paint", "painting", "wall color", "repaint"}},
	{ServiceGardener, []string{"garden", "gardener", "lawn", "grass", "plants", "tree"}},
	{ServiceApplianceRepair, []string{"fridge", "refrigerator", "washing machine", "tv", "microwave", "oven", "geyser", "appliance"}},
}

type SlotExtractor struct {
	quantityPattern    *regexp.Regexp
	routePattern       *regexp.Regexp
	locationPattern    *regexp.Regexp
	productStopPattern *regexp.Regexp
	spacePattern       *regexp.Regexp
	wordPattern        *regexp.Regexp
	qualifierPatterns  map[string]*regexp.Regexp
}

func NewSlotExtractor() *SlotExtractor {
	qualifiers := make(map[string]*regexp.Regexp, len(groceryCategories))
	for _, category := range groceryCategories {
		singular := singularCategory(category)
		qualifiers[singular] = regexp.MustCompile(`([\w\s]{0,30})\b` + regexp.QuoteMeta(singular) + `s?\b`)
	}

	return &SlotExtractor{
		quantityPattern:    regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(litre|liter|ltr|kg|kilo|kilogram|gm|g|packet|pack|bottle|box|dozen)`),
		routePattern:       regexp.MustCompile(`(?i)from\s+(.+?)\s+to\s+(.+)`),
		locationPattern:    regexp.MustCompile(`(in|near|around|at)\s+([a-zA-Z\s]+)$`),
		productStopPattern: regexp.MustCompile(`\b(order|buy|get|me|some|please|reorder|my|usual|a|an|the)\b`),
		spacePattern:       regexp.MustCompile(`\s+`),
		wordPattern:        regexp.MustCompile(`[a-zA-Z]+`),
		qualifierPatterns:  qualifiers,
	}
}

// ExtractQuantity returns the first number directly followed by a known unit.
func (se *SlotExtractor) ExtractQuantity(text string) (*float64, *string) {
	matches := se.quantityPattern.FindStringSubmatch(text)
	if matches == nil {
		return nil, nil
	}

	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return nil, nil
	}
	unit := strings.ToLower(matches[2])

	return &value, &unit
}

// ExtractProduct returns (product_name, product_category).
func (se *SlotExtractor) ExtractProduct(text string) (*string, *string) {
	lower := strings.ToLower(text)

	category := ""
	for _, candidate := range groceryCategories {
		if strings.Contains(lower, candidate) {
			category = singularCategory(candidate)
			break
		}
	}

	if category == "" {
		var kept []string
		for _, word := range se.wordPattern.FindAllString(lower, -1) {
			if !productFallbackStopWords[word] {
				kept = append(kept, word)
			}
		}
		if len(kept) == 0 {
			return nil, nil
		}
		return stringPtr(strings.Join(kept, " ")), nil
	}

	var name *string
	if matches := se.qualifierPatterns[category].FindStringSubmatch(lower); matches != nil {
		phrase := se.productStopPattern.ReplaceAllString(strings.TrimSpace(matches[1]), "")
		phrase = strings.TrimSpace(se.spacePattern.ReplaceAllString(phrase, " "))
		if phrase != "" {
			name = stringPtr(phrase + " " + category)
		}
	}

	return name, stringPtr(category)
}

// ExtractRoute matches "from X to Y".
func (se *SlotExtractor) ExtractRoute(text string) (*string, *string) {
	matches := se.routePattern.FindStringSubmatch(text)
	if matches == nil {
		return nil, nil
	}
	return stringPtr(strings.TrimSpace(matches[1])), stringPtr(strings.TrimSpace(matches[2]))
}

func (se *SlotExtractor) ExtractLocation(text string) *string {
	matches := se.locationPattern.FindStringSubmatch(strings.ToLower(text))
	if matches == nil {
		return nil
	}
	return stringPtr(strings.TrimSpace(matches[2]))
}

func (se *SlotExtractor) ExtractBookingMode(text string) *BookingMode {
	lower := strings.ToLower(text)

	if containsAny(lower, dailyPhrases) {
		mode := BookingDaily
		return &mode
	}
	if containsAny(lower, monthlyPhrases) {
		mode := BookingMonthly
		return &mode
	}
	return nil
}

// ExtractServiceCategory never returns an empty value; unmatched text is ServiceOther.
func (se *SlotExtractor) ExtractServiceCategory(text string) string {
	lower := strings.ToLower(text)

	for _, group := range serviceCategories {
		if containsAny(lower, group.Keywords) {
			return group.Name
		}
	}
	return ServiceOther
}

func singularCategory(category string) string {
	return strings.TrimSuffix(category, "s")
}

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}
