package nlp

import (
	"context"
	"time"
)

type Intent string

const (
	IntentOrderGrocery  Intent = "order_grocery"
	IntentBookCab       Intent = "book_cab"
	IntentHousingSearch Intent = "housing_search"
	IntentBookHousing   Intent = "book_housing"
	IntentHomeService   Intent = "home_service"
	IntentHealthSymptom Intent = "health_symptom"
	IntentDoctorConsult Intent = "doctor_consult"
	IntentOther         Intent = "smalltalk_or_other"
)

// Intents is the closed label vocabulary, in classifier tie-break order.
var Intents = []Intent{
	IntentOrderGrocery,
	IntentBookCab,
	IntentHousingSearch,
	IntentBookHousing,
	IntentHomeService,
	IntentHealthSymptom,
	IntentDoctorConsult,
	IntentOther,
}

func (i Intent) Known() bool {
	for _, known := range Intents {
		if i == known {
			return true
		}
	}
	return false
}

type BookingMode string

const (
	BookingDaily   BookingMode = "DAILY"
	BookingMonthly BookingMode = "MONTHLY"
)

const (
	ServicePlumber         = "Plumber"
	ServiceElectrician     = "Electrician"
	ServiceCarpenter       = "Carpenter"
	ServiceCleaner         = "Cleaner"
	ServiceACRepair        = "AC Repair"
	ServicePainter         = "Painter"
	ServiceGardener        = "Gardener"
	ServiceApplianceRepair = "Appliance Repair"
	ServiceOther           = "Other"
)

// Slots is the fixed slot record. Every field is serialized, absent values as null.
type Slots struct {
	QuantityValue   *float64     `json:"quantity_value"`
	QuantityUnit    *string      `json:"quantity_unit"`
	ProductName     *string      `json:"product_name"`
	ProductCategory *string      `json:"product_category"`
	Origin          *string      `json:"origin"`
	Destination     *string      `json:"destination"`
	Location        *string      `json:"location"`
	BookingMode     *BookingMode `json:"booking_mode"`
	DatetimeISO     *string      `json:"datetime_iso"`
	DatetimeText    *string      `json:"datetime_text"`
	SymptomText     *string      `json:"symptom_text"`
	ServiceCategory *string      `json:"service_category"`
}

// FollowUp lists the still-missing fields and the single question to ask, if any.
type FollowUp struct {
	Missing  []string `json:"missing_slots"`
	Question *string  `json:"followup_question"`
}

func (f FollowUp) Actionable() bool {
	return f.Question == nil
}

type Assessment struct {
	Slots Slots `json:"slots"`
	FollowUp
}

type DateParser interface {
	// Parse resolves the first date/time expression in text relative to base.
	Parse(text string, base time.Time) (time.Time, bool)
}

type ISlotEngine interface {
	ExtractSlots(text string, intent Intent) Slots
	ExtractAndAssess(text string, intent Intent) Assessment
	ContinueAndAssess(text string, intent Intent, previous Slots) Assessment
}

type IntentResult struct {
	Intent         Intent             `json:"intent"`
	Confidence     float64            `json:"confidence"`
	Scores         map[Intent]float64 `json:"scores,omitempty"`
	Matches        []MatchResult      `json:"matches,omitempty"`
	Source         string             `json:"source"`
	ProcessingTime string             `json:"processing_time"`
}

type MatchResult struct {
	Intent  Intent  `json:"intent"`
	Keyword string  `json:"keyword"`
	Score   float64 `json:"score"`
	Type    string  `json:"type"`
}

type IIntentClassifier interface {
	Classify(ctx context.Context, text string) (*IntentResult, error)
}

func stringPtr(s string) *string {
	return &s
}
