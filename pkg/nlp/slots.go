package nlp

import (
	"time"
)

type slotEngine struct {
	extractor *SlotExtractor
	dates     DateParser
	clock     func() time.Time
	location  *time.Location
}

type EngineOption func(*slotEngine)

func WithDateParser(parser DateParser) EngineOption {
	return func(e *slotEngine) {
		e.dates = parser
	}
}

func WithClock(clock func() time.Time) EngineOption {
	return func(e *slotEngine) {
		e.clock = clock
	}
}

// WithLocation sets the zone date expressions are resolved in. Defaults to time.Local.
func WithLocation(loc *time.Location) EngineOption {
	return func(e *slotEngine) {
		if loc != nil {
			e.location = loc
		}
	}
}

func NewSlotEngine(options ...EngineOption) ISlotEngine {
	engine := &slotEngine{
		extractor: NewSlotExtractor(),
		dates:     NewWhenParser(),
		clock:     time.Now,
		location:  time.Local,
	}

	for _, option := range options {
		option(engine)
	}

	return engine
}

// ExtractSlots runs every extractor; only symptom_text depends on the intent.
func (e *slotEngine) ExtractSlots(text string, intent Intent) Slots {
	quantityValue, quantityUnit := e.extractor.ExtractQuantity(text)
	productName, productCategory := e.extractor.ExtractProduct(text)
	origin, destination := e.extractor.ExtractRoute(text)
	datetimeISO, datetimeText := e.ExtractDatetime(text)

	slots := Slots{
		QuantityValue:   quantityValue,
		QuantityUnit:    quantityUnit,
		ProductName:     productName,
		ProductCategory: productCategory,
		Origin:          origin,
		Destination:     destination,
		Location:        e.extractor.ExtractLocation(text),
		BookingMode:     e.extractor.ExtractBookingMode(text),
		DatetimeISO:     datetimeISO,
		DatetimeText:    datetimeText,
		ServiceCategory: stringPtr(e.extractor.ExtractServiceCategory(text)),
	}

	if intent == IntentHealthSymptom {
		slots.SymptomText = stringPtr(text)
	}

	return slots
}

func (e *slotEngine) ExtractAndAssess(text string, intent Intent) Assessment {
	slots := e.ExtractSlots(text, intent)

	return Assessment{
		Slots:    slots,
		FollowUp: DecideFollowUp(intent, slots),
	}
}

func (e *slotEngine) ContinueAndAssess(text string, intent Intent, previous Slots) Assessment {
	merged := MergeSlots(previous, e.ExtractSlots(text, intent))

	return Assessment{
		Slots:    merged,
		FollowUp: DecideFollowUp(intent, merged),
	}
}
