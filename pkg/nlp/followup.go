package nlp

const (
	MissingOrigin      = "origin"
	MissingDestination = "destination"
	MissingDatetime    = "datetime"
	MissingLocation    = "location"
	MissingBookingMode = "booking_mode"
	MissingProduct     = "product"
)

const (
	QuestionCabRoute       = "For your cab, please tell me the pickup location and drop location (for example: 'book me a cab from X to Y')."
	QuestionCabDatetime    = "At what date and time should I book your cab?"
	QuestionDoctorDatetime = "When would you like to consult the doctor? Please specify a date and time."
	QuestionSymptomConsult = "I detected health symptoms. Would you like me to book a doctor consultation? If yes, please tell me your preferred date and time."
	QuestionHousingSearch  = "To help with housing, please confirm the location (for example 'in Sehore') and roughly when you want to stay."
	QuestionBookHousing    = "To book this property, please tell me if you want it on a daily or monthly basis, and from which date."
	QuestionGroceryItem    = "Which item would you like to order (for example 'biscuit', 'milk', 'fanta', etc.)?"
	QuestionServiceVisit   = "When should the worker visit? Please specify a date and time."
)

type followUpRule func(slots Slots) ([]string, string)

var followUpRules = map[Intent]followUpRule{
	IntentBookCab:       bookCabRule,
	IntentDoctorConsult: datetimeRule(QuestionDoctorDatetime),
	IntentHealthSymptom: datetimeRule(QuestionSymptomConsult),
	IntentHousingSearch: housingSearchRule,
	IntentBookHousing:   bookHousingRule,
	IntentOrderGrocery:  orderGroceryRule,
	IntentHomeService:   datetimeRule(QuestionServiceVisit),
}

// DecideFollowUp never returns a nil Missing slice. Intents without a rule need nothing.
func DecideFollowUp(intent Intent, slots Slots) FollowUp {
	followUp := FollowUp{Missing: []string{}}

	rule, ok := followUpRules[intent]
	if !ok {
		return followUp
	}

	missing, question := rule(slots)
	if len(missing) > 0 {
		followUp.Missing = missing
	}
	if question != "" {
		followUp.Question = stringPtr(question)
	}
	return followUp
}

// FollowUpQuestions lists every question an intent can ask, for discovery endpoints.
func FollowUpQuestions(intent Intent) []string {
	switch intent {
	case IntentBookCab:
		return []string{QuestionCabRoute, QuestionCabDatetime}
	case IntentDoctorConsult:
		return []string{QuestionDoctorDatetime}
	case IntentHealthSymptom:
		return []string{QuestionSymptomConsult}
	case IntentHousingSearch:
		return []string{QuestionHousingSearch}
	case IntentBookHousing:
		return []string{QuestionBookHousing}
	case IntentOrderGrocery:
		return []string{QuestionGroceryItem}
	case IntentHomeService:
		return []string{QuestionServiceVisit}
	default:
		return []string{}
	}
}

func bookCabRule(slots Slots) ([]string, string) {
	var missing []string
	if isBlank(slots.Origin) {
		missing = append(missing, MissingOrigin)
	}
	if isBlank(slots.Destination) {
		missing = append(missing, MissingDestination)
	}
	if len(missing) > 0 {
		return missing, QuestionCabRoute
	}

	if isBlank(slots.DatetimeISO) {
		return []string{MissingDatetime}, QuestionCabDatetime
	}
	return nil, ""
}

func datetimeRule(question string) followUpRule {
	return func(slots Slots) ([]string, string) {
		if isBlank(slots.DatetimeISO) {
			return []string{MissingDatetime}, question
		}
		return nil, ""
	}
}

func housingSearchRule(slots Slots) ([]string, string) {
	if isBlank(slots.Location) {
		return []string{MissingLocation}, QuestionHousingSearch
	}
	return nil, ""
}

// bookHousingRule reports every missing field but always asks the same combined question.
func bookHousingRule(slots Slots) ([]string, string) {
	var missing []string
	if isBlank(slots.Location) {
		missing = append(missing, MissingLocation)
	}
	if slots.BookingMode == nil || *slots.BookingMode == "" {
		missing = append(missing, MissingBookingMode)
	}
	if isBlank(slots.DatetimeISO) {
		missing = append(missing, MissingDatetime)
	}

	if len(missing) == 0 {
		return nil, ""
	}
	return missing, QuestionBookHousing
}

func orderGroceryRule(slots Slots) ([]string, string) {
	if isBlank(slots.ProductName) && isBlank(slots.ProductCategory) {
		return []string{MissingProduct}, QuestionGroceryItem
	}
	return nil, ""
}

func isBlank(value *string) bool {
	return value == nil || *value == ""
}
