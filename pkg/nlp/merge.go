package nlp

// MergeSlots folds a continuation turn into the previous slots. A non-null new value
// replaces the old one, except for symptom_text and service_category, which keep
// whatever non-null value the earlier turn captured.
func MergeSlots(previous, next Slots) Slots {
	merged := previous

	mergeValue(&merged.QuantityValue, next.QuantityValue)
	mergeValue(&merged.QuantityUnit, next.QuantityUnit)
	mergeValue(&merged.ProductName, next.ProductName)
	mergeValue(&merged.ProductCategory, next.ProductCategory)
	mergeValue(&merged.Origin, next.Origin)
	mergeValue(&merged.Destination, next.Destination)
	mergeValue(&merged.Location, next.Location)
	mergeValue(&merged.BookingMode, next.BookingMode)
	mergeValue(&merged.DatetimeISO, next.DatetimeISO)
	mergeValue(&merged.DatetimeText, next.DatetimeText)

	mergeSticky(&merged.SymptomText, next.SymptomText)
	mergeSticky(&merged.ServiceCategory, next.ServiceCategory)

	return merged
}

func mergeValue[T any](dst **T, value *T) {
	if value != nil {
		*dst = value
	}
}

func mergeSticky[T any](dst **T, value *T) {
	if *dst == nil {
		*dst = value
	}
}
