package nlp

import "testing"

func deref[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

func TestExtractQuantity(t *testing.T) {
	se := NewSlotExtractor()

	tests := []struct {
		text  string
		value any
		unit  any
	}{
		{"1 litre milk", 1.0, "litre"},
		{"get 2.5 KG rice", 2.5, "kg"},
		{"3 packets of atta", 3.0, "packet"},
		{"2 kilogram onions", 2.0, "kilo"},
		{"2 bottles and 3 boxes", 2.0, "bottle"},
		{"order me fanta", nil, nil},
	}

	for _, tt := range tests {
		value, unit := se.ExtractQuantity(tt.text)
		if deref(value) != tt.value || deref(unit) != tt.unit {
			t.Errorf("ExtractQuantity(%q) = (%v, %v), want (%v, %v)", tt.text, deref(value), deref(unit), tt.value, tt.unit)
		}
	}
}

func TestExtractProduct(t *testing.T) {
	se := NewSlotExtractor()

	tests := []struct {
		text     string
		name     any
		category any
	}{
		{"order me a biscuit", nil, "biscuit"},
		{"order oreo biscuit", "oreo biscuit", "biscuit"},
		{"Order Oreo Biscuits", "oreo biscuit", "biscuit"},
		{"order me fanta", "fanta", nil},
		{"order fanta for me", "fanta", nil},
		{"buy some eggs please", nil, "egg"},
		{"i need milk and a biscuit", "i need milk and biscuit", "biscuit"},
		{"please reorder my usual", nil, nil},
	}

	for _, tt := range tests {
		name, category := se.ExtractProduct(tt.text)
		if deref(name) != tt.name || deref(category) != tt.category {
			t.Errorf("ExtractProduct(%q) = (%v, %v), want (%v, %v)", tt.text, deref(name), deref(category), tt.name, tt.category)
		}
	}
}

func TestExtractProduct_CategoryOrderWins(t *testing.T) {
	se := NewSlotExtractor()

	_, category := se.ExtractProduct("some milk and a biscuit")
	if deref(category) != "biscuit" {
		t.Errorf("expected biscuit to win over milk, got %v", deref(category))
	}

	_, category = se.ExtractProduct("a cold drink")
	if deref(category) != "drink" {
		t.Errorf("expected drink to win over cold drink, got %v", deref(category))
	}
}

func TestExtractRoute(t *testing.T) {
	se := NewSlotExtractor()

	tests := []struct {
		text        string
		origin      any
		destination any
	}{
		{"book me a cab from btm to indiranagar", "btm", "indiranagar"},
		{"From Airport TO MG Road", "Airport", "MG Road"},
		{"cab from home to the office to pick up", "home", "the office to pick up"},
		{"take me home", nil, nil},
	}

	for _, tt := range tests {
		origin, destination := se.ExtractRoute(tt.text)
		if deref(origin) != tt.origin || deref(destination) != tt.destination {
			t.Errorf("ExtractRoute(%q) = (%v, %v), want (%v, %v)", tt.text, deref(origin), deref(destination), tt.origin, tt.destination)
		}
	}
}

func TestExtractLocation(t *testing.T) {
	se := NewSlotExtractor()

	tests := []struct {
		text string
		want any
	}{
		{"looking for a room in Indiranagar", "indiranagar"},
		{"pg near mg road", "mg road"},
		{"stay around koramangala ", "koramangala"},
		{"rooms in sector 5", nil},
		{"book a room", nil},
	}

	for _, tt := range tests {
		if got := se.ExtractLocation(tt.text); deref(got) != tt.want {
			t.Errorf("ExtractLocation(%q) = %v, want %v", tt.text, deref(got), tt.want)
		}
	}
}

func TestExtractBookingMode(t *testing.T) {
	se := NewSlotExtractor()

	tests := []struct {
		text string
		want any
	}{
		{"room for 2 days", BookingDaily},
		{"500 per night", BookingDaily},
		{"I want it monthly", BookingMonthly},
		{"for one month please", BookingMonthly},
		{"daily or monthly", BookingDaily},
		{"for a week", nil},
	}

	for _, tt := range tests {
		if got := se.ExtractBookingMode(tt.text); deref(got) != tt.want {
			t.Errorf("ExtractBookingMode(%q) = %v, want %v", tt.text, deref(got), tt.want)
		}
	}
}

func TestExtractServiceCategory(t *testing.T) {
	se := NewSlotExtractor()

	tests := []struct {
		text string
		want string
	}{
		{"my tap is leaking", ServicePlumber},
		{"fan not working", ServiceElectrician},
		{"fix my wooden door", ServiceCarpenter},
		{"need a maid", ServiceCleaner},
		{"AC not cooling", ServiceACRepair},
		{"repaint my bedroom", ServicePainter},
		{"mow the lawn", ServiceGardener},
		{"fridge is broken", ServiceApplianceRepair},
		{"the light near the sink", ServicePlumber},
		{"i need someone to come over", ServiceOther},
	}

	for _, tt := range tests {
		if got := se.ExtractServiceCategory(tt.text); got != tt.want {
			t.Errorf("ExtractServiceCategory(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
