package nlp

import (
	"testing"
	"time"
)

var testZone = time.FixedZone("IST", 5*60*60+30*60)

// Monday 19 October 2026, 10:00 IST.
var testNow = time.Date(2026, time.October, 19, 10, 0, 0, 0, testZone)

type stubDateParser struct {
	at time.Time
	ok bool
}

func (s stubDateParser) Parse(string, time.Time) (time.Time, bool) {
	return s.at, s.ok
}

func TestWhenParser_Tomorrow(t *testing.T) {
	p := NewWhenParser()

	got, ok := p.Parse("book a cab tomorrow at 5pm", testNow)
	if !ok {
		t.Fatal("expected a date to be found")
	}
	if got.Day() != 20 || got.Month() != time.October || got.Hour() != 17 {
		t.Errorf("expected 20 Oct 17:00, got %v", got)
	}
}

func TestWhenParser_NoDate(t *testing.T) {
	p := NewWhenParser()

	for _, text := range []string{
		"book me a cab from btm to indiranagar",
		"order me a biscuit",
		"my head is paining",
		"may i get some milk",
		"march on",
	} {
		if got, ok := p.Parse(text, testNow); ok {
			t.Errorf("Parse(%q) = %v, expected no date", text, got)
		}
	}
}

func TestWhenParser_NamedDatesResolveToFuture(t *testing.T) {
	p := NewWhenParser()

	tests := []struct {
		text  string
		month time.Month
		day   int
		hour  int
	}{
		{"consult on 5th march", time.March, 5, -1},
		{"book room from 1 january", time.January, 1, -1},
		{"on 18 october", time.October, 18, -1},
		{"on 19th october at 9am", time.October, 19, 9},
		{"deliver it on 5th may", time.May, 5, -1},
	}

	for _, tt := range tests {
		got, ok := p.Parse(tt.text, testNow)
		if !ok {
			t.Errorf("Parse(%q) found no date", tt.text)
			continue
		}
		if got.Before(testNow) {
			t.Errorf("Parse(%q) = %v, resolved into the past", tt.text, got)
		}
		if got.Month() != tt.month || got.Day() != tt.day {
			t.Errorf("Parse(%q) = %v, want %s %d", tt.text, got, tt.month, tt.day)
		}
		if tt.hour >= 0 && got.Hour() != tt.hour {
			t.Errorf("Parse(%q) = %v, want hour %d", tt.text, got, tt.hour)
		}
	}
}

func TestWhenParser_ModalMayKeepsRealDate(t *testing.T) {
	p := NewWhenParser()

	got, ok := p.Parse("may i book a cab tomorrow at 5pm", testNow)
	if !ok {
		t.Fatal("expected a date to be found")
	}
	if got.Month() != time.October || got.Day() != 20 || got.Hour() != 17 {
		t.Errorf("expected 20 Oct 17:00, got %v", got)
	}
}

func TestMaskVerbMonths(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"may i get some milk", "    i get some milk"},
		{"march on", "      on"},
		{"consult on 5th march", "consult on 5th march"},
		{"i may come in may", "i     come in may"},
		{"may 5 works", "may 5 works"},
	}

	for _, tt := range tests {
		if got := maskVerbMonths(tt.text); got != tt.want {
			t.Errorf("maskVerbMonths(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestPreferFuture(t *testing.T) {
	tests := []struct {
		name     string
		resolved time.Time
		matched  string
		text     string
		want     time.Time
	}{
		{
			name:     "future stays",
			resolved: testNow.Add(3 * time.Hour),
			matched:  "at 1pm",
			want:     testNow.Add(3 * time.Hour),
		},
		{
			name:     "earlier today moves to tomorrow",
			resolved: testNow.Add(-2 * time.Hour),
			matched:  "at 8am",
			want:     testNow.Add(22 * time.Hour),
		},
		{
			name:     "half past is a time of day",
			resolved: testNow.Add(-90 * time.Minute),
			matched:  "at half past 8",
			want:     testNow.Add(-90 * time.Minute).AddDate(0, 0, 1),
		},
		{
			name:     "weekday moves a week ahead",
			resolved: testNow.Add(-time.Hour),
			matched:  "on monday",
			want:     testNow.Add(7*24*time.Hour - time.Hour),
		},
		{
			name:     "explicit past is kept",
			resolved: testNow.Add(-2 * time.Hour),
			matched:  "yesterday",
			want:     testNow.Add(-2 * time.Hour),
		},
		{
			name:     "past marker elsewhere in the sentence is kept",
			resolved: testNow.Add(-time.Hour),
			matched:  "on monday",
			text:     "my last visit was on monday",
			want:     testNow.Add(-time.Hour),
		},
		{
			name:     "old calendar date with a year is kept",
			resolved: testNow.AddDate(-1, 0, 0),
			matched:  "12/03/2025",
			want:     testNow.AddDate(-1, 0, 0),
		},
		{
			name:     "calendar date without a year rolls a year",
			resolved: time.Date(2026, time.March, 5, 10, 0, 0, 0, testZone),
			matched:  "on 5th march",
			want:     time.Date(2027, time.March, 5, 10, 0, 0, 0, testZone),
		},
		{
			name:     "month only rolls a year",
			resolved: time.Date(2026, time.January, 19, 10, 0, 0, 0, testZone),
			matched:  "in january",
			want:     time.Date(2027, time.January, 19, 10, 0, 0, 0, testZone),
		},
		{
			name:     "yesterday's calendar day keeps its day",
			resolved: time.Date(2026, time.October, 18, 10, 0, 0, 0, testZone),
			matched:  "on 18 october",
			want:     time.Date(2027, time.October, 18, 10, 0, 0, 0, testZone),
		},
		{
			name:     "today's date at an earlier hour keeps its day",
			resolved: time.Date(2026, time.October, 19, 9, 0, 0, 0, testZone),
			matched:  "on 19th october at 9am",
			want:     time.Date(2027, time.October, 19, 9, 0, 0, 0, testZone),
		},
		{
			name:     "numeric date without a year rolls a year",
			resolved: time.Date(2026, time.March, 12, 10, 0, 0, 0, testZone),
			matched:  "12/03",
			want:     time.Date(2027, time.March, 12, 10, 0, 0, 0, testZone),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := tt.text
			if text == "" {
				text = tt.matched
			}
			if got := preferFuture(tt.resolved, tt.matched, text, testNow); !got.Equal(tt.want) {
				t.Errorf("preferFuture() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractDatetime_UsesClockAndZone(t *testing.T) {
	resolved := time.Date(2026, time.October, 20, 11, 30, 0, 0, time.UTC)
	engine := NewSlotEngine(
		WithDateParser(stubDateParser{at: resolved, ok: true}),
		WithClock(func() time.Time { return testNow }),
		WithLocation(testZone),
	).(*slotEngine)

	iso, text := engine.ExtractDatetime("day after tomorrow")
	if deref(iso) != "2026-10-20T17:00:00+05:30" {
		t.Errorf("unexpected iso %v", deref(iso))
	}
	if deref(text) != "day after tomorrow" {
		t.Errorf("expected the input text back, got %v", deref(text))
	}

	engine = NewSlotEngine(WithDateParser(stubDateParser{})).(*slotEngine)
	if iso, text := engine.ExtractDatetime("nothing here"); iso != nil || text != nil {
		t.Errorf("expected nils, got %v %v", deref(iso), deref(text))
	}
}
