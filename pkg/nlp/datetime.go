package nlp

import (
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

const monthWords = `jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|sept|september|oct|october|nov|november|dec|december`

var (
	pastMarkerPattern  = regexp.MustCompile(`(?i)\b(last|ago|yesterday|previous|past\s+(days?|weeks?|months?|years?))\b`)
	weekdayPattern     = regexp.MustCompile(`(?i)\b(mon|tue|tues|wed|thu|thur|thurs|fri|sat|sun)(day|nesday|sday|urday)?\b`)
	monthPattern       = regexp.MustCompile(`(?i)\b(` + monthWords + `)\b`)
	bareMonthPattern   = regexp.MustCompile(`(?i)^(` + monthWords + `)[.,!?]?$`)
	ordinalDayPattern  = regexp.MustCompile(`(?i)\b\d{1,2}(st|nd|rd|th)\b`)
	numericDatePattern = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}\b`)
	explicitYearRegex  = regexp.MustCompile(`\b\d{4}\b|\b\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}\b`)

	// "may" and "march" double as verbs; they only count as months next to a day or a preposition.
	verbMonthPattern   = regexp.MustCompile(`(?i)\b(may|march)\b`)
	monthContextBefore = regexp.MustCompile(`(?i)(\d(st|nd|rd|th)?|\b(in|of|on|from|until|till|by|since|next|this|early|mid|late|end|start))\s+$`)
	monthContextAfter  = regexp.MustCompile(`^\s+\d`)
)

// WhenParser resolves English date/time expressions and prefers future readings.
type WhenParser struct {
	parser *when.Parser
}

func NewWhenParser() *WhenParser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	return &WhenParser{parser: w}
}

func (p *WhenParser) Parse(text string, base time.Time) (time.Time, bool) {
	result, err := p.parser.Parse(maskVerbMonths(text), base)
	if err != nil || result == nil {
		return time.Time{}, false
	}
	if bareMonthPattern.MatchString(strings.TrimSpace(result.Text)) {
		return time.Time{}, false
	}

	return preferFuture(result.Time, result.Text, text, base), true
}

// maskVerbMonths blanks "may"/"march" used as verbs so they cannot resolve to a month.
// Offsets are preserved.
func maskVerbMonths(text string) string {
	masked := []byte(text)
	for _, loc := range verbMonthPattern.FindAllStringIndex(text, -1) {
		if monthContextBefore.MatchString(text[:loc[0]]) || monthContextAfter.MatchString(text[loc[1]:]) {
			continue
		}
		for i := loc[0]; i < loc[1]; i++ {
			masked[i] = ' '
		}
	}
	return string(masked)
}

// preferFuture moves a resolution that fell behind base to its next occurrence:
// a year ahead for calendar dates, a week for weekdays, a day for times of day.
// Dates with an explicit year and sentences that talk about the past stay as written.
func preferFuture(resolved time.Time, matched, text string, base time.Time) time.Time {
	if !resolved.Before(base) || pastMarkerPattern.MatchString(text) {
		return resolved
	}

	switch {
	case explicitYearRegex.MatchString(matched):
		return resolved
	case monthPattern.MatchString(matched), ordinalDayPattern.MatchString(matched), numericDatePattern.MatchString(matched):
		for resolved.Before(base) {
			resolved = resolved.AddDate(1, 0, 0)
		}
		return resolved
	case weekdayPattern.MatchString(matched):
		return resolved.AddDate(0, 0, 7)
	}

	// relative phrases further back than a day were meant literally
	if base.Sub(resolved) > 24*time.Hour {
		return resolved
	}
	return resolved.AddDate(0, 0, 1)
}

// ExtractDatetime returns the resolved timestamp and the text it came from.
func (e *slotEngine) ExtractDatetime(text string) (*string, *string) {
	base := e.clock().In(e.location)

	resolved, ok := e.dates.Parse(text, base)
	if !ok {
		return nil, nil
	}

	return stringPtr(resolved.In(e.location).Format(time.RFC3339)), stringPtr(text)
}
