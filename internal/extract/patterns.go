// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls typed entity candidates out of result text.
// patterns.go holds the lexical pattern layer: university indicators,
// monetary amounts, and deadline phrasing.
package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/meshintel/orgminer/pkg/types"
)

// universityIndicators promote a generic organization span to the
// university class. Internationalized forms included.
var universityIndicators = []string{
	"university", "université", "universität", "universidad", "università",
	"universiteit", "college", "institute", "school", "polytechnic",
	"academy", "conservatory", "hochschule",
}

var (
	// moneyRe matches currency-prefixed or suffixed amounts:
	// $5,000, €20.000, £1500, 5000 USD, "up to $10,000 per year".
	moneyRe = regexp.MustCompile(`(?i)(?:up to\s+)?(?:[$€£]\s?\d[\d,.]*(?:k|m)?|\d[\d,.]*\s?(?:usd|eur|gbp|dollars|euros|pounds))(?:\s+per\s+(?:year|month|semester))?`)

	// deadlinePhraseRe matches explicit deadline phrasing followed by a
	// date-like tail.
	deadlinePhraseRe = regexp.MustCompile(`(?i)\b(?:deadline|due by|apply by|applications? (?:due|close|open until))[:\s]+([^.;\n]{4,60})`)

	// isoDateRe matches ISO and US numeric date forms.
	isoDateRe = regexp.MustCompile(`\b(?:\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}/\d{4})\b`)

	// monthDateRe matches month-name date forms: "March 15, 2026",
	// "15 March 2026", "Jan 1 2027".
	monthDateRe = regexp.MustCompile(`(?i)\b(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}\b|\b\d{1,2}\s+(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+\d{4}\b`)
)

// dateParser resolves natural-language deadline tails ("next Friday",
// "end of March") into concrete spans. Built once; when parsers are
// read-only after rule registration.
var dateParser = newDateParser()

func newDateParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// isUniversityName reports whether name carries a university-class
// indicator word.
func isUniversityName(name string) bool {
	lower := strings.ToLower(name)
	for _, ind := range universityIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}

// findMoney returns money spans in text.
func findMoney(text string) []span {
	var out []span
	for _, loc := range moneyRe.FindAllStringIndex(text, -1) {
		out = append(out, span{
			text:  strings.TrimSpace(text[loc[0]:loc[1]]),
			label: types.LabelMoney,
			start: loc[0],
			end:   loc[1],
		})
	}
	return out
}

// findDeadlines returns deadline spans in text. Explicit deadline
// phrasing is tried first; its tail goes through the natural-language
// date parser so "apply by end of March" still yields a span. Bare date
// forms are picked up afterwards.
func findDeadlines(text string, now time.Time) []span {
	var out []span
	claimed := make(map[int]bool)

	for _, m := range deadlinePhraseRe.FindAllStringSubmatchIndex(text, -1) {
		// The span covers the captured tail, trimmed, so start/end always
		// bracket the text; the resolved date rides along separately.
		tailStart, tailEnd := trimBounds(text, m[2], m[3])
		if tailStart == tailEnd {
			continue
		}
		raw := text[tailStart:tailEnd]
		out = append(out, span{
			text:  raw,
			norm:  resolveDate(raw, now),
			label: types.LabelDeadline,
			start: tailStart,
			end:   tailEnd,
		})
		for i := m[0]; i < m[1]; i++ {
			claimed[i] = true
		}
	}

	for _, re := range []*regexp.Regexp{isoDateRe, monthDateRe} {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if claimed[loc[0]] {
				continue
			}
			out = append(out, span{
				text:  text[loc[0]:loc[1]],
				label: types.LabelDeadline,
				start: loc[0],
				end:   loc[1],
			})
			for i := loc[0]; i < loc[1]; i++ {
				claimed[i] = true
			}
		}
	}
	return out
}

// trimBounds shrinks [start,end) past surrounding whitespace.
func trimBounds(text string, start, end int) (int, int) {
	for start < end && isSpaceByte(text[start]) {
		start++
	}
	for end > start && isSpaceByte(text[end-1]) {
		end--
	}
	return start, end
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// resolveDate parses a natural-language date fragment relative to now and
// returns it in ISO form, or "" when the fragment has no date reading.
func resolveDate(fragment string, now time.Time) string {
	r, err := dateParser.Parse(fragment, now)
	if err != nil || r == nil {
		return ""
	}
	return r.Time.Format("2006-01-02")
}

// span is an internal tagged region before conversion to ExtractedEntity.
// text is always the literal content of [start,end); norm optionally
// carries a canonical form (ISO dates for deadlines).
type span struct {
	text  string
	norm  string
	label types.EntityLabel
	start int
	end   int
}
