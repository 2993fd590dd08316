package extract

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/duitku/duitku/internal/model"
)

// The model is asked for a [JSON]-tagged block, but it does not always
// comply; the fenced and raw-object patterns recover from the two most
// common deviations. Order matters and must be preserved.
var (
	taggedRe = regexp.MustCompile(`(?s)\[JSON\]\s*(\{.*?\})\s*\[/JSON\]`)
	fencedRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	rawRe    = regexp.MustCompile(`(?s)(\{.*?"type".*?"amount".*?\})`)

	// Strip variants match the whole block, not just the object.
	taggedStripRe = regexp.MustCompile(`(?s)\[JSON\].*?\[/JSON\]`)
	fencedStripRe = regexp.MustCompile("(?s)```(?:json)?.*?```")
)

// Strategy is one pure extraction stage: given the full reply text it
// either yields a candidate or reports that it does not apply.
type Strategy struct {
	Extract func(text string) (model.Candidate, bool)
	Name    string
}

// Strategies returns the ordered extraction stages. Callers must try
// them in order and stop at the first success.
func Strategies() []Strategy {
	return []Strategy{
		{Name: "tagged-block", Extract: matchWith(taggedRe)},
		{Name: "fenced-block", Extract: matchWith(fencedRe)},
		{Name: "raw-object", Extract: matchWith(rawRe)},
	}
}

// Decode locates and parses the machine-readable block inside a reply.
// On success it returns the candidate and the reply with every block
// variant stripped; on failure the candidate is nil and the reply is
// returned unchanged. Decode is pure: the same text always produces
// the same result.
func Decode(text string) (*model.Candidate, string) {
	for _, strategy := range Strategies() {
		if cand, ok := strategy.Extract(text); ok {
			return &cand, stripBlocks(text)
		}
	}
	return nil, text
}

// matchWith builds a strategy from a capture-group regexp.
func matchWith(re *regexp.Regexp) func(string) (model.Candidate, bool) {
	return func(text string) (model.Candidate, bool) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return model.Candidate{}, false
		}
		return parseCandidate(m[1])
	}
}

// wireCandidate tolerates the model's loose typing: amount may arrive
// as a float, date as null or any of a few layouts.
type wireCandidate struct {
	Amount      *json.Number `json:"amount"`
	Date        *string      `json:"date"`
	Type        string       `json:"type"`
	Category    string       `json:"category"`
	Description string       `json:"description"`
}

// parseCandidate parses a located JSON object. Objects without a valid
// type or a numeric amount do not form a candidate.
func parseCandidate(raw string) (model.Candidate, bool) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var wire wireCandidate
	if err := dec.Decode(&wire); err != nil {
		return model.Candidate{}, false
	}

	txType := model.TransactionType(strings.ToLower(strings.TrimSpace(wire.Type)))
	if !txType.Valid() {
		return model.Candidate{}, false
	}
	if wire.Amount == nil {
		return model.Candidate{}, false
	}

	amount, ok := parseAmount(*wire.Amount)
	if !ok {
		return model.Candidate{}, false
	}

	return model.Candidate{
		Type:        txType,
		Category:    strings.ToLower(strings.TrimSpace(wire.Category)),
		Amount:      amount,
		Description: strings.TrimSpace(wire.Description),
		Date:        parseDate(wire.Date),
	}, true
}

// parseAmount accepts integers and floats, rounding the latter.
func parseAmount(n json.Number) (int64, bool) {
	if v, err := n.Int64(); err == nil {
		return v, true
	}
	if f, err := n.Float64(); err == nil {
		return int64(math.Round(f)), true
	}
	return 0, false
}

// parseDate accepts an ISO date or datetime; anything else (including
// null) means "no date given".
func parseDate(raw *string) *time.Time {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, strings.TrimSpace(*raw), time.Local); err == nil {
			return &t
		}
	}
	return nil
}

// stripBlocks removes every machine-readable block variant so the
// remaining text reads as a plain acknowledgment.
func stripBlocks(text string) string {
	text = taggedStripRe.ReplaceAllString(text, "")
	text = fencedStripRe.ReplaceAllString(text, "")
	text = rawRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
