package service

import (
	"regexp"
	"strings"

	"github.com/fashio-ai/styling-api/internal/core/domain"
)

// Rating chat carries a hard content rule: a request for a numeric or
// percentile beauty comparison against a population is never answered
// quantitatively. The reply is an empathetic refusal plus a positive,
// rating-derived compliment.

var quantifierRe = regexp.MustCompile(`(?i)(percent|percentile|%|\brank\b|\branked\b|\branking\b|\bout of\s*\d|\bhow many\b|\bscale of\b)`)
var populationRe = regexp.MustCompile(`(?i)(people|others|everyone|population|average (person|man|woman)|most (men|women|people)|than me|compared to)`)

// digitsRe matches any numeric quantity or percent sign.
var digitsRe = regexp.MustCompile(`[0-9]+(\.[0-9]+)?\s*%?|%`)

// seeksComparison reports whether a message asks to be measured against
// other people in numeric terms.
func seeksComparison(message string) bool {
	return quantifierRe.MatchString(message) && populationRe.MatchString(message)
}

// redirectionReply builds the fixed refusal-plus-compliment response. It
// contains no digits and no percent signs regardless of the rating content.
func redirectionReply(rating domain.OutfitRating) string {
	var b strings.Builder
	b.WriteString("I completely understand the curiosity, but comparing your looks to other people isn't something I'll put a number on. Beauty doesn't rank that way, and you deserve better than a percentage. ")

	compliment := rating.Summary
	if compliment == "" {
		compliment = rating.OutfitAnalysis.Comments
	}
	if compliment = sanitizeQuantities(compliment); compliment != "" {
		b.WriteString("What I can tell you is this: ")
		b.WriteString(compliment)
	} else {
		b.WriteString("What I can tell you is that your look has real presence. Let's build on what's working for you.")
	}
	return b.String()
}

// sanitizeQuantities strips numerals and percent signs so a rating-derived
// compliment can never smuggle a score back into a redirection.
func sanitizeQuantities(s string) string {
	s = digitsRe.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}
