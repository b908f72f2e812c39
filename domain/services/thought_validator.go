package services

import (
	"fmt"
	"strings"
)

// ValidationResult is the structured outcome of a thought admissibility
// check. Rejections carry a reason and at least one suggestion; they are
// results, never errors.
type ValidationResult struct {
	IsValid     bool     `json:"is_valid"`
	Reason      string   `json:"reason,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// ThoughtValidator is the stateless linguistic gate applied to candidate
// thoughts before they enter the store. A single word is admissible only
// when it is "linguistically necessary" (closed function-word list);
// two-word candidates made entirely of such words are too trivial to keep.
type ThoughtValidator struct {
	minTokens int
}

// NewThoughtValidator creates a validator with the given token threshold.
// Thresholds below 2 fall back to 2.
func NewThoughtValidator(minTokens int) *ThoughtValidator {
	if minTokens < 2 {
		minTokens = 2
	}
	return &ThoughtValidator{minTokens: minTokens}
}

// necessaryWords is the fixed closed set of function words a thought may
// consist of alone: pronouns, articles, conjunctions, prepositions, and a
// short interjection/modal list. Membership is order-independent.
var necessaryWords = map[string]bool{
	// Pronouns
	"i": true, "you": true, "he": true, "she": true, "it": true,
	"we": true, "they": true, "me": true, "him": true, "her": true,
	"us": true, "them": true, "this": true, "that": true, "these": true,
	"those": true, "who": true, "whom": true, "whose": true, "which": true,
	"what": true, "my": true, "your": true, "his": true, "its": true,
	"our": true, "their": true,

	// Articles
	"a": true, "an": true, "the": true,

	// Conjunctions
	"and": true, "or": true, "but": true, "nor": true, "so": true,
	"yet": true, "for": true, "if": true, "because": true, "although": true,
	"while": true, "since": true, "unless": true,

	// Prepositions
	"in": true, "on": true, "at": true, "to": true, "of": true,
	"with": true, "by": true, "from": true, "as": true, "into": true,
	"onto": true, "over": true, "under": true, "about": true, "between": true,
	"through": true, "during": true, "before": true, "after": true,
	"above": true, "below": true, "up": true, "down": true, "out": true,
	"off": true,

	// Interjections and modals
	"oh": true, "ah": true, "hey": true, "yes": true, "no": true,
	"not": true, "can": true, "could": true, "will": true, "would": true,
	"shall": true, "should": true, "may": true, "might": true, "must": true,
	"do": true, "does": true, "did": true, "is": true, "are": true,
	"was": true, "were": true, "be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true,
}

// IsNecessaryWord reports whether the lowercase form of the token is in
// the closed function-word set.
func IsNecessaryWord(token string) bool {
	return necessaryWords[strings.ToLower(token)]
}

// Validate applies the admissibility rule to free text.
func (v *ThoughtValidator) Validate(text string) ValidationResult {
	tokens := strings.Fields(text)

	switch len(tokens) {
	case 0:
		return ValidationResult{
			IsValid: false,
			Reason:  "thought is empty",
			Suggestions: []string{
				"provide at least one word",
			},
		}

	case 1:
		token := tokens[0]
		if IsNecessaryWord(token) {
			return ValidationResult{IsValid: true}
		}
		return ValidationResult{
			IsValid: false,
			Reason:  fmt.Sprintf("single word %q carries no standalone meaning", token),
			Suggestions: []string{
				fmt.Sprintf("add context around %q to form a complete thought", token),
				fmt.Sprintf("connect %q to a related entity", token),
			},
		}

	case 2:
		if IsNecessaryWord(tokens[0]) && IsNecessaryWord(tokens[1]) {
			return ValidationResult{
				IsValid: false,
				Reason:  "two function words alone are too trivial to keep",
				Suggestions: []string{
					"add a content word to anchor the thought",
				},
			}
		}
	}

	if len(tokens) < v.minTokens {
		return ValidationResult{
			IsValid: false,
			Reason:  fmt.Sprintf("thought needs at least %d words", v.minTokens),
			Suggestions: []string{
				"expand the thought with more detail",
			},
		}
	}

	return ValidationResult{IsValid: true}
}

// ValidateConnections applies the structural twin of Validate to the
// rendered tokens of an entity connection sequence: zero connections are
// always invalid, a single connection is valid only when its token is a
// necessary word, and two pure function words remain too trivial. Must
// agree with Validate on the joined sequence text.
func (v *ThoughtValidator) ValidateConnections(tokens []string) ValidationResult {
	return v.Validate(strings.Join(tokens, " "))
}
