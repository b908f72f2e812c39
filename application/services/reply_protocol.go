package services

import "strings"

// Reply-prefix sentinels for role dispatch output. A role either opens
// with DerivePrefix followed by the content of a new thought, or answers
// exactly SkipSentinel to decline. Anything else is a protocol violation.
const (
	DerivePrefix = "NEW THOUGHT:"
	SkipSentinel = "NO THOUGHT"
)

// ReplyOutcome classifies a parsed role reply.
type ReplyOutcome int

const (
	// OutcomeDerive carries new thought content.
	OutcomeDerive ReplyOutcome = iota
	// OutcomeSkip is a deliberate decline.
	OutcomeSkip
	// OutcomeMalformed is an unrecognized reply shape.
	OutcomeMalformed
)

// ParsedReply is the result of interpreting one role reply.
type ParsedReply struct {
	Outcome ReplyOutcome
	// Content is the derived thought text, set only for OutcomeDerive.
	Content string
	// Raw preserves the original reply for logging on violations.
	Raw string
}

// ParseReply applies the two-token-prefix protocol to a raw backend
// reply. Leading and trailing whitespace is ignored, as is anything a
// role appends after the skip sentinel on the same line.
func ParseReply(raw string) ParsedReply {
	trimmed := strings.TrimSpace(raw)

	if strings.HasPrefix(trimmed, DerivePrefix) {
		content := strings.TrimSpace(strings.TrimPrefix(trimmed, DerivePrefix))
		if content == "" {
			return ParsedReply{Outcome: OutcomeMalformed, Raw: raw}
		}
		return ParsedReply{Outcome: OutcomeDerive, Content: content, Raw: raw}
	}

	if trimmed == SkipSentinel || strings.HasPrefix(trimmed, SkipSentinel) {
		return ParsedReply{Outcome: OutcomeSkip, Raw: raw}
	}

	return ParsedReply{Outcome: OutcomeMalformed, Raw: raw}
}
