package memory

import "fmt"

// Policy holds the tuning constants for context selection. All counts are
// turns, not tokens.
type Policy struct {
	// Cap bounds how many of the most recent turns are fetched from the
	// store before selection runs.
	Cap int
	// Target bounds the size of the selected context.
	Target int
	// Recent is the size of the always-included recency window.
	Recent int
	// Anchor is how many of the oldest fetched turns are kept to preserve
	// the start of the conversation.
	Anchor int
	// Sample is how many turns are drawn at random from the middle of the
	// log, between the anchor region and the recency window.
	Sample int
}

func DefaultPolicy() Policy {
	return Policy{
		Cap:    80,
		Target: 40,
		Recent: 30,
		Anchor: 5,
		Sample: 5,
	}
}

func (p Policy) Validate() error {
	if p.Cap <= 0 || p.Target <= 0 || p.Recent <= 0 {
		return fmt.Errorf("memory policy: cap, target and recent must be positive")
	}
	if p.Anchor < 0 || p.Sample < 0 {
		return fmt.Errorf("memory policy: anchor and sample must not be negative")
	}
	if p.Target > p.Cap {
		return fmt.Errorf("memory policy: target %d exceeds cap %d", p.Target, p.Cap)
	}
	if p.Recent > p.Target {
		return fmt.Errorf("memory policy: recent window %d exceeds target %d", p.Recent, p.Target)
	}
	return nil
}

// Describe renders the policy for the /policy command.
func (p Policy) Describe() string {
	return fmt.Sprintf(
		"Memory policy:\n"+
			"• fetch at most %d recent turns\n"+
			"• send at most %d turns as context\n"+
			"• always keep the last %d turns\n"+
			"• keep the first %d turns as an anchor\n"+
			"• sample up to %d older turns at random",
		p.Cap, p.Target, p.Recent, p.Anchor, p.Sample,
	)
}
