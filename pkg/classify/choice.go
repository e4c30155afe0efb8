// Package classify turns operator input into an integration classification.
package classify

import "strings"

// Choice is the classification picked for one integration. Skip is the zero
// value and the safe default for anything unrecognized.
type Choice int

const (
	Skip Choice = iota
	Device
	Service
	Hub
)

// String returns the manifest value for the choice.
func (c Choice) String() string {
	switch c {
	case Device:
		return "device"
	case Service:
		return "service"
	case Hub:
		return "hub"
	default:
		return "skip"
	}
}

// Types lists the legal integration_type values in prompt order.
func Types() []string {
	return []string{"device", "service", "hub"}
}

// choiceAliases maps normalized operator input to a choice. Anything not in
// the table resolves to Skip.
var choiceAliases = map[string]Choice{
	"1":       Device,
	"device":  Device,
	"2":       Service,
	"service": Service,
	"3":       Hub,
	"hub":     Hub,
	"0":       Skip,
	"skip":    Skip,
	"":        Skip,
}

// ParseChoice normalizes input (trims whitespace, lowercases) and resolves it
// via the alias table. ok is false when the input was unrecognized; the
// returned choice is still Skip in that case, never a guessed classification.
func ParseChoice(input string) (Choice, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	choice, ok := choiceAliases[normalized]
	if !ok {
		return Skip, false
	}
	return choice, true
}
