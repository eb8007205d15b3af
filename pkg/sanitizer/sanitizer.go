// Package sanitizer normalizes free-text input before validation and
// persistence. Sanitizers are pure string transforms and never fail; anything
// they cannot fix is left for the validator to reject.
package sanitizer

// Strategy is a single normalization step.
type Strategy func(string) string

// Pipeline applies strategies in order.
type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}
