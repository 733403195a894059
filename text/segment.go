package text

import (
	"golang.org/x/text/unicode/bidi"
)

// DetectBaseDirection resolves the base direction of a label with the
// Unicode bidi algorithm. Labels with a right-to-left first strong
// character (Hebrew or Arabic file names, media attributes) shape RTL;
// everything else, including neutral-only text, defaults to LTR.
func DetectBaseDirection(label string) Direction {
	if label == "" {
		return DirectionLTR
	}

	p := bidi.Paragraph{}
	if _, err := p.SetString(label); err != nil {
		return DirectionLTR
	}
	ordering, err := p.Order()
	if err != nil {
		return DirectionLTR
	}
	if ordering.NumRuns() == 0 {
		return DirectionLTR
	}
	run := ordering.Run(0)
	if run.Direction() == bidi.RightToLeft {
		return DirectionRTL
	}
	return DirectionLTR
}
