package domain

import "fmt"

// Label is the derived sentiment of a review.
type Label string

const (
	LabelPositive Label = "positive"
	LabelNeutral  Label = "neutral"
	LabelNegative Label = "negative"
)

// Labels returns all sentiment labels in display order.
func Labels() []Label {
	return []Label{LabelPositive, LabelNeutral, LabelNegative}
}

// ParseLabel converts s into a Label.
func ParseLabel(s string) (Label, error) {
	switch l := Label(s); l {
	case LabelPositive, LabelNeutral, LabelNegative:
		return l, nil
	default:
		return "", fmt.Errorf("unknown sentiment label %q", s)
	}
}

// String implements fmt.Stringer.
func (l Label) String() string {
	return string(l)
}
