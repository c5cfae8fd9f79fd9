package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akg580/review-insights/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		rating  int
		want    domain.Label
	}{
		{"empty comment neutral rating", "", 3, domain.LabelNeutral},
		{"keyword vs low rating ties", "great product", 1, domain.LabelNeutral},
		{"high rating alone", "arrived on tuesday", 5, domain.LabelPositive},
		{"low rating alone", "arrived on tuesday", 2, domain.LabelNegative},
		{"two positives beat low rating", "good fabric and amazing fit", 1, domain.LabelPositive},
		{"two negatives beat high rating", "bad stitching, poor colour", 5, domain.LabelNegative},
		{"negatives with neutral rating", "bad stitching and poor colour", 3, domain.LabelNegative},
		{"case insensitive", "GREAT and Perfect", 3, domain.LabelPositive},
		{"punctuation prevents match", "great! perfect.", 3, domain.LabelNeutral},
		{"repeated keyword counts twice", "love love", 1, domain.LabelPositive},
		{"mixed tie", "good but issue", 3, domain.LabelNeutral},
		{"tabs and newlines separate tokens", "good\tgreat\nterrible", 3, domain.LabelPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.comment, tt.rating))
		})
	}
}

func TestClassify_HighRatingWithoutNegativesIsPositive(t *testing.T) {
	comments := []string{
		"",
		"fits as expected",
		"good",
		"excellent beautiful amazing",
		"great!",
	}
	for _, c := range comments {
		for r := 4; r <= 5; r++ {
			assert.Equal(t, domain.LabelPositive, Classify(c, r), "comment %q rating %d", c, r)
		}
	}
}

func TestClassify_LowRatingWithoutPositivesIsNegative(t *testing.T) {
	comments := []string{
		"",
		"fits as expected",
		"bad",
		"terrible worst problem",
		"good!",
	}
	for _, c := range comments {
		for r := 1; r <= 2; r++ {
			assert.Equal(t, domain.LabelNegative, Classify(c, r), "comment %q rating %d", c, r)
		}
	}
}

func TestAnalyze_ReportsKeywords(t *testing.T) {
	res := Analyze("Beautiful design but the fabric could be better. Love the fit though!", 4)

	assert.Equal(t, domain.LabelPositive, res.Label)
	assert.Equal(t, []string{"beautiful", "love"}, res.PositiveKeywords)
	assert.Empty(t, res.NegativeKeywords)
	assert.Equal(t, 3, res.PositiveCount)
	assert.Equal(t, 0, res.NegativeCount)
}

func TestAnalyze_EmptyKeywordSlicesAreNotNil(t *testing.T) {
	res := Analyze("", 3)

	assert.NotNil(t, res.PositiveKeywords)
	assert.NotNil(t, res.NegativeKeywords)
	assert.Equal(t, domain.LabelNeutral, res.Label)
}

func TestWordLists(t *testing.T) {
	assert.Equal(t, []string{"amazing", "beautiful", "excellent", "good", "great", "love", "perfect"}, PositiveWords())
	assert.Equal(t, []string{"bad", "disappointed", "issue", "poor", "problem", "terrible", "worst"}, NegativeWords())
}
