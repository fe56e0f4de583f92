package present

import (
	"github.com/samvad-hq/skywatch-dashboard/internal/display"
	"github.com/samvad-hq/skywatch-dashboard/internal/domain"
)

const (
	HubbleLabel = "Hubble"
	WebbLabel   = "Webb"
)

var comparisonPairs = [...]domain.ComparisonPair{
	{
		Title:     "Southern Ring Nebula",
		HubbleURL: "https://www.webbcompare.com/img/hubble/southern_nebula_700.jpg",
		WebbURL:   "https://www.webbcompare.com/img/webb/southern_nebula_700.jpg",
	},
	{
		Title:     "Galaxy Cluster SMACS 0723",
		HubbleURL: "https://www.webbcompare.com/img/hubble/deep_field_700.jpg",
		WebbURL:   "https://www.webbcompare.com/img/webb/deep_field_700.jpg",
	},
	{
		Title:     "Carina Nebula",
		HubbleURL: "https://www.webbcompare.com/img/hubble/carina_2800.png",
		WebbURL:   "https://www.webbcompare.com/img/webb/carina_2800.jpg",
	},
	{
		Title:     "Stephan's Quintet",
		HubbleURL: "https://www.webbcompare.com/img/hubble/stephans_quintet_2800.jpg",
		WebbURL:   "https://www.webbcompare.com/img/webb/stephans_quintet_2800.jpg",
	},
}

// ComparisonPairs returns a copy of the compiled-in pairs.
func ComparisonPairs() []domain.ComparisonPair {
	out := make([]domain.ComparisonPair, len(comparisonPairs))
	copy(out, comparisonPairs[:])
	return out
}

// Comparisons draws every pair as a heading followed by a side-by-side widget.
func Comparisons(s display.Surface) {
	for _, pair := range comparisonPairs {
		s.Heading(pair.Title)
		s.Compare(display.Comparison{
			Left:       pair.HubbleURL,
			Right:      pair.WebbURL,
			LeftLabel:  HubbleLabel,
			RightLabel: WebbLabel,
		})
	}
}
