package report

// Rating is the star grade and advice attached to a total score
type Rating struct {
	Stars      string `json:"stars"`
	Label      string `json:"label"`
	Suggestion string `json:"suggestion"`
}

// String renders "★★★★☆ Positive watch"
func (r Rating) String() string {
	return r.Stars + " " + r.Label
}

// ratingBands is ordered by descending minimum score
var ratingBands = []struct {
	min    float64
	rating Rating
}{
	{80, Rating{"★★★★★", "Strong watch", "Funding and technicals are both excellent; smart money keeps flowing in."}},
	{70, Rating{"★★★★☆", "Positive watch", "Several dimensions look good; the stock has investment value."}},
	{60, Rating{"★★★☆☆", "Moderate watch", "Overall performance is average; watch the key indicators."}},
	{50, Rating{"★★☆☆☆", "Cautious watch", "Some dimensions are weak; treat with caution."}},
}

var waitAndSee = Rating{"★☆☆☆☆", "Wait and see", "Several dimensions perform poorly; waiting is suggested."}

// RatingFor maps a total score to its rating
func RatingFor(total float64) Rating {
	for _, b := range ratingBands {
		if total >= b.min {
			return b.rating
		}
	}
	return waitAndSee
}
