// Package scoring turns per-category rubric scores into a ranked candidate
// list. It is pure: no I/O, no side effects, and identical inputs always
// produce identical output.
package scoring

import (
	"sort"

	"talentgate/internal/domain"
)

// ScoreCard holds the weighted aggregate per category and the overall
// score for one application.
type ScoreCard struct {
	Screening float64 `json:"screening_score"`
	Culture   float64 `json:"culture_score"`
	Technical float64 `json:"technical_score"`
	Overall   float64 `json:"overall_score"`
}

// categoryScore computes the weighted sum for one category. The divisor is
// always 100: a criterion the reviewer left unscored contributes zero but
// is not excluded from the denominator, and weights summing to less than
// 100 proportionally reduce the score. Both behaviors are deliberate.
func categoryScore(criteria []domain.Criterion, recorded domain.CategoryScores) float64 {
	var sum float64
	for _, c := range criteria {
		value, ok := recorded.Scores[c.Name]
		if !ok {
			continue
		}
		sum += value * float64(c.Weight)
	}
	return sum / 100
}

// Score computes the weighted per-category scores and the overall score
// for an application under the given rubric. An application without an
// evaluation scores zero everywhere. Categories are unweighted relative to
// each other: each category's internal weights already reduce it to a unit
// anchored to the shared note scale.
func Score(app domain.Application, rubric domain.Rubric) ScoreCard {
	var eval domain.Evaluation
	if app.Evaluation != nil {
		eval = *app.Evaluation
	}
	card := ScoreCard{
		Screening: categoryScore(rubric.Screening, eval.Screening),
		Culture:   categoryScore(rubric.Culture, eval.Culture),
		Technical: categoryScore(rubric.Technical, eval.Technical),
	}
	card.Overall = card.Screening + card.Culture + card.Technical
	return card
}

// Ranked is one entry of a job's classification.
type Ranked struct {
	Application domain.Application `json:"application"`
	ScoreCard
}

// Rank produces the total ordering of a job's applications: overall score
// descending, ties broken by application ID ascending so repeated runs
// yield the same order.
func Rank(apps []domain.Application, rubric domain.Rubric) []Ranked {
	ranked := make([]Ranked, 0, len(apps))
	for _, app := range apps {
		ranked = append(ranked, Ranked{Application: app, ScoreCard: Score(app, rubric)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Overall != ranked[j].Overall {
			return ranked[i].Overall > ranked[j].Overall
		}
		return ranked[i].Application.ID.String() < ranked[j].Application.ID.String()
	})
	return ranked
}
