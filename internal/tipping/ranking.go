package tipping

import (
	"cmp"
	"slices"
)

type RankedEntity struct {
	ID             string  `json:"id"`
	DisplayName    string  `json:"display_name"`
	PrimaryScore   int     `json:"primary_score"`
	SecondaryScore float64 `json:"secondary_score"`
}

// RankEntities returns a sorted copy: primary score descending, then secondary score
// descending. Entities equal on both keys keep their input order.
func RankEntities(entities []RankedEntity) []RankedEntity {
	ranked := make([]RankedEntity, len(entities))
	copy(ranked, entities)

	slices.SortStableFunc(ranked, func(a, b RankedEntity) int {
		if c := cmp.Compare(b.PrimaryScore, a.PrimaryScore); c != 0 {
			return c
		}

		return cmp.Compare(b.SecondaryScore, a.SecondaryScore)
	})

	return ranked
}
