package search

import (
	"strings"

	"github.com/lgbarn/domination-go/internal/chess"
)

// TypeLimits caps how many pieces of each type a generated piece set holds.
type TypeLimits struct {
	Queens, Rooks, Bishops, Knights int
}

// TypeSets lists every non-empty major piece set within limits whose point
// value lies in [minPoints, maxPoints]. Sets are written queens first, then
// rooks, bishops and knights.
func TypeSets(minPoints, maxPoints int, limits TypeLimits) []string {
	var sets []string
	for q := 0; q <= limits.Queens; q++ {
		for r := 0; r <= limits.Rooks; r++ {
			for b := 0; b <= limits.Bishops; b++ {
				for n := 0; n <= limits.Knights; n++ {
					if q+r+b+n == 0 {
						continue
					}
					points := q*chess.Queen.Points() + r*chess.Rook.Points() +
						b*chess.Bishop.Points() + n*chess.Knight.Points()
					if points < minPoints || points > maxPoints {
						continue
					}
					sets = append(sets, strings.Repeat("Q", q)+strings.Repeat("R", r)+
						strings.Repeat("B", b)+strings.Repeat("N", n))
				}
			}
		}
	}
	return sets
}
