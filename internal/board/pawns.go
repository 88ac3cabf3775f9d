package board

import (
	"github.com/lgbarn/domination-go/internal/chess"
	"github.com/lgbarn/domination-go/internal/config"
	"github.com/lgbarn/domination-go/internal/hashing"
)

// Feasibility is the result of a pawn feasibility search for one placement.
type Feasibility struct {
	// OK reports whether the board, with at most the allowed pawns added,
	// attacks every square.
	OK bool

	// Evaluated counts coverage passes, one per board tried including the
	// starting board.
	Evaluated int64

	// Solution is the dominating board including the added pawns. It is nil
	// unless OK, and never aliases the board being enumerated.
	Solution *Board

	// PawnSets counts the distinct pawn sets tried; DuplicateSets counts the
	// candidates skipped because their set had been tried already.
	PawnSets      int
	DuplicateSets int
}

// EvaluatePawns decides whether pawns can complete domination of the current
// placement within the score allowed by s. The board is not modified; every
// pawn trial runs on a copy.
func (b *Board) EvaluatePawns(s *config.Settings) Feasibility {
	var f Feasibility
	tracker := hashing.NewPawnSetTracker()

	solution := b.evaluatePawns(tracker, s, &f.Evaluated)
	f.PawnSets = tracker.UniqueCount()
	f.DuplicateSets = tracker.DuplicateCount()
	if solution == nil {
		return f
	}
	if solution == b {
		solution = FromPieces(b.dims, b.pieces, nil)
	}
	f.OK = true
	f.Solution = solution
	return f
}

// PawnsFeasible reports whether EvaluatePawns succeeds.
func (b *Board) PawnsFeasible(s *config.Settings) bool {
	return b.EvaluatePawns(s).OK
}

func (b *Board) evaluatePawns(tracker *hashing.PawnSetTracker, s *config.Settings, evaluated *int64) *Board {
	pawns := b.typeGroups[chess.Pawn]

	score := len(b.pieces)
	if s.ScoreByPieceValue {
		score = b.totalPoints
	}
	// Zero is a valid budget: the board may already dominate.
	budget := min(s.TargetScore-score, s.MaxPawns()-len(pawns))
	if budget < 0 {
		return nil
	}

	candidates, ok := b.pawnCandidates(budget, s)
	*evaluated++
	if !ok {
		return nil
	}
	if len(candidates) == 0 {
		return b
	}

	existing := make([]int, len(pawns))
	for i, p := range pawns {
		existing[i] = p.Position(b.dims)
	}

	for _, pos := range candidates {
		if !tracker.TryAdd(hashing.Canonical(existing, pos)) {
			continue
		}
		rank, file := b.dims.Square(pos)
		trial := FromPieces(b.dims, b.pieces, chess.NewPiece(chess.Pawn, rank, file))
		if solution := trial.evaluatePawns(tracker, s, evaluated); solution != nil {
			return solution
		}
	}
	return nil
}

// candidateSet keeps candidate pawn squares unique, in the order found.
type candidateSet struct {
	seen  []bool
	order []int
}

func newCandidateSet(squares int) *candidateSet {
	return &candidateSet{seen: make([]bool, squares)}
}

func (c *candidateSet) add(pos int) {
	if !c.seen[pos] {
		c.seen[pos] = true
		c.order = append(c.order, pos)
	}
}

func (c *candidateSet) len() int {
	return len(c.order)
}

// pawnCandidates scans the uncovered squares rank by rank and returns every
// square where a pawn could help. It returns false when a lower bound on the
// pawns needed already exceeds budget, or when some square cannot be covered
// by a pawn at all. An empty list with true means the board dominates.
func (b *Board) pawnCandidates(budget int, s *config.Settings) ([]int, bool) {
	covered := b.Coverage(s.PieceCoversOwnSquare)
	cands := newCandidateSet(b.dims.Squares())
	minRequired := 0

	// Squares on the next rank, by file parity, already covered by pawns
	// that are needed on this rank.
	carryEven, carryOdd := 0, 0

	// Pawns cannot attack the lower ranks, so an uncovered square there needs
	// a pawn on it.
	forceRank := func(rank int, allowed bool) bool {
		for file := 0; file < b.dims.Files; file++ {
			if covered.Get(rank, file) {
				continue
			}
			if !allowed {
				return false
			}
			minRequired++
			cands.add(b.dims.Position(rank, file))
			if file%2 == 0 {
				carryOdd += 2
			} else {
				carryEven += 2
			}
		}
		return true
	}

	if !forceRank(0, s.AllowPawnsOnStartingRank && s.PieceCoversOwnSquare) {
		return nil, false
	}
	startRank := 1
	if !s.AllowPawnsOnStartingRank && b.dims.Ranks > 1 {
		if !forceRank(1, s.PieceCoversOwnSquare) {
			return nil, false
		}
		startRank = 2
	}
	if minRequired > budget {
		return nil, false
	}

	for rank := startRank; rank < b.dims.Ranks; rank++ {
		rankStartCands := cands.len()
		rankStartMin := minRequired

		// A pawn attacks two squares of equal parity, so even and odd files
		// are counted separately.
		evenMissing := b.scanFiles(rank, 0, covered, cands, s)
		oddMissing := b.scanFiles(rank, 1, covered, cands, s)
		minRequired += (max(0, evenMissing-carryEven) + 1) / 2
		minRequired += (max(0, oddMissing-carryOdd) + 1) / 2

		if s.PieceCoversOwnSquare {
			carryEven, carryOdd = oddMissing*2, evenMissing*2
		}

		if minRequired > budget {
			return nil, false
		}
		// Pieces block too many of the squares pawns would need.
		if !s.PieceCoversOwnSquare && minRequired-rankStartMin > cands.len()-rankStartCands {
			return nil, false
		}
	}

	return cands.order, true
}

// scanFiles records candidates for the uncovered squares of rank on files of
// the given parity and returns how many there were.
func (b *Board) scanFiles(rank, parity int, covered *chess.Grid, cands *candidateSet, s *config.Settings) int {
	missing := 0
	for file := parity; file < b.dims.Files; file += 2 {
		if covered.Get(rank, file) {
			continue
		}
		missing++
		if file > 0 && !b.occupancy.Get(rank-1, file-1) {
			cands.add(b.dims.Position(rank-1, file-1))
		}
		if file < b.dims.Files-1 && !b.occupancy.Get(rank-1, file+1) {
			cands.add(b.dims.Position(rank-1, file+1))
		}
		if s.PieceCoversOwnSquare {
			cands.add(b.dims.Position(rank, file))
		}
	}
	return missing
}
