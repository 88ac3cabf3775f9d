package config

import "github.com/lgbarn/domination-go/internal/chess"

// SettingsBuilder provides a fluent API for building Settings.
type SettingsBuilder struct {
	s        *Settings
	rangeSet bool
}

// NewSettingsBuilder creates a builder starting from an unfiltered search of
// pieces on a standard board.
func NewSettingsBuilder(pieces string) *SettingsBuilder {
	return &SettingsBuilder{s: NewSettings(pieces, 0)}
}

// Build validates and returns the settings. Without an explicit range the
// symmetry piece may use every square.
func (b *SettingsBuilder) Build() (*Settings, error) {
	s := *b.s
	if !b.rangeSet {
		s.LastPieceStart = 0
		s.LastPieceEnd = s.Dims.Squares()
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// WithPieces replaces the piece set.
func (b *SettingsBuilder) WithPieces(pieces string) *SettingsBuilder {
	b.s.Pieces = SortPieces(pieces)
	return b
}

// WithDims sets the board dimensions.
func (b *SettingsBuilder) WithDims(ranks, files int) *SettingsBuilder {
	b.s.Dims = chess.Dims{Ranks: ranks, Files: files}
	return b
}

// WithTarget sets the target score.
func (b *SettingsBuilder) WithTarget(target int) *SettingsBuilder {
	b.s.TargetScore = target
	return b
}

// WithSelfCover sets whether a piece covers its own square.
func (b *SettingsBuilder) WithSelfCover(enabled bool) *SettingsBuilder {
	b.s.PieceCoversOwnSquare = enabled
	return b
}

// WithScoreByValue scores by point value instead of piece count.
func (b *SettingsBuilder) WithScoreByValue(enabled bool) *SettingsBuilder {
	b.s.ScoreByPieceValue = enabled
	return b
}

// WithRookQueenLines sets whether rooks and queens may share ranks and files.
func (b *SettingsBuilder) WithRookQueenLines(allowed bool) *SettingsBuilder {
	b.s.AllowRooksQueensOnSameLines = allowed
	return b
}

// WithPawnsOnStartingRank sets whether pawns may stand on the second rank.
func (b *SettingsBuilder) WithPawnsOnStartingRank(allowed bool) *SettingsBuilder {
	b.s.AllowPawnsOnStartingRank = allowed
	return b
}

// WithMaxEdge limits the non-rook, non-pawn pieces on the edge.
func (b *SettingsBuilder) WithMaxEdge(n int) *SettingsBuilder {
	b.s.MaxNonRookNonPawnOnEdge = n
	return b
}

// WithMirror enables or disables mirror symmetry pruning.
func (b *SettingsBuilder) WithMirror(enabled bool) *SettingsBuilder {
	b.s.MirrorSymmetry = enabled
	return b
}

// WithRange restricts the symmetry piece to [start, end).
func (b *SettingsBuilder) WithRange(start, end int) *SettingsBuilder {
	b.s.LastPieceStart = start
	b.s.LastPieceEnd = end
	b.rangeSet = true
	return b
}
