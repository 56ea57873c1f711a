package board

// State holds everything needed to unwind one do_move/do_null_move: the
// incremental hash material, the rights/ep/clock deltas, and the derived
// attack/pin/check sets recomputed after the move. It is a stack-scoped
// value owned by the caller (typically the search frame): Position only
// holds a borrowed, non-owning pointer to the current top of the chain.
//
// do_move/undo_move (and do_null_move/undo_null_move) must be strictly
// nested and appear in LIFO order within one goroutine's use of a
// Position; the chain is not safe for concurrent use.
type State struct {
	Key        ZobristKey
	PawnKey    [NumColors]ZobristKey
	NonPawnKey [NumColors][NumNonPawnBuckets]ZobristKey

	CastlingRights CastlingRights
	EnPassantSq    Square // NoSquare if the last move was not a double pawn push with a legal ep reply
	Rule50         int
	NullPly        int // plies since the last null move; reset to 0 by do_null_move
	HasCastled     [NumColors]bool
	HasRule50High  bool // not set by fen.Decode, DoMove or DoNullMove; stays false unless a caller sets it

	CapturedPiece Piece
	CapturedSq    Square
	PromotedPiece Piece

	CheckersBB Bitboard
	ChecksBB   [NumPieceTypes]Bitboard
	PinnersBB  [NumColors]Bitboard
	BlockersBB [NumColors]Bitboard
	AttacksBB  [NumColors][NumPieceTypes]Bitboard

	// Repetition is 0 if no repetition was found walking back the state
	// chain, +k for a first match k plies back, or -k once a match's own
	// predecessor had already matched (so a single match at the search
	// root counts as a draw, but one found deeper needs a second).
	Repetition int

	prev *State
}

// reset clears every field except the link to the previous state (do_move
// copies the carried-forward fields from the previous state itself).
func (s *State) reset() {
	*s = State{prev: s.prev}
}
