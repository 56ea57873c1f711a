package board

import "errors"

// ErrNoKing indicates a position does not have exactly one king (none, or
// more than one) for one or both colors,
// an invariant the rest of the package assumes holds once a Position is
// fully decoded (KingSquare panics on it internally; decoders should catch
// it first and return this error instead).
var ErrNoKing = errors.New("board: position has no king")

// ErrIllegalCastling indicates a castling right cannot be resolved to an
// actual king/rook pair on the board -- a malformed or contradictory
// castling field.
var ErrIllegalCastling = errors.New("board: illegal castling rights")
