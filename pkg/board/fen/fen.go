// Package fen reads and writes positions in Forsyth-Edwards Notation,
// including the X-FEN/Shredder-FEN castling extensions needed for
// Chess960.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/kaeldric/chesscore/pkg/board"
)

const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses fen into a freshly populated Position rooted at root (which
// the caller owns), returning the halfmove clock and fullmove number
// alongside it; those two live outside Position/State since they are
// presentational FEN fields, not state needed by move generation.
//
// Castling rights are accepted in both standard ("KQkq") and Shredder-FEN
// (rook home file letters, e.g. "HAha") form, letter by letter: K/Q (k/q)
// always select the outermost rook on that side of the king, and any other
// letter names the rook's file directly. A position is flagged Chess960 if
// a file letter is used, or if a castling right belongs to a king off the
// e-file or to a rook off the a- and h-files.
func Decode(zt *board.ZobristTable, root *board.State, fen string) (*board.Position, int, int, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, 0, 0, fmt.Errorf("fen: invalid number of fields: %q", fen)
	}

	pos := board.NewPosition(zt, root)

	kingSq := [2]board.Square{board.NoSquare, board.NoSquare}
	rookSqs := [2][]board.Square{}

	sq := board.A8
	file := 0
	for _, r := range parts[0] {
		switch {
		case r == '/':
			if file != 8 {
				return nil, 0, 0, fmt.Errorf("fen: short rank in piece placement: %q", fen)
			}
			sq -= 16
			file = 0
		case unicode.IsDigit(r):
			n := int(r - '0')
			sq += board.Square(n)
			file += n
		case unicode.IsLetter(r):
			pc, ok := board.ParsePiece(r)
			if !ok {
				return nil, 0, 0, fmt.Errorf("fen: invalid piece %q in %q", r, fen)
			}
			pos.PutPiece(pc, sq)
			if pc.Type() == board.King {
				kingSq[pc.Color()] = sq
			}
			if pc.Type() == board.Rook {
				rookSqs[pc.Color()] = append(rookSqs[pc.Color()], sq)
			}
			sq++
			file++
		default:
			return nil, 0, 0, fmt.Errorf("fen: invalid character %q in %q", r, fen)
		}
	}
	if file != 8 {
		return nil, 0, 0, fmt.Errorf("fen: short last rank in piece placement: %q", fen)
	}

	for _, c := range [2]board.Color{board.White, board.Black} {
		if pos.Count(c, board.King) != 1 {
			return nil, 0, 0, fmt.Errorf("fen: %w: %q", board.ErrNoKing, fen)
		}
	}

	active, ok := board.ParseColor(parts[1])
	if !ok {
		return nil, 0, 0, fmt.Errorf("fen: invalid active color: %q", fen)
	}

	chess960, err := decodeCastling(pos, parts[2], kingSq, rookSqs)
	if err != nil {
		return nil, 0, 0, err
	}
	pos.SetChess960(chess960)

	epSq := board.NoSquare
	if parts[3] != "-" {
		s, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, 0, 0, fmt.Errorf("fen: invalid en passant target: %q", fen)
		}
		epSq = s
	}

	rule50, err := strconv.Atoi(parts[4])
	if err != nil || rule50 < 0 {
		return nil, 0, 0, fmt.Errorf("fen: invalid halfmove clock: %q", fen)
	}

	fullmoves, err := strconv.Atoi(parts[5])
	if err != nil || fullmoves < 1 {
		return nil, 0, 0, fmt.Errorf("fen: invalid fullmove number: %q", fen)
	}

	ply := (fullmoves-1)*2
	if active == board.Black {
		ply++
	}
	pos.SetActiveColorAndPly(active, ply)

	root.Rule50 = rule50
	root.EnPassantSq = board.NoSquare // only hashed in below if an ep capture actually exists
	if epSq != board.NoSquare {
		root.EnPassantSq = epSq
	}

	rebuildZobrist(pos, root, zt)

	return pos, rule50, fullmoves, nil
}

func decodeCastling(pos *board.Position, field string, kingSq [2]board.Square, rookSqs [2][]board.Square) (bool, error) {
	if field == "-" {
		return false, nil
	}

	chess960 := false
	for _, r := range field {
		var c board.Color
		switch {
		case unicode.IsUpper(r):
			c = board.White
		default:
			c = board.Black
		}
		if kingSq[c] == board.NoSquare {
			return false, fmt.Errorf("fen: %w: castling right %q with no king placed", board.ErrIllegalCastling, string(r))
		}
		standardKingHome := board.NewSquare(board.FileE, homeRank(c))
		if kingSq[c] != standardKingHome {
			chess960 = true
		}

		upper := unicode.ToUpper(r)
		var right board.CastlingRights
		var rookFrom board.Square

		switch upper {
		case 'K':
			right = kingSideRight(c)
			rookFrom = outermostRook(rookSqs[c], kingSq[c], true)
		case 'Q':
			right = queenSideRight(c)
			rookFrom = outermostRook(rookSqs[c], kingSq[c], false)
		default:
			// Shredder-FEN: the letter names the rook's home file directly.
			f, ok := board.ParseFile(upper)
			if !ok {
				return false, fmt.Errorf("fen: %w: invalid castling field %q", board.ErrIllegalCastling, field)
			}
			rookFrom = board.NewSquare(f, homeRank(c))
			if rookFrom > kingSq[c] {
				right = kingSideRight(c)
			} else {
				right = queenSideRight(c)
			}
			chess960 = true
		}

		if rookFrom == board.NoSquare {
			return false, fmt.Errorf("fen: %w: castling right %q with no matching rook", board.ErrIllegalCastling, string(r))
		}
		if rookFrom.File() != board.FileA && rookFrom.File() != board.FileH {
			chess960 = true
		}
		pos.SetCastlingRight(right, c, kingSq[c], rookFrom)
		pos.State().CastlingRights |= right
	}
	return chess960, nil
}

func homeRank(c board.Color) board.Rank {
	if c == board.White {
		return board.Rank1
	}
	return board.Rank8
}

func kingSideRight(c board.Color) board.CastlingRights {
	if c == board.White {
		return board.WhiteOO
	}
	return board.BlackOO
}

func queenSideRight(c board.Color) board.CastlingRights {
	if c == board.White {
		return board.WhiteOOO
	}
	return board.BlackOOO
}

// outermostRook finds a color's rook on the standard side (kingSide:
// h-file-ward, else a-file-ward) of its king, the convention "K"/"Q" use
// even in Chess960 FENs that otherwise identify rooks by file letter.
func outermostRook(rooks []board.Square, king board.Square, kingSide bool) board.Square {
	best := board.NoSquare
	for _, r := range rooks {
		if kingSide && r <= king {
			continue
		}
		if !kingSide && r >= king {
			continue
		}
		if best == board.NoSquare {
			best = r
			continue
		}
		if kingSide && r > best {
			best = r
		}
		if !kingSide && r < best {
			best = r
		}
	}
	return best
}

// rebuildZobrist computes the full Zobrist key material from scratch for a
// freshly-decoded position; FEN decoding is not a hot path, so there is no
// incremental shortcut to preserve here.
func rebuildZobrist(pos *board.Position, root *board.State, zt *board.ZobristTable) {
	var key board.ZobristKey
	var pawnKey [2]board.ZobristKey
	var nonPawnKey [2][2]board.ZobristKey

	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		pc := pos.PieceOn(sq)
		if pc == board.NoPiece {
			continue
		}
		c, pt := pc.Color(), pc.Type()
		k := zt.PieceKey(c, pt, sq)
		key ^= k
		if pt == board.Pawn {
			pawnKey[c] ^= k
		}
	}
	// Non-pawn buckets require the piece type/bucket association, which
	// PieceKey alone doesn't expose; recompute via a second scan per type.
	for c := board.ZeroColor; c < board.NumColors; c++ {
		for _, sq := range pos.SquaresOf(c, board.Knight) {
			nonPawnKey[c][0] ^= zt.PieceKey(c, board.Knight, sq)
		}
		for _, sq := range pos.SquaresOf(c, board.Bishop) {
			nonPawnKey[c][0] ^= zt.PieceKey(c, board.Bishop, sq)
		}
		for _, sq := range pos.SquaresOf(c, board.Rook) {
			nonPawnKey[c][1] ^= zt.PieceKey(c, board.Rook, sq)
		}
		for _, sq := range pos.SquaresOf(c, board.Queen) {
			nonPawnKey[c][1] ^= zt.PieceKey(c, board.Queen, sq)
		}
	}

	key ^= zt.CastlingKey(root.CastlingRights)
	if root.EnPassantSq != board.NoSquare {
		them := pos.ActiveColor().Opponent()
		if pos.Pieces(pos.ActiveColor(), board.Pawn)&board.PawnAttacksBB(them, root.EnPassantSq) != 0 {
			key ^= zt.EnPassantKey(root.EnPassantSq.File())
		} else {
			root.EnPassantSq = board.NoSquare
		}
	}
	if pos.ActiveColor() == board.White {
		key ^= zt.TurnKey()
	}

	root.Key = key
	root.PawnKey = pawnKey
	root.NonPawnKey = nonPawnKey

	pos.RecomputeCheckInfo()
}

// Encode renders pos (with the given halfmove clock and fullmove number) in
// FEN notation. Castling rights are rendered in Shredder-FEN (rook home
// file letter) form whenever the position is flagged Chess960, standard
// "KQkq" form otherwise.
func Encode(pos *board.Position, rule50, fullmoves int) string {
	var sb strings.Builder
	for r := int(board.Rank8); r >= 0; r-- {
		blanks := 0
		for f := board.ZeroFile; f < board.NumFiles; f++ {
			pc := pos.PieceOn(board.NewSquare(f, board.Rank(r)))
			if pc == board.NoPiece {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteString(pc.String())
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}

	castling := encodeCastling(pos)

	ep := "-"
	if sq := pos.EnPassantSquare(); sq != board.NoSquare {
		ep = sq.String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), pos.ActiveColor(), castling, ep, rule50, fullmoves)
}

func encodeCastling(pos *board.Position) string {
	rights := []board.CastlingRights{board.WhiteOO, board.WhiteOOO, board.BlackOO, board.BlackOOO}
	var sb strings.Builder
	for _, right := range rights {
		if !pos.CastlingRights().Has(right) {
			continue
		}
		info, ok := pos.CastlingInfo(right)
		if !ok {
			continue
		}
		if pos.IsChess960() {
			f := info.RookFrom.File().String()
			if info.Color == board.White {
				f = strings.ToUpper(f)
			}
			sb.WriteString(f)
		} else {
			switch right {
			case board.WhiteOO:
				sb.WriteString("K")
			case board.WhiteOOO:
				sb.WriteString("Q")
			case board.BlackOO:
				sb.WriteString("k")
			case board.BlackOOO:
				sb.WriteString("q")
			}
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}
