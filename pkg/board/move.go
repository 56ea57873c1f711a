package board

import "fmt"

// MoveKind indicates how a Move's from/to fields are interpreted. 2 bits.
type MoveKind uint8

const (
	Normal MoveKind = iota
	PromotionKind
	EnPassantKind
	CastlingKind
)

// Move is a not-necessarily-legal move, packed into 16 bits:
//
//	bits  0- 5: destination square
//	bits  6-11: origin square
//	bits 12-13: promotion piece type, minus Knight (0=Knight,1=Bishop,2=Rook,3=Queen)
//	bits 14-15: move kind
//
// Castling is encoded as "king captures own rook": From is the king's
// origin, To is the rook's origin square.
//
// NoMove and NullMove are reserved sentinels outside the space of moves a
// generator ever produces (a real move always has From != To).
type Move uint16

const (
	NoMove   Move = 0
	NullMove Move = Move(B1)<<6 | Move(B1)
)

const moveToMask = 0x3f
const moveFromShift = 6
const movePromoShift = 12
const moveKindShift = 14

// NewMove builds a Normal move.
func NewMove(from, to Square) Move {
	return Move(to) | Move(from)<<moveFromShift
}

// NewPromotion builds a promotion move. promo must be Knight, Bishop, Rook
// or Queen.
func NewPromotion(from, to Square, promo PieceType) Move {
	return Move(to) | Move(from)<<moveFromShift | Move(promo-Knight)<<movePromoShift | Move(PromotionKind)<<moveKindShift
}

// NewEnPassant builds an en-passant capture move.
func NewEnPassant(from, to Square) Move {
	return Move(to) | Move(from)<<moveFromShift | Move(EnPassantKind)<<moveKindShift
}

// NewCastling builds a castling move, encoded as "king captures own rook":
// from is the king's origin, rookFrom is the castling rook's origin.
func NewCastling(from, rookFrom Square) Move {
	return Move(rookFrom) | Move(from)<<moveFromShift | Move(CastlingKind)<<moveKindShift
}

func (m Move) To() Square {
	return Square(m & moveToMask)
}

func (m Move) From() Square {
	return Square((m >> moveFromShift) & moveToMask)
}

// Promotion returns the promotion piece type. Only meaningful when
// Kind() == PromotionKind.
func (m Move) Promotion() PieceType {
	return Knight + PieceType((m>>movePromoShift)&0x3)
}

func (m Move) Kind() MoveKind {
	return MoveKind((m >> moveKindShift) & 0x3)
}

func (m Move) IsNone() bool {
	return m == NoMove
}

func (m Move) IsNull() bool {
	return m == NullMove
}

// ParseMove parses a move in pure algebraic coordinate notation, such as
// "a2a4" or "a7a8q" (UCI long algebraic notation). The parsed move carries
// no contextual information about castling or en passant; callers match it
// against the position's legal/pseudo-legal moves to recover that.
func ParseMove(str string) (Move, error) {
	runes := []rune(str)

	if len(runes) < 4 || len(runes) > 5 {
		return NoMove, fmt.Errorf("invalid move: %q", str)
	}

	from, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return NoMove, fmt.Errorf("invalid from in move %q: %w", str, err)
	}
	to, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return NoMove, fmt.Errorf("invalid to in move %q: %w", str, err)
	}

	if len(runes) == 5 {
		promo, ok := ParsePieceType(runes[4])
		if !ok || promo == Pawn || promo == King {
			return NoMove, fmt.Errorf("invalid promotion in move %q", str)
		}
		return NewPromotion(from, to, promo), nil
	}

	return NewMove(from, to), nil
}

// MoveUCI renders m in UCI long algebraic notation for position p. Castling
// uses the king's actual destination square (e.g. "e1g1") in standard
// games, matching what UCI engines and GUIs expect; the internal
// king-captures-own-rook encoding is only rendered as-is for Chess960
// games, where it is itself the wire form.
func MoveUCI(p *Position, m Move) string {
	if m.Kind() != CastlingKind || p.IsChess960() {
		return m.String()
	}
	from, rookFrom := m.From(), m.To()
	us := p.pieceOn[from].Color()
	right := castlingRightOf(us, from, rookFrom, p)
	info, ok := p.CastlingInfo(right)
	if !ok {
		return m.String()
	}
	return fmt.Sprintf("%v%v", from, info.KingTo)
}

func (m Move) String() string {
	if m.IsNone() {
		return "0000"
	}
	if m.IsNull() {
		return "0000"
	}
	if m.Kind() == PromotionKind {
		return fmt.Sprintf("%v%v%v", m.From(), m.To(), m.Promotion())
	}
	return fmt.Sprintf("%v%v", m.From(), m.To())
}
