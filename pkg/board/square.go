package board

import "fmt"

// Square represents a square on the board, ordered a1=0, b1=1, .., h8=63.
// This numbering matches the little-endian rank-file bitboard mapping used
// throughout this package: bit i of a Bitboard corresponds to square i.
//
//	a8=56 b8=57 c8=58 d8=59 e8=60 f8=61 g8=62 h8=63
//	a7=48 b7=49 c7=50 d7=51 e7=52 f7=53 g7=54 h7=55
//	a6=40 b6=41 c6=42 d6=43 e6=44 f6=45 g6=46 h6=47
//	a5=32 b5=33 c5=34 d5=35 e5=36 f5=37 g5=38 h5=39
//	a4=24 b4=25 c4=26 d4=27 e4=28 f4=29 g4=30 h4=31
//	a3=16 b3=17 c3=18 d3=19 e3=20 f3=21 g3=22 h3=23
//	a2= 8 b2= 9 c2=10 d2=11 e2=12 f2=13 g2=14 h2=15
//	a1= 0 b1= 1 c1= 2 d1= 3 e1= 4 f1= 5 g1= 6 h1= 7
type Square uint8

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1

	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2

	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3

	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4

	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5

	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6

	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7

	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

const (
	ZeroSquare Square = 0
	NumSquares Square = 64

	// NoSquare is a sentinel outside the board, used for "no en passant
	// target" and similar absent-square cases.
	NoSquare Square = 64
)

func NewSquare(f File, r Rank) Square {
	return Square(r)<<3 | Square(f)
}

func ParseSquare(f, r rune) (Square, error) {
	file, ok := ParseFile(f)
	if !ok {
		return 0, fmt.Errorf("invalid file: %v", f)
	}
	rank, ok := ParseRank(r)
	if !ok {
		return 0, fmt.Errorf("invalid rank: %v", r)
	}
	return NewSquare(file, rank), nil
}

func ParseSquareStr(str string) (Square, error) {
	runes := []rune(str)
	if len(runes) != 2 {
		return 0, fmt.Errorf("invalid square: %v", str)
	}
	return ParseSquare(runes[0], runes[1])
}

func (s Square) IsValid() bool {
	return s < NumSquares
}

func (s Square) File() File {
	return File(s & 0x7)
}

func (s Square) Rank() Rank {
	return Rank(s >> 3)
}

// RelativeRank mirrors the rank so that the promotion rank is always Rank8
// from the mover's point of view.
func (s Square) RelativeRank(c Color) Rank {
	if c == White {
		return s.Rank()
	}
	return Rank8 - s.Rank()
}

// Diag18 returns the index of the a8-h1 diagonal family this square lies
// on: rank+file, in [0,14].
func (s Square) Diag18() int {
	return int(s.Rank()) + int(s.File())
}

// Diag81 returns the index of the a1-h8 ("main") diagonal family this
// square lies on: rank+(7-file), in [0,14].
func (s Square) Diag81() int {
	return int(s.Rank()) + (7 - int(s.File()))
}

func (s Square) String() string {
	if !s.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%v%v", s.File(), s.Rank())
}

// Rank represents a chess board rank from Rank1=0, ..Rank8=7. 3 bits.
type Rank uint8

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

const (
	ZeroRank Rank = 0
	NumRanks Rank = 8
)

func ParseRank(r rune) (Rank, bool) {
	if r < '1' || r > '8' {
		return 0, false
	}
	return Rank(r - '1'), true
}

func (r Rank) IsValid() bool {
	return r <= Rank8
}

func (r Rank) String() string {
	if !r.IsValid() {
		return "?"
	}
	return string(rune('1' + r))
}

// File represents a chess board file from FileA=0, ..FileH=7. 3 bits.
type File uint8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	ZeroFile File = 0
	NumFiles File = 8
)

func ParseFile(r rune) (File, bool) {
	switch {
	case r >= 'a' && r <= 'h':
		return File(r - 'a'), true
	case r >= 'A' && r <= 'H':
		return File(r - 'A'), true
	default:
		return 0, false
	}
}

func (f File) IsValid() bool {
	return f <= FileH
}

func (f File) String() string {
	if !f.IsValid() {
		return "?"
	}
	return string(rune('a' + f))
}

// KingDistance returns the Chebyshev (king-move) distance between two
// squares.
func KingDistance(a, b Square) int {
	df := fileDiff(a, b)
	dr := rankDiff(a, b)
	if df > dr {
		return df
	}
	return dr
}

// TaxicabDistance returns the Manhattan distance between two squares.
func TaxicabDistance(a, b Square) int {
	return fileDiff(a, b) + rankDiff(a, b)
}

func fileDiff(a, b Square) int {
	d := int(a.File()) - int(b.File())
	if d < 0 {
		return -d
	}
	return d
}

func rankDiff(a, b Square) int {
	d := int(a.Rank()) - int(b.Rank())
	if d < 0 {
		return -d
	}
	return d
}
