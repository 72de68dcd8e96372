// Package chess provides core chess types and operations.
package chess

import "fmt"

// Colour represents the colour of a piece or player.
type Colour int

const (
	White Colour = iota
	Black
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// HomeRank returns the back rank on which the colour's pieces start.
func (c Colour) HomeRank() int {
	if c == White {
		return 0
	}
	return BoardSize - 1
}

// PawnRank returns the rank on which the colour's pawns start.
func (c Colour) PawnRank() int {
	return c.HomeRank() + c.Forward()
}

// PromotionRank returns the rank farthest from the colour's home side.
func (c Colour) PromotionRank() int {
	return BoardSize - 1 - c.HomeRank()
}

// Forward returns +1 for White, -1 for Black (for pawn direction).
func (c Colour) Forward() int {
	if c == White {
		return 1
	}
	return -1
}

// Team identifies one of the two sides of a game. Which colour a team
// plays is decided when the game is created.
type Team int

const (
	Ally Team = iota
	Opponent
)

// String returns the string representation of a team.
func (t Team) String() string {
	if t == Ally {
		return "Ally"
	}
	return "Opponent"
}

// Enemy returns the other team.
func (t Team) Enemy() Team {
	if t == Ally {
		return Opponent
	}
	return Ally
}

// Kind represents a chess piece type.
type Kind int

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumKinds
)

// String returns the string representation of a piece kind.
func (k Kind) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece kind (uppercase).
func (k Kind) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// KindFromLetter converts a piece letter of either case to a kind.
func KindFromLetter(c byte) Kind {
	switch c {
	case 'K', 'k':
		return King
	case 'Q', 'q':
		return Queen
	case 'R', 'r':
		return Rook
	case 'B', 'b':
		return Bishop
	case 'N', 'n':
		return Knight
	case 'P', 'p':
		return Pawn
	default:
		return NoKind
	}
}

// IsPromotionChoice reports whether a pawn may promote to k.
func (k Kind) IsPromotionChoice() bool {
	switch k {
	case Knight, Bishop, Rook, Queen:
		return true
	default:
		return false
	}
}

// PromotionKinds lists the kinds a pawn can promote to, strongest first.
var PromotionKinds = []Kind{Queen, Rook, Bishop, Knight}

// CastleSide tells which way a king castled, if at all.
type CastleSide int

const (
	NoCastle CastleSide = iota
	Kingside
	Queenside
)

// String returns the string representation of a castle side.
func (s CastleSide) String() string {
	switch s {
	case Kingside:
		return "O-O"
	case Queenside:
		return "O-O-O"
	default:
		return "-"
	}
}

// Constants for board dimensions and castling geometry.
const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize

	KingFile          = 4
	KingsideRookFile  = BoardSize - 1
	QueensideRookFile = 0

	KingsideKingFile  = 6
	KingsideRookTo    = 5
	QueensideKingFile = 2
	QueensideRookTo   = 3

	FileBase = 'a'
	RankBase = '1'
)

// Coordinate is a square on the board. File 0 is the a-file and rank 0 is
// White's back rank.
type Coordinate struct {
	File int
	Rank int
}

// Sq builds a coordinate from a file and rank index.
func Sq(file, rank int) Coordinate {
	return Coordinate{File: file, Rank: rank}
}

// Valid reports whether the coordinate lies on the board.
func (c Coordinate) Valid() bool {
	return c.File >= 0 && c.File < BoardSize && c.Rank >= 0 && c.Rank < BoardSize
}

// Index returns the 0..63 square index (a1 = 0, h8 = 63).
func (c Coordinate) Index() int {
	return c.Rank*BoardSize + c.File
}

// Offset returns the coordinate shifted by df files and dr ranks. The
// result may be off the board.
func (c Coordinate) Offset(df, dr int) Coordinate {
	return Coordinate{File: c.File + df, Rank: c.Rank + dr}
}

// String returns the algebraic name of the square (e.g. "e4").
func (c Coordinate) String() string {
	if !c.Valid() {
		return fmt.Sprintf("(%d,%d)", c.File, c.Rank)
	}
	return string([]byte{byte(FileBase + c.File), byte(RankBase + c.Rank)})
}

// CoordinateFromIndex converts a 0..63 square index back to a coordinate.
func CoordinateFromIndex(i int) Coordinate {
	return Coordinate{File: i % BoardSize, Rank: i / BoardSize}
}

// ParseCoordinate parses an algebraic square name such as "e4".
func ParseCoordinate(s string) (Coordinate, error) {
	if len(s) != 2 {
		return Coordinate{}, fmt.Errorf("invalid square %q", s)
	}
	c := Coordinate{File: int(s[0]) - FileBase, Rank: int(s[1]) - RankBase}
	if !c.Valid() {
		return Coordinate{}, fmt.Errorf("invalid square %q", s)
	}
	return c, nil
}

// MustCoordinate is like ParseCoordinate but panics on bad input. It is
// meant for fixtures and constant tables.
func MustCoordinate(s string) Coordinate {
	c, err := ParseCoordinate(s)
	if err != nil {
		panic(err)
	}
	return c
}
