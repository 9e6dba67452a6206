package game

import "fmt"

// BoardSize is the number of rows and columns of the board.
const BoardSize = 6

// Hex addresses a board cell in offset coordinates (flat-top, odd-q layout).
type Hex struct {
	Row int
	Col int
}

func (h Hex) String() string {
	return fmt.Sprintf("[%d, %d]", h.Row, h.Col)
}

type cube struct {
	x, y, z int
}

// toCube converts odd-q offset coords to cube coords.
func toCube(h Hex) cube {
	x := h.Col
	z := h.Row - (h.Col-(h.Col&1))/2
	return cube{x: x, y: -x - z, z: z}
}

// Distance returns the hex distance between two cells.
func Distance(a, b Hex) int {
	ac := toCube(a)
	bc := toCube(b)
	return (abs(ac.x-bc.x) + abs(ac.y-bc.y) + abs(ac.z-bc.z)) / 2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Neighbor offsets {dRow, dCol} for even and odd columns.
var (
	evenColDirections = [6][2]int{{-1, 0}, {-1, 1}, {0, 1}, {1, 0}, {0, -1}, {-1, -1}}
	oddColDirections  = [6][2]int{{-1, 0}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}}
)

// Adjacent returns the neighbors of h that lie on the board.
func Adjacent(h Hex) []Hex {
	dirs := evenColDirections
	if h.Col&1 == 1 {
		dirs = oddColDirections
	}
	neighbors := make([]Hex, 0, 6)
	for _, d := range dirs {
		n := Hex{Row: h.Row + d[0], Col: h.Col + d[1]}
		if InBounds(n) {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// InBounds reports whether h is on the board.
func InBounds(h Hex) bool {
	return h.Row >= 0 && h.Row < BoardSize && h.Col >= 0 && h.Col < BoardSize
}

// CastleRow returns the back row a faction defends.
func CastleRow(f Faction) int {
	if f == Faction1 {
		return BoardSize - 1
	}
	return 0
}

// EnemyCastleRow returns the row a faction's units must reach to damage the enemy castle.
func EnemyCastleRow(f Faction) int {
	return CastleRow(f.Opponent())
}

// AllHexes lists every cell row by row.
func AllHexes() []Hex {
	hexes := make([]Hex, 0, BoardSize*BoardSize)
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			hexes = append(hexes, Hex{Row: r, Col: c})
		}
	}
	return hexes
}
