package darwin

import "fmt"

//Direction is the facing of a creature
type Direction int

//the order matters: random placement maps n%4 onto it
const (
	West Direction = iota
	North
	East
	South
)

var directionNames = [...]string{"west", "north", "east", "south"}

//Valid reports whether d is one of the four facings
func (d Direction) Valid() bool {
	return d >= West && d <= South
}

//Left returns the facing after a 90 degree counter-clockwise turn
func (d Direction) Left() Direction {
	switch d {
	case West:
		return South
	case South:
		return East
	case East:
		return North
	default:
		return West
	}
}

//Right returns the facing after a 90 degree clockwise turn
func (d Direction) Right() Direction {
	switch d {
	case West:
		return North
	case North:
		return East
	case East:
		return South
	default:
		return West
	}
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directionNames[d]
}

//ParseDirection maps a facing name back to the Direction
func ParseDirection(s string) (Direction, error) {
	for i, n := range directionNames {
		if n == s {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

//Location is a grid cell, Row grows southwards and Col grows eastwards
type Location struct {
	Row int
	Col int
}

//Loc is a shorthand constructor
func Loc(row, col int) Location {
	return Location{Row: row, Col: col}
}

//Add returns the neighbouring cell in direction d.
//The result may lie outside the grid.
func (l Location) Add(d Direction) Location {
	switch d {
	case North:
		l.Row--
	case South:
		l.Row++
	case East:
		l.Col++
	case West:
		l.Col--
	}
	return l
}

//WithinBounds checks 0 <= Col < width and 0 <= Row < height
func (l Location) WithinBounds(width, height int) bool {
	return l.Col >= 0 && l.Col < width && l.Row >= 0 && l.Row < height
}

//Less orders locations row-major
func (l Location) Less(o Location) bool {
	if l.Row == o.Row {
		return l.Col < o.Col
	}
	return l.Row < o.Row
}

func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.Row, l.Col)
}
