// Package darwin simulates creatures running small species programs on a bounded grid.
package darwin

import (
	"fmt"
	"math/rand"
)

//Source is the random generator consulted by if_random.
//*rand.Rand satisfies it.
type Source interface {
	Int() int
}

//Option configures a World at construction time
type Option func(w *World)

//WithRand injects the generator used by if_random
func WithRand(r Source) Option {
	return func(w *World) {
		w.rng = r
	}
}

//World is the bounded grid with its creatures.
//zoo is append-only, grid maps every occupied cell to an index into zoo.
type World struct {
	zoo    []Creature
	grid   map[Location]int
	width  int
	height int
	turn   int
	rng    Source
}

//NewWorld creates an empty world of width columns and height rows
func NewWorld(width, height int, opts ...Option) *World {
	w := &World{
		grid:   make(map[Location]int),
		width:  width,
		height: height,
	}
	for _, o := range opts {
		o(w)
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewSource(0))
	}
	return w
}

//AddCreature places a new creature of species s at l facing d.
//The world is left untouched on error.
func (w *World) AddCreature(s *Species, d Direction, l Location) error {
	if s == nil {
		return fmt.Errorf("%w: nil species", ErrInvalidSpecies)
	}
	if !s.Ready() {
		return fmt.Errorf("%w: species %q is not completed", ErrInvalidSpecies, s.Name())
	}
	if !d.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidDirection, d)
	}
	if !l.WithinBounds(w.width, w.height) {
		return fmt.Errorf("%w: %v outside %dx%d", ErrOutOfBounds, l, w.width, w.height)
	}
	if _, ok := w.grid[l]; ok {
		return fmt.Errorf("%w: %v", ErrOccupied, l)
	}
	w.grid[l] = len(w.zoo)
	w.zoo = append(w.zoo, newCreature(s, d))
	return nil
}

//Step runs one tick: every creature acts once, in row-major order of the
//cells they occupy when reached. A creature that moved ahead of the scan
//is recognised by the tick it last acted in and skipped, whenever it was added.
func (w *World) Step() error {
	tick := w.turn + 1
	for r := 0; r < w.height; r++ {
		for c := 0; c < w.width; c++ {
			at := Loc(r, c)
			i, ok := w.grid[at]
			if !ok {
				continue
			}
			cr := &w.zoo[i]
			if cr.actedIn(tick) {
				continue
			}
			if err := cr.takeTurn(w, at); err != nil {
				return fmt.Errorf("turn %d, creature %d (%v) at %v: %w", w.turn, i, cr.behavior, at, err)
			}
			cr.acted = tick
		}
	}
	w.turn++
	return nil
}

//Move relocates the creature at l one cell towards d if that cell is free
func (w *World) Move(l Location, d Direction) {
	i := w.mustFind(l)
	to := l.Add(d)
	if !w.freeSpace(to) {
		return
	}
	delete(w.grid, l)
	w.grid[to] = i
}

//Infect converts the creature in front of l if it is an enemy
func (w *World) Infect(l Location, d Direction) {
	if !w.IfEnemy(l, d) {
		return
	}
	caller := &w.zoo[w.grid[l]]
	target := &w.zoo[w.grid[l.Add(d)]]
	caller.infect(target)
}

//IfEmpty reports whether the cell in front of l is inside the grid and free
func (w *World) IfEmpty(l Location, d Direction) bool {
	return w.freeSpace(l.Add(d))
}

//IfWall reports whether the cell in front of l is outside the grid
func (w *World) IfWall(l Location, d Direction) bool {
	return !l.Add(d).WithinBounds(w.width, w.height)
}

//IfEnemy reports whether the cell in front of l holds a creature of another species
func (w *World) IfEnemy(l Location, d Direction) bool {
	caller := &w.zoo[w.mustFind(l)]
	i, ok := w.grid[l.Add(d)]
	if !ok {
		return false
	}
	return !caller.sameSpecies(&w.zoo[i])
}

//CreatureAt returns the creature occupying l
func (w *World) CreatureAt(l Location) (*Creature, bool) {
	i, ok := w.grid[l]
	if !ok {
		return nil, false
	}
	return &w.zoo[i], true
}

//Census counts the creatures of every species by name
func (w *World) Census() map[string]int {
	census := make(map[string]int)
	for _, i := range w.grid {
		census[w.zoo[i].behavior.Name()]++
	}
	return census
}

func (w *World) Width() int {
	return w.width
}

func (w *World) Height() int {
	return w.height
}

//Turn is the number of completed ticks
func (w *World) Turn() int {
	return w.turn
}

//Len is the number of creatures ever added
func (w *World) Len() int {
	return len(w.zoo)
}

func (w *World) random() bool {
	return w.rng.Int()%2 != 0
}

func (w *World) freeSpace(l Location) bool {
	if !l.WithinBounds(w.width, w.height) {
		return false
	}
	_, ok := w.grid[l]
	return !ok
}

func (w *World) mustFind(l Location) int {
	i, ok := w.grid[l]
	if !ok {
		panic(fmt.Sprintf("darwin: no creature at %v", l))
	}
	return i
}
