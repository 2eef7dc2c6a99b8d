package darwin

import (
	"errors"
	"math/rand"
	"testing"
)

//fixedSource returns the same number on every draw
type fixedSource int

func (f fixedSource) Int() int { return int(f) }

func TestCreatureInfect(t *testing.T) {
	food := newProgram(t, "a", Do(Left))
	rover := newProgram(t, "b", Do(Hop), Do(Right), Do(Left))
	a := newCreature(food, North)
	b := newCreature(rover, East)
	b.pc = 2

	a.infect(&b)
	if b.behavior != food {
		t.Errorf("infected species = %v, want %v", b.behavior, food)
	}
	if b.pc != 0 {
		t.Errorf("infected pc = %d, want 0", b.pc)
	}
	if b.facing != East {
		t.Errorf("infection changed facing to %v", b.facing)
	}
	if !a.sameSpecies(&b) {
		t.Error("infected creature should share the infector's species")
	}
}

func TestCreatureSpecies(t *testing.T) {
	food := NewSpecies("a")
	rover := NewSpecies("b")
	a := newCreature(food, North)
	b := newCreature(food, East)
	c := newCreature(rover, East)
	if !a.sameSpecies(&b) {
		t.Error("same species reported as different")
	}
	if a.sameSpecies(&c) {
		t.Error("different species reported as same")
	}
}

func TestCreatureActedIn(t *testing.T) {
	a := newCreature(NewSpecies("a"), North)
	if a.actedIn(1) {
		t.Error("fresh creature acted in tick 1")
	}
	a.acted = 4
	if !a.actedIn(4) {
		t.Error("creature did not act in tick 4")
	}
	if a.actedIn(5) {
		t.Error("creature acted in tick 5")
	}
}

func TestCreatureFacing(t *testing.T) {
	tests := []struct {
		from        Direction
		left, right Direction
	}{
		{North, West, East},
		{East, North, South},
		{South, East, West},
		{West, South, North},
	}
	for _, tt := range tests {
		a := newCreature(NewSpecies("a"), tt.from)
		a.turnLeft()
		if a.facing != tt.left {
			t.Errorf("left from %v = %v, want %v", tt.from, a.facing, tt.left)
		}
		b := newCreature(NewSpecies("a"), tt.from)
		b.turnRight()
		if b.facing != tt.right {
			t.Errorf("right from %v = %v, want %v", tt.from, b.facing, tt.right)
		}
	}
}

//placeOne returns a 2x2 world with a single creature at (0,0) facing east
func placeOne(t *testing.T, s *Species, opts ...Option) (*World, *Creature) {
	t.Helper()
	w := NewWorld(2, 2, opts...)
	if err := w.AddCreature(s, East, Loc(0, 0)); err != nil {
		t.Fatalf("add creature: %v", err)
	}
	return w, &w.zoo[0]
}

func TestTurnMove(t *testing.T) {
	w, a := placeOne(t, newProgram(t, "s", Do(Hop)))
	if err := a.takeTurn(w, Loc(0, 0)); err != nil {
		t.Fatal(err)
	}
	if _, ok := w.grid[Loc(0, 0)]; ok {
		t.Error("hop left the creature in place")
	}
	if _, ok := w.grid[Loc(0, 1)]; !ok {
		t.Error("hop did not reach (0,1)")
	}
}

func TestTurnFacing(t *testing.T) {
	w, a := placeOne(t, newProgram(t, "s", Do(Left)))
	if err := a.takeTurn(w, Loc(0, 0)); err != nil {
		t.Fatal(err)
	}
	if a.facing != North {
		t.Errorf("facing = %v, want north", a.facing)
	}
}

func TestTurnCondition(t *testing.T) {
	w, a := placeOne(t, newProgram(t, "s", Jump(Go, 1), Do(Left)))
	if err := a.takeTurn(w, Loc(0, 0)); err != nil {
		t.Fatal(err)
	}
	if a.facing != North {
		t.Errorf("facing = %v, want north", a.facing)
	}
	if a.turns != 1 {
		t.Errorf("turns = %d, want 1: branches must not count as turns", a.turns)
	}
	if a.pc != 2 {
		t.Errorf("pc = %d, want 2", a.pc)
	}
}

func TestTurnRandom(t *testing.T) {
	program := []Instruction{Jump(IfRandom, 2), Do(Left), Do(Right)}
	tests := []struct {
		name string
		draw int
		want Direction
	}{
		{"odd draw jumps", 7, South},
		{"even draw falls through", 4, North},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, a := placeOne(t, newProgram(t, "s", program...), WithRand(fixedSource(tt.draw)))
			if err := a.takeTurn(w, Loc(0, 0)); err != nil {
				t.Fatal(err)
			}
			if a.facing != tt.want {
				t.Errorf("facing = %v, want %v", a.facing, tt.want)
			}
		})
	}
}

func TestTurnRandomSeeded(t *testing.T) {
	s := newProgram(t, "s", Jump(IfRandom, 2), Do(Left), Do(Right), Jump(Go, 0))
	run := func(seed int64) []Direction {
		w, a := placeOne(t, s, WithRand(rand.New(rand.NewSource(seed))))
		var facings []Direction
		for i := 0; i < 32; i++ {
			if err := w.Step(); err != nil {
				t.Fatal(err)
			}
			facings = append(facings, a.facing)
		}
		return facings
	}
	for _, seed := range []int64{0, 1, 42} {
		first, second := run(seed), run(seed)
		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("seed %d diverged at tick %d: %v != %v", seed, i, first[i], second[i])
			}
		}
	}
}

func TestTurnComplex(t *testing.T) {
	w, a := placeOne(t, newProgram(t, "s",
		Jump(Go, 1),
		Jump(IfWall, 3),
		Do(Hop),
		Do(Left),
		Jump(Go, 0)))
	for i := 0; i < 2; i++ {
		if err := w.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if a.pc != 4 {
		t.Errorf("pc = %d, want 4", a.pc)
	}
}

func TestTurnComplex2(t *testing.T) {
	w, a := placeOne(t, newProgram(t, "s",
		Jump(IfEmpty, 3),
		Do(Left),
		Jump(Go, 0),
		Do(Hop),
		Jump(Go, 0)))
	for i := 0; i < 2; i++ {
		if err := w.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if a.facing != North {
		t.Errorf("facing = %v, want north", a.facing)
	}
}

func TestTurnBadTarget(t *testing.T) {
	w, a := placeOne(t, newProgram(t, "s", Jump(Go, 5)))
	err := a.takeTurn(w, Loc(0, 0))
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("error = %v, want ErrOutOfRange", err)
	}
	if a.turns != 0 {
		t.Errorf("failed turn counted: turns = %d", a.turns)
	}
}
