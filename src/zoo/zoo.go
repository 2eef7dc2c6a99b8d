// Package zoo holds the stock species programs and an assembler for new ones.
package zoo

import (
	"fmt"
	"sort"

	"darwin/src/darwin"
)

//Catalog maps species names to their constructors.
//Every call builds a new Species, so creatures of two worlds never share one.
var Catalog = map[string]func() *darwin.Species{
	"food":   Food,
	"hopper": Hopper,
	"rover":  Rover,
	"trap":   Trap,
	"best":   Best,
}

//Names returns the catalog names in sorted order
func Names() []string {
	names := make([]string, 0, len(Catalog))
	for k := range Catalog {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//Lookup builds the named stock species
func Lookup(name string) (*darwin.Species, error) {
	build, ok := Catalog[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown species %q", darwin.ErrInvalidSpecies, name)
	}
	return build(), nil
}

//build seals a stock program, stock programs are known to be valid
func build(name string, ins ...darwin.Instruction) *darwin.Species {
	s := darwin.NewSpecies(name)
	for _, in := range ins {
		s.AddInstruction(in)
	}
	if err := s.Complete(); err != nil {
		panic(err)
	}
	return s
}

//Food spins in place
func Food() *darwin.Species {
	return build("food",
		darwin.Do(darwin.Left),    // 0
		darwin.Jump(darwin.Go, 0), // 1
	)
}

//Hopper walks straight until it hits something
func Hopper() *darwin.Species {
	return build("hopper",
		darwin.Do(darwin.Hop),     // 0
		darwin.Jump(darwin.Go, 0), // 1
	)
}

//Rover wanders, infecting whatever enemy it faces
func Rover() *darwin.Species {
	return build("rover",
		darwin.Jump(darwin.IfEnemy, 9),  // 0
		darwin.Jump(darwin.IfEmpty, 7),  // 1
		darwin.Jump(darwin.IfRandom, 5), // 2
		darwin.Do(darwin.Left),          // 3
		darwin.Jump(darwin.Go, 0),       // 4
		darwin.Do(darwin.Right),         // 5
		darwin.Jump(darwin.Go, 0),       // 6
		darwin.Do(darwin.Hop),           // 7
		darwin.Jump(darwin.Go, 0),       // 8
		darwin.Do(darwin.Infect),        // 9
		darwin.Jump(darwin.Go, 0),       // 10
	)
}

//Trap sits still and infects anything that comes in front of it
func Trap() *darwin.Species {
	return build("trap",
		darwin.Jump(darwin.IfEnemy, 3), // 0
		darwin.Do(darwin.Left),         // 1
		darwin.Jump(darwin.Go, 0),      // 2
		darwin.Do(darwin.Infect),       // 3
		darwin.Jump(darwin.Go, 0),      // 4
	)
}

//Best hops whenever it can and turns right at walls,
//it only wanders randomly when a friend blocks the way
func Best() *darwin.Species {
	return build("best",
		darwin.Jump(darwin.IfEnemy, 10),
		darwin.Jump(darwin.IfEmpty, 8),
		darwin.Jump(darwin.IfWall, 6),
		darwin.Jump(darwin.IfRandom, 6),
		darwin.Do(darwin.Left),
		darwin.Jump(darwin.Go, 0),
		darwin.Do(darwin.Right),
		darwin.Jump(darwin.Go, 0),
		darwin.Do(darwin.Hop),
		darwin.Jump(darwin.Go, 0),
		darwin.Do(darwin.Infect),
		darwin.Jump(darwin.Go, 0),
	)
}
