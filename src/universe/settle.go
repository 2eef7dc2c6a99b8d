package universe

import (
	"errors"
	"fmt"
	"math/rand"

	"darwin/src/darwin"

	opensimplex "github.com/ojrac/opensimplex-go"
)

//random placement strategies
const (
	PlacementScatter = "scatter" //uniform, as the classic driver does
	PlacementCluster = "cluster" //cells weighted by simplex noise, creatures gather in patches
)

//clusterFrequency scales grid coordinates into the noise field
const clusterFrequency = 0.12

var (
	ErrCrowded          = errors.New("not enough free cells")
	ErrUnknownPlacement = errors.New("unknown placement")
)

//Roster asks for Count creatures of Species
type Roster struct {
	Species *darwin.Species
	Count   int
}

//populate places the roster at random in w.
//Each creature draws a cell n%(width*height) in row-major order and a facing n%4,
//occupied cells are drawn again.
func populate(w *darwin.World, rng *rand.Rand, o Options, roster []Roster) error {
	var accept func(l darwin.Location) bool
	switch o.Placement {
	case "", PlacementScatter:
	case PlacementCluster:
		noise := opensimplex.NewNormalized(o.Seed)
		accept = func(l darwin.Location) bool {
			return rng.Float64() < noise.Eval2(float64(l.Col)*clusterFrequency, float64(l.Row)*clusterFrequency)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPlacement, o.Placement)
	}

	cells := w.Width() * w.Height()
	wanted := 0
	for _, r := range roster {
		wanted += r.Count
	}
	if free := cells - w.Len(); wanted > free {
		return fmt.Errorf("%w: %d creatures for %d cells", ErrCrowded, wanted, free)
	}
	maxAttempts := 16*cells + 64
	for _, r := range roster {
		for i := 0; i < r.Count; i++ {
			if err := place(w, rng, r.Species, accept, maxAttempts); err != nil {
				return fmt.Errorf("%v #%d: %w", r.Species, i+1, err)
			}
		}
	}
	return nil
}

func place(w *darwin.World, rng *rand.Rand, s *darwin.Species, accept func(darwin.Location) bool, attempts int) error {
	cells := w.Width() * w.Height()
	for ; attempts > 0; attempts-- {
		n := rng.Int() % cells
		d := darwin.Direction(rng.Int() % 4)
		l := darwin.Loc(n/w.Width(), n%w.Width())
		if accept != nil && !accept(l) {
			continue
		}
		err := w.AddCreature(s, d, l)
		if errors.Is(err, darwin.ErrOccupied) {
			continue
		}
		return err
	}
	return ErrCrowded
}
