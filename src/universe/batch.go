package universe

import (
	"log/slog"
	"math/rand"
	"sort"
	"sync"
	"time"

	"darwin/src/darwin"

	"github.com/google/uuid"
)

/*
	Batch tournament
	every seed gets its own world, the worlds are split between worker goroutines.
	A world is owned by exactly one worker, sealed species are read-only and shared.
*/

const (
	DefWorkers = 4 //default workers
)

//BatchResult is the outcome of one seeded world
type BatchResult struct {
	RunID    string
	Seed     int64
	Turns    int
	Census   map[string]int
	Leader   string
	Duration time.Duration
	Err      error
}

//RunBatch plays the roster once per seed and returns the results in seed order.
//Options.MaxSteps bounds every world, 0 means DefMaxSteps.
func RunBatch(o Options, roster []Roster, seeds []int64, workers int) []BatchResult {
	if workers <= 0 {
		workers = DefWorkers
	}
	if workers > len(seeds) {
		workers = len(seeds)
	}
	results := make([]BatchResult, len(seeds))
	jobs := make(chan int)
	var waitGroup sync.WaitGroup
	for i := 0; i < workers; i++ {
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			for j := range jobs {
				results[j] = playSeed(o, roster, seeds[j])
			}
		}()
	}
	for j := range seeds {
		jobs <- j
	}
	close(jobs)
	waitGroup.Wait()
	return results
}

//playSeed runs one world from placement to the step limit
func playSeed(o Options, roster []Roster, seed int64) BatchResult {
	start := time.Now()
	res := BatchResult{RunID: uuid.NewString(), Seed: seed}
	o.Seed = seed
	steps := o.MaxSteps
	if steps <= 0 {
		steps = DefMaxSteps
	}
	rng := rand.New(rand.NewSource(seed))
	w := darwin.NewWorld(o.Width, o.Height, darwin.WithRand(rng))
	res.Err = populate(w, rng, o, roster)
	for res.Err == nil && w.Turn() < steps {
		res.Err = w.Step()
	}
	res.Turns = w.Turn()
	res.Census = w.Census()
	res.Leader = Leader(res.Census)
	res.Duration = time.Since(start)
	if res.Err != nil {
		slog.Error("batch world failed", "run", res.RunID, "seed", seed, "error", res.Err)
	} else {
		slog.Debug("batch world done", "run", res.RunID, "seed", seed, "leader", res.Leader, "elapsed", res.Duration)
	}
	return res
}

//Leader names the most numerous species, ties go to the alphabetically first name
func Leader(census map[string]int) string {
	leader, best := "", -1
	for name, n := range census {
		if n > best || (n == best && name < leader) {
			leader, best = name, n
		}
	}
	return leader
}

//Standing is a species' record over a batch
type Standing struct {
	Species string
	Wins    int //worlds led
	Total   int //creatures summed over all worlds
}

//Standings ranks species by wins, then by total creatures, then by name.
//Failed worlds are left out.
func Standings(results []BatchResult) []Standing {
	byName := map[string]*Standing{}
	get := func(name string) *Standing {
		st, ok := byName[name]
		if !ok {
			st = &Standing{Species: name}
			byName[name] = st
		}
		return st
	}
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		for name, n := range r.Census {
			get(name).Total += n
		}
		if r.Leader != "" {
			get(r.Leader).Wins++
		}
	}
	standings := make([]Standing, 0, len(byName))
	for _, st := range byName {
		standings = append(standings, *st)
	}
	sort.Slice(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.Species < b.Species
	})
	return standings
}
