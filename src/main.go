package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"darwin/src/darwin"
	"darwin/src/universe"
	"darwin/src/view"
	"darwin/src/zoo"

	"github.com/integrii/flaggy"
)

const scenarioRandom = "random"

var (
	//the classic scenarios, species are built on every call so each universe owns its own
	templates = map[string]func() universe.Template{
		"darwin8x8": func() universe.Template {
			food, hopper := zoo.Food(), zoo.Hopper()
			return universe.Template{
				Name:   "darwin8x8",
				Descr:  "two food and four hoppers circling the centre",
				Width:  8,
				Height: 8,
				Placements: []universe.Placement{
					{Species: food, Facing: darwin.East, At: darwin.Loc(0, 0)},
					{Species: hopper, Facing: darwin.North, At: darwin.Loc(3, 3)},
					{Species: hopper, Facing: darwin.East, At: darwin.Loc(3, 4)},
					{Species: hopper, Facing: darwin.South, At: darwin.Loc(4, 4)},
					{Species: hopper, Facing: darwin.West, At: darwin.Loc(4, 3)},
					{Species: food, Facing: darwin.North, At: darwin.Loc(7, 7)},
				},
			}
		},
		"darwin7x9": func() universe.Template {
			trap, hopper, rover := zoo.Trap(), zoo.Hopper(), zoo.Rover()
			return universe.Template{
				Name:   "darwin7x9",
				Descr:  "two traps, a hopper and a rover",
				Width:  9,
				Height: 7,
				Placements: []universe.Placement{
					{Species: trap, Facing: darwin.South, At: darwin.Loc(0, 0)},
					{Species: hopper, Facing: darwin.East, At: darwin.Loc(3, 2)},
					{Species: rover, Facing: darwin.North, At: darwin.Loc(5, 4)},
					{Species: trap, Facing: darwin.West, At: darwin.Loc(6, 8)},
				},
			}
		},
	}
)

type EnvOptions struct {
	scenario   string
	roster     string
	programs   []string
	batch      int
	workers    int
	printFirst int
	printEvery int
	color      bool
	verbose    bool
}

func main() {
	eo, uo := initOptions()
	initLogger(eo.verbose)

	lookup, err := newLookup(eo.programs)
	if err != nil {
		fail("loading programs", err)
	}

	if eo.batch > 0 {
		runBatch(eo, uo, lookup)
		return
	}

	var tmpl universe.Template
	if eo.scenario != scenarioRandom {
		tmpl = templates[eo.scenario]()
		uo.Width, uo.Height = tmpl.Width, tmpl.Height
	}

	stateCh := make(chan universe.Status, 10) //the buffered channel to getting the universe status
	u := universe.NewBaseUniverse(uo, stateCh)
	if eo.scenario == scenarioRandom {
		roster, err := universe.ParseRoster(eo.roster, lookup)
		if err != nil {
			fail("bad roster", err)
		}
		err = u.SettleWithRandomData(roster)
		if err != nil {
			fail("settling the roster", err)
		}
	} else {
		u.AddTemplate(tmpl)
		if err := u.SettleTemplate(tmpl.Name); err != nil {
			fail("settling the scenario", err)
		}
	}
	slog.Info("universe settled", "run", u.Status().RunID, "scenario", eo.scenario, "population", u.Status().Population)

	v := view.NewConsoleOut(os.Stdout, view.PrintSchedule{First: eo.printFirst, Every: eo.printEvery}, eo.color)
	u.RegisterViewer(v)
	v.Start()
	u.Run()
	var st universe.Status
	for st = range stateCh {
		if st.RunningMode == universe.RunningStateFinished {
			break
		}
	}
	u.Close()
	if st.Err != nil {
		fail("simulation failed", st.Err)
	}
}

func runBatch(eo *EnvOptions, uo *universe.Options, lookup func(string) (*darwin.Species, error)) {
	roster, err := universe.ParseRoster(eo.roster, lookup)
	if err != nil {
		fail("bad roster", err)
	}
	seeds := make([]int64, eo.batch)
	for i := range seeds {
		seeds[i] = uo.Seed + int64(i)
	}
	slog.Info("batch started", "worlds", len(seeds), "workers", eo.workers)
	results := universe.RunBatch(*uo, roster, seeds, eo.workers)
	view.PrintBatch(os.Stdout, results, eo.color)
	for _, r := range results {
		if r.Err != nil {
			os.Exit(1)
		}
	}
}

//newLookup resolves species names against the stock catalog and the assembled programs
func newLookup(paths []string) (func(string) (*darwin.Species, error), error) {
	custom := map[string]*darwin.Species{}
	for _, path := range paths {
		s, err := zoo.ParseFile(path)
		if err != nil {
			return nil, err
		}
		if _, ok := zoo.Catalog[s.Name()]; ok {
			return nil, fmt.Errorf("%s: species %q shadows a stock species", path, s.Name())
		}
		custom[s.Name()] = s
		slog.Debug("program loaded", "species", s.Name(), "instructions", s.Len())
	}
	return func(name string) (*darwin.Species, error) {
		if s, ok := custom[name]; ok {
			return s, nil
		}
		return zoo.Lookup(name)
	}, nil
}

func initLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func fail(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}

func initOptions() (eo *EnvOptions, uo *universe.Options) {

	o := universe.DefaultUniverseOptions
	uo = &o
	scenarioNames := make([]string, 0, len(templates))
	for k := range templates {
		scenarioNames = append(scenarioNames, k)
	}
	sort.Strings(scenarioNames)
	eo = &EnvOptions{
		scenario:   scenarioRandom,
		roster:     "food=10,hopper=10,rover=10,trap=10",
		workers:    universe.DefWorkers,
		printFirst: view.DefaultPrintSchedule.First,
		printEvery: view.DefaultPrintSchedule.Every,
	}
	flaggy.SetName("darwin")
	flaggy.SetDescription("Creatures running tiny programs fight for a grid")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&uo.Width, "x", "width", "Width of a simulation field")
	flaggy.Int(&uo.Height, "y", "height", "Height of a simulation field")
	flaggy.Duration(&uo.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&uo.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 means unbounded")
	flaggy.Int64(&uo.Seed, "", "seed", "Seed of the random generator")
	flaggy.String(&uo.Placement, "", "placement", "Random placement ["+universe.PlacementScatter+"|"+universe.PlacementCluster+"]")
	flaggy.String(&eo.scenario, "c", "scenario", "Scenario to run ["+scenarioRandom+"|"+strings.Join(scenarioNames, "|")+"]")
	flaggy.String(&eo.roster, "r", "roster", "Species and counts for the random scenario, for example food=10,hopper=10 ["+strings.Join(zoo.Names(), "|")+"]")
	flaggy.StringSlice(&eo.programs, "p", "program", "Assembler file with a species program, the species is named after the file")
	flaggy.Int(&eo.batch, "b", "batch", "Run a tournament of this many seeded worlds")
	flaggy.Int(&eo.workers, "w", "workers", "Worker goroutines for the tournament")
	flaggy.Int(&eo.printFirst, "", "printFirst", "Print every board below this turn")
	flaggy.Int(&eo.printEvery, "", "printEvery", "Then print every n-th board, 0 disables")
	flaggy.Bool(&eo.color, "", "color", "Colorize the output")
	flaggy.Bool(&eo.verbose, "v", "verbose", "Log every tick")

	flaggy.Parse()

	if _, ok := templates[eo.scenario]; !ok && eo.scenario != scenarioRandom {
		flaggy.ShowHelpAndExit("unknown scenario")
	}
	if uo.Placement != universe.PlacementScatter && uo.Placement != universe.PlacementCluster {
		flaggy.ShowHelpAndExit("unknown placement")
	}
	if uo.Width <= 0 || uo.Height <= 0 {
		flaggy.ShowHelpAndExit("the field must have positive dimensions")
	}

	return
}
