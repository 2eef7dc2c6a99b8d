package universe

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"darwin/src/darwin"

	"github.com/google/uuid"
)

//Options represents the Universe's configurable options
type Options struct {
	Width           int
	Height          int
	Interval        time.Duration
	MaxSteps        int //0 means unbounded
	MaxSkippedTicks int
	Seed            int64  //seed of the generator shared by placement and if_random
	Placement       string //random placement strategy, PlacementScatter or PlacementCluster
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	RunID         string
	IterationNum  int
	RunningMode   RunningState
	Population    int
	Census        map[string]int //creatures per species name, replaced on every change
	IterationTime time.Duration
	Board         string //rendered world
	Err           error  //the error that finished the run
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(u Universe)
	Start()
}

//Template is a named scenario: a world size and the creatures to place in it
type Template struct {
	Name       string
	Descr      string
	Width      int
	Height     int
	Placements []Placement
}

//Placement puts one creature of Species at At facing Facing
type Placement struct {
	Species *darwin.Species
	Facing  darwin.Direction
	At      darwin.Location
}

//The universe running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = 0
	DefMaxSteps           = 1000
	DefWidth              = 72
	DefHeight             = 72
	DefMaxSkippedTicks    = 5
)

const (
	RunningStateManual   = RunningState(0x0)
	RunningStateStep     = RunningState(0x1)
	RunningStateRun      = RunningState(0x2)
	RunningStateFinished = RunningState(0x3)
)

var runningStateNames = map[RunningState]string{
	RunningStateManual:   "manual",
	RunningStateStep:     "step",
	RunningStateRun:      "running",
	RunningStateFinished: "finished",
}

func (rs RunningState) String() string {
	if n, ok := runningStateNames[rs]; ok {
		return n
	}
	return fmt.Sprintf("state(%d)", int(rs))
}

var (
	ErrUnknownTemplate = errors.New("unknown template")
	ErrRunning         = errors.New("universe is running")
	ErrClosed          = errors.New("universe is closed")
)

var DefaultUniverseOptions = Options{
	Width:           DefWidth,
	Height:          DefHeight,
	Interval:        DefSimulationInterval,
	MaxSteps:        DefMaxSteps,
	MaxSkippedTicks: DefMaxSkippedTicks,
	Placement:       PlacementScatter,
}

//BaseUniverse hosts one darwin.World.
//The world is only touched under its lock, simulation steps run on the main loop goroutine.
type BaseUniverse struct {
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	world struct {
		*darwin.World
		rng *rand.Rand
		sync.Mutex
	}
	stateCh   chan Status
	views     []Viewer
	templates map[string]Template
	controlCh chan func()
	closeCh   chan bool
	done      chan struct{}
}

//NewBaseUniverse creates the BaseUniverse instance and starts its main loop
func NewBaseUniverse(o *Options, stateCh chan Status) *BaseUniverse {
	if o == nil {
		o = &DefaultUniverseOptions
	}
	u := BaseUniverse{
		options:   *o,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan bool, 1),
		done:      make(chan struct{}),
		stateCh:   stateCh,
		templates: map[string]Template{},
	}
	u.reset()
	go u.mainLoop()
	return &u
}

//AddTemplate adds the scenario to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (u *BaseUniverse) AddTemplate(tmpl Template) {
	u.templates[tmpl.Name] = tmpl
}

//Settle places creatures in the world, placements before a failing one stay in place.
//It runs on the main loop between ticks and is refused while the universe is running.
func (u *BaseUniverse) Settle(placements []Placement) error {
	return u.settleWith(func() error {
		return u.settle(placements)
	})
}

//SettleTemplate populates the universe with the named scenario
func (u *BaseUniverse) SettleTemplate(name string) error {
	tmpl, ok := u.templates[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	return u.Settle(tmpl.Placements)
}

//SettleWithRandomData populates the universe with the roster at random cells and facings
func (u *BaseUniverse) SettleWithRandomData(roster []Roster) error {
	return u.settleWith(func() error {
		return populate(u.world.World, u.world.rng, u.options, roster)
	})
}

//settleWith runs place on the main loop with the world locked and waits for its result
func (u *BaseUniverse) settleWith(place func() error) error {
	errCh := make(chan error, 1)
	ok := u.send(func() {
		if rm := u.Status().RunningMode; rm == RunningStateRun || rm == RunningStateStep {
			errCh <- ErrRunning
			return
		}
		u.world.Lock()
		err := place()
		u.snapshot()
		u.world.Unlock()
		u.refreshView()
		errCh <- err
	})
	if !ok {
		return ErrClosed
	}
	select {
	case err := <-errCh:
		return err
	case <-u.done:
		select {
		case err := <-errCh:
			return err
		default:
			return ErrClosed
		}
	}
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
func (u *BaseUniverse) RegisterViewer(v Viewer) {
	u.views = append(u.views, v)
	v.Register(u)
}

//StateCh returns the channel with the universe's status updates
func (u *BaseUniverse) StateCh() chan Status {
	return u.stateCh
}

//Status returns current universe status represented by Status struct
func (u *BaseUniverse) Status() Status {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.Status
}

//Options returns current universe configuration represented by Options struct
func (u *BaseUniverse) Options() Options {
	return u.options
}

//Run starts the universe simulation, returns immediately
func (u *BaseUniverse) Run() {
	u.send(u.run)
}

//Stop stops the universe simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (u *BaseUniverse) Stop() {
	u.send(u.stop)
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (u *BaseUniverse) Step() {
	u.send(u.step)
}

//Clear replaces the world with an empty one and reseeds the generator, returns immediately
//the Status struct will be written to the stateCh on finish
func (u *BaseUniverse) Clear() {
	u.send(u.clear)
}

//Close stops the main loop, returns immediately
func (u *BaseUniverse) Close() {
	select {
	case u.closeCh <- true:
	default:
	}
}

//send queues the command unless the main loop has exited
func (u *BaseUniverse) send(cmd func()) bool {
	select {
	case u.controlCh <- cmd:
		return true
	case <-u.done:
		return false
	}
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (u *BaseUniverse) mainLoop() {
	defer close(u.done)
	for {
		select {
		case cmd := <-u.controlCh:
			cmd()
		case <-u.closeCh:
			return
		}
	}
}

//reset builds an empty world from the options, the caller must own the universe
func (u *BaseUniverse) reset() {
	u.world.Lock()
	u.world.rng = rand.New(rand.NewSource(u.options.Seed))
	u.world.World = darwin.NewWorld(u.options.Width, u.options.Height, darwin.WithRand(u.world.rng))
	u.state.Lock()
	u.state.RunID = uuid.NewString()
	u.state.IterationTime = 0
	u.state.Err = nil
	u.state.RunningMode = RunningStateManual
	u.state.Unlock()
	u.snapshot()
	u.world.Unlock()
}

//settle places the creatures, the world lock must be held
func (u *BaseUniverse) settle(placements []Placement) error {
	for i, p := range placements {
		if err := u.world.AddCreature(p.Species, p.Facing, p.At); err != nil {
			return fmt.Errorf("placement %d: %w", i, err)
		}
	}
	return nil
}

//snapshot copies the world into the status, the world lock must be held
func (u *BaseUniverse) snapshot() {
	census := u.world.Census()
	population := 0
	for _, n := range census {
		population += n
	}
	board := u.world.String()
	u.state.Lock()
	u.state.IterationNum = u.world.Turn()
	u.state.Population = population
	u.state.Census = census
	u.state.Board = board
	u.state.Unlock()
}

//switchRunningState switch the state of the universe to RunningState
//also writes the new state to the stateCh to signal upper control software
func (u *BaseUniverse) switchRunningState(to RunningState) {
	u.state.Lock()
	u.state.RunningMode = to
	st := u.state.Status
	u.state.Unlock()
	if u.stateCh != nil {
		select {
		case u.stateCh <- st:
		case <-u.done:
		}
	}
}

//run starts the universe simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (u *BaseUniverse) run() {
	if u.Status().RunningMode == RunningStateFinished {
		return
	}
	u.switchRunningState(RunningStateRun)
	go func() {
		skipped := 0
		done := make(chan bool, 1)
		for {
			mode := u.Status().RunningMode
			if mode != RunningStateRun && mode != RunningStateStep {
				break
			}
			if skipped > u.options.MaxSkippedTicks {
				slog.Warn("simulation stalled", "run", u.Status().RunID, "skipped", skipped)
				u.send(func() { u.switchRunningState(RunningStateFinished) })
				break
			}
			//skip the tick if the universe is still in the calculation mode
			if mode != RunningStateStep {
				skipped = 0
				if !u.send(func() {
					u.step()
					done <- true
				}) {
					break
				}
				select {
				case <-done:
				case <-u.done:
					return
				}
			} else {
				skipped++
			}
			if u.options.Interval > 0 {
				time.Sleep(u.options.Interval)
			}
		}
	}()
}

//stop stops the universe running cycle
func (u *BaseUniverse) stop() {
	if u.Status().RunningMode == RunningStateRun {
		u.switchRunningState(RunningStateManual)
	}
}

//step does one tick of the world
func (u *BaseUniverse) step() {
	rm := u.Status().RunningMode
	if rm == RunningStateFinished {
		u.switchRunningState(rm)
		return
	}
	u.switchRunningState(RunningStateStep)
	finished := u.nextIteration()
	if finished {
		u.switchRunningState(RunningStateFinished)
	} else {
		u.switchRunningState(rm)
	}
	u.refreshView()
}

//clear drops every creature and resets all counters
func (u *BaseUniverse) clear() {
	u.reset()
	u.switchRunningState(RunningStateManual)
	u.refreshView()
}

//nextIteration steps the world and reports whether the run is over:
//the step limit is reached, the world holds no creature, or a program failed
func (u *BaseUniverse) nextIteration() (finished bool) {
	u.world.Lock()
	defer u.world.Unlock()
	maxIter := u.options.MaxSteps
	if u.world.Len() == 0 || (maxIter != 0 && u.world.Turn() >= maxIter) {
		return true
	}
	start := time.Now()
	err := u.world.Step()
	elapsed := time.Since(start)
	u.snapshot()
	u.state.Lock()
	u.state.IterationTime = elapsed
	u.state.Err = err
	id := u.state.RunID
	u.state.Unlock()
	if err != nil {
		slog.Error("world step failed", "run", id, "error", err)
		return true
	}
	slog.Debug("tick", "run", id, "turn", u.world.Turn(), "elapsed", elapsed)
	return maxIter != 0 && u.world.Turn() >= maxIter
}

//refreshView calls Refresh event for all registered views
func (u *BaseUniverse) refreshView() {
	for _, v := range u.views {
		v.Refresh()
	}
}
