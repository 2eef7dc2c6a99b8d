package view

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"darwin/src/universe"

	"github.com/dustin/go-humanize"
	"github.com/logrusorgru/aurora"
)

//PrintSchedule selects the ticks whose board is printed
type PrintSchedule struct {
	First int //ticks below First are all printed
	Every int //after that every Every-th tick, 0 prints nothing more
}

//DefaultPrintSchedule prints ticks 0-9 and then every 100th
var DefaultPrintSchedule = PrintSchedule{First: 10, Every: 100}

//Due reports whether the board of the turn should be printed
func (p PrintSchedule) Due(turn int) bool {
	if turn < p.First {
		return true
	}
	return p.Every > 0 && turn%p.Every == 0
}

var runningStateColor = map[universe.RunningState]aurora.Color{
	universe.RunningStateManual:   aurora.BlueFg,
	universe.RunningStateStep:     aurora.CyanFg,
	universe.RunningStateRun:      aurora.CyanFg,
	universe.RunningStateFinished: aurora.RedFg,
}

//ConsoleOut writes boards and run summaries to a plain text stream
type ConsoleOut struct {
	u         universe.Universe
	out       io.Writer
	au        aurora.Aurora
	schedule  PrintSchedule
	startTime time.Time

	mu       sync.Mutex
	runID    string
	lastTurn int
	finished bool
}

func NewConsoleOut(out io.Writer, schedule PrintSchedule, color bool) *ConsoleOut {
	return &ConsoleOut{
		out:      out,
		au:       aurora.NewAurora(color),
		schedule: schedule,
		lastTurn: -1,
	}
}

//Refresh prints the board if its turn is scheduled and the summary once the run is finished.
//It is called from the universe goroutine as well as from the settling one.
func (c *ConsoleOut) Refresh() {
	st := c.u.Status()
	c.mu.Lock()
	defer c.mu.Unlock()
	if st.RunID != c.runID {
		c.runID = st.RunID
		c.lastTurn = -1
		c.finished = false
	}
	if st.IterationNum != c.lastTurn && c.schedule.Due(st.IterationNum) {
		c.lastTurn = st.IterationNum
		fmt.Fprint(c.out, st.Board)
	}
	if st.RunningMode == universe.RunningStateFinished && !c.finished {
		c.finished = true
		c.printSummary(st)
	}
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	o := c.u.Options()
	fmt.Fprintln(c.out, c.au.Bold("Running configuration:"))
	c.printHashData(map[string]interface{}{
		"Dimension":      fmt.Sprintf("%v x %v", o.Width, o.Height),
		"Interval":       o.Interval,
		"Max iterations": humanize.Comma(int64(o.MaxSteps)) + " steps",
		"Seed":           o.Seed,
		"Placement":      o.Placement,
	})
}

//Start prints the starting board
func (c *ConsoleOut) Start() {
	c.mu.Lock()
	c.startTime = time.Now()
	fmt.Fprintf(c.out, "\n%s\n\n", c.au.Colorize("Simulation started...", runningStateColor[universe.RunningStateRun]))
	c.mu.Unlock()
	c.Refresh()
}

func (c *ConsoleOut) printSummary(st universe.Status) {
	resultData := map[string]interface{}{
		"Last iteration": humanize.Comma(int64(st.IterationNum)),
		"Population":     humanize.Comma(int64(st.Population)),
		"Run":            st.RunID,
	}
	if !c.startTime.IsZero() {
		resultData["Total time"] = time.Since(c.startTime).Round(time.Millisecond)
	}
	if st.Err != nil {
		resultData["Error"] = c.au.Red(st.Err.Error())
	}
	fmt.Fprintln(c.out, c.au.Colorize("Finished:", runningStateColor[st.RunningMode]))
	c.printHashData(resultData)
	fmt.Fprintln(c.out, "  Census:")
	c.printCensus(st.Census)
}

//printCensus lists the species by count, largest first
func (c *ConsoleOut) printCensus(census map[string]int) {
	names := make([]string, 0, len(census))
	for name := range census {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if census[names[i]] != census[names[j]] {
			return census[names[i]] > census[names[j]]
		}
		return names[i] < names[j]
	})
	for i, name := range names {
		fmt.Fprintf(c.out, "    %-5s %-12s %s\n", humanize.Ordinal(i+1), c.au.Green(name), humanize.Comma(int64(census[name])))
	}
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.out, "  %s: %v\n", c.au.Green(propName), d[propName])
	}
}
