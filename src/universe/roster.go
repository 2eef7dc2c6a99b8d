package universe

import (
	"fmt"
	"strconv"
	"strings"

	"darwin/src/darwin"
)

//ParseRoster reads a roster in the form "food=10,hopper=10".
//lookup resolves species names, each name is looked up once.
func ParseRoster(s string, lookup func(name string) (*darwin.Species, error)) ([]Roster, error) {
	var roster []Roster
	seen := map[string]bool{}
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		name, count, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("roster entry %q: want name=count", item)
		}
		name = strings.TrimSpace(name)
		n, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("roster entry %q: bad count", item)
		}
		if seen[name] {
			return nil, fmt.Errorf("roster entry %q: %s listed twice", item, name)
		}
		seen[name] = true
		sp, err := lookup(name)
		if err != nil {
			return nil, err
		}
		roster = append(roster, Roster{Species: sp, Count: n})
	}
	return roster, nil
}

//Total is the number of creatures the roster asks for
func Total(roster []Roster) int {
	n := 0
	for _, r := range roster {
		n += r.Count
	}
	return n
}
