package zoo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"darwin/src/darwin"
)

func TestCatalogPrograms(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Lookup(name)
			if err != nil {
				t.Fatal(err)
			}
			if !s.Ready() {
				t.Fatal("stock species is not completed")
			}
			if s.Name() != name {
				t.Errorf("name = %q, want %q", s.Name(), name)
			}
			actions := 0
			for pc := 0; pc < s.Len(); pc++ {
				in, err := s.NextMove(pc)
				if err != nil {
					t.Fatal(err)
				}
				if in.Op.Branch() && (in.Target < 0 || in.Target >= s.Len()) {
					t.Errorf("pc %d: target %d outside program", pc, in.Target)
				}
				if in.Op.Action() {
					actions++
				}
			}
			if actions == 0 {
				t.Error("program has no action")
			}
		})
	}
}

func TestLookupBuildsNewSpecies(t *testing.T) {
	a, _ := Lookup("rover")
	b, _ := Lookup("rover")
	if a == b {
		t.Error("two lookups returned the same species")
	}
	if _, err := Lookup("dodo"); !errors.Is(err, darwin.ErrInvalidSpecies) {
		t.Errorf("unknown species error = %v", err)
	}
}

//TestStockRun plays the 8x8 opening of the hopper scenario
func TestStockRun(t *testing.T) {
	food, hopper := Food(), Hopper()
	w := darwin.NewWorld(8, 8)
	placements := []struct {
		s *darwin.Species
		d darwin.Direction
		l darwin.Location
	}{
		{food, darwin.East, darwin.Loc(0, 0)},
		{hopper, darwin.North, darwin.Loc(3, 3)},
		{hopper, darwin.East, darwin.Loc(3, 4)},
		{hopper, darwin.South, darwin.Loc(4, 4)},
		{hopper, darwin.West, darwin.Loc(4, 3)},
		{food, darwin.North, darwin.Loc(7, 7)},
	}
	for _, p := range placements {
		if err := w.AddCreature(p.s, p.d, p.l); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Step(); err != nil {
		t.Fatal(err)
	}
	want := "Turn = 1.\n" +
		"  01234567\n" +
		"0 f.......\n" +
		"1 ........\n" +
		"2 ...h....\n" +
		"3 .....h..\n" +
		"4 ..h.....\n" +
		"5 ....h...\n" +
		"6 ........\n" +
		"7 .......f\n\n"
	if got := w.String(); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestParse(t *testing.T) {
	src := `# trap
0: if_enemy 3
1: left
   go 0   # loop
infect

go 0
`
	s, err := Parse("trap", strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	want := Trap()
	if s.Len() != want.Len() {
		t.Fatalf("len = %d, want %d", s.Len(), want.Len())
	}
	for pc := 0; pc < s.Len(); pc++ {
		got, _ := s.NextMove(pc)
		exp, _ := want.NextMove(pc)
		if got != exp {
			t.Errorf("pc %d: %v, want %v", pc, got, exp)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"unknown", "hop\njump 2\n", 2},
		{"missing target", "go\n", 1},
		{"extra target", "hop 3\n", 1},
		{"bad target", "if_wall x\n", 1},
		{"negative target", "if_wall -1\n", 1},
		{"wrong label", "0: hop\n2: go 0\n", 2},
		{"bare label", "0:\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("x", strings.NewReader(tt.src))
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("error = %v, want *SyntaxError", err)
			}
			if se.Line != tt.line {
				t.Errorf("line = %d, want %d", se.Line, tt.line)
			}
			if !errors.Is(err, ErrSyntax) {
				t.Error("error does not wrap ErrSyntax")
			}
		})
	}
	if _, err := Parse("x", strings.NewReader("# nothing\n")); !errors.Is(err, darwin.ErrInvalidProgram) {
		t.Errorf("empty program error = %v, want ErrInvalidProgram", err)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	for _, name := range Names() {
		orig, _ := Lookup(name)
		s, err := Parse(name, strings.NewReader(Format(orig)))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		for pc := 0; pc < orig.Len(); pc++ {
			got, _ := s.NextMove(pc)
			exp, _ := orig.NextMove(pc)
			if got != exp {
				t.Errorf("%s pc %d: %v, want %v", name, pc, got, exp)
			}
		}
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spinner.prog")
	if err := os.WriteFile(path, []byte("right\ngo 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Name() != "spinner" || s.Len() != 2 {
		t.Errorf("got %q with %d instructions", s.Name(), s.Len())
	}
}
