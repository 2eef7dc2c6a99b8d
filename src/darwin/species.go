package darwin

import (
	"fmt"
	"unicode/utf8"
)

//Species is the program shared by every creature of a kind.
//It is open for AddInstruction until Complete seals it.
type Species struct {
	name         string
	instructions []Instruction
	completed    bool
}

func NewSpecies(name string) *Species {
	return &Species{name: name}
}

//AddInstruction appends in to the program, the species must not be sealed
func (s *Species) AddInstruction(in Instruction) {
	if s.completed {
		panic(fmt.Sprintf("darwin: add instruction to sealed species %q", s.name))
	}
	s.instructions = append(s.instructions, in)
}

//Complete seals the program
func (s *Species) Complete() error {
	switch {
	case s.completed:
		return fmt.Errorf("%w: species %q already completed", ErrInvalidProgram, s.name)
	case s.name == "":
		return fmt.Errorf("%w: unnamed species", ErrInvalidProgram)
	case len(s.instructions) == 0:
		return fmt.Errorf("%w: species %q has no instructions", ErrInvalidProgram, s.name)
	}
	s.instructions = s.instructions[:len(s.instructions):len(s.instructions)]
	s.completed = true
	return nil
}

func (s *Species) Ready() bool {
	return s.completed
}

//NextMove returns the instruction at pc.
//Jump targets are not checked when added, a bad one surfaces here.
func (s *Species) NextMove(pc int) (Instruction, error) {
	if !s.completed {
		panic(fmt.Sprintf("darwin: species %q is not completed", s.name))
	}
	if pc < 0 || pc >= len(s.instructions) {
		return Instruction{}, fmt.Errorf("%w: pc %d in species %q of %d instructions",
			ErrOutOfRange, pc, s.name, len(s.instructions))
	}
	return s.instructions[pc], nil
}

func (s *Species) Name() string {
	return s.name
}

//Glyph is the board symbol of the species: the first character of its name
func (s *Species) Glyph() rune {
	r, _ := utf8.DecodeRuneInString(s.name)
	return r
}

//Len is the number of instructions
func (s *Species) Len() int {
	return len(s.instructions)
}

func (s *Species) String() string {
	return s.name
}
