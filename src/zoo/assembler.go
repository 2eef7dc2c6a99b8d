package zoo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"darwin/src/darwin"
)

var ErrSyntax = errors.New("parse error")

//SyntaxError reports a bad line of a species program
type SyntaxError struct {
	Name string // species name
	Line int    // 1-based line number
	Text string // offending source line
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %v: %q", e.Name, e.Line, e.Err, e.Text)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

//Parse assembles a species program, one instruction per line:
//
//	# comment
//	0: if_enemy 3
//	left
//	go 0
//
//The optional "N:" prefix must match the index of the instruction.
//Jump targets are not checked, like instructions added by hand.
func Parse(name string, r io.Reader) (*darwin.Species, error) {
	s := darwin.NewSpecies(name)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		in, ok, err := parseLine(text, s.Len())
		if err != nil {
			return nil, &SyntaxError{Name: name, Line: line, Text: text, Err: err}
		}
		if ok {
			s.AddInstruction(in)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if err := s.Complete(); err != nil {
		return nil, err
	}
	return s, nil
}

//ParseFile assembles the program in path, the species is named after the file
func ParseFile(path string) (*darwin.Species, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(name, f)
}

//parseLine returns ok=false for blank and comment lines
func parseLine(text string, index int) (in darwin.Instruction, ok bool, err error) {
	if i := strings.IndexByte(text, '#'); i >= 0 {
		text = text[:i]
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return in, false, nil
	}
	if label := fields[0]; strings.HasSuffix(label, ":") {
		n, err := strconv.Atoi(strings.TrimSuffix(label, ":"))
		if err != nil {
			return in, false, fmt.Errorf("%w: bad label %s", ErrSyntax, label)
		}
		if n != index {
			return in, false, fmt.Errorf("%w: label %d on instruction %d", ErrSyntax, n, index)
		}
		fields = fields[1:]
		if len(fields) == 0 {
			return in, false, fmt.Errorf("%w: label without instruction", ErrSyntax)
		}
	}
	op, known := darwin.ParseOpcode(fields[0])
	if !known {
		return in, false, fmt.Errorf("%w: unknown instruction %s", ErrSyntax, fields[0])
	}
	args := fields[1:]
	if !op.Branch() {
		if len(args) != 0 {
			return in, false, fmt.Errorf("%w: %v takes no target", ErrSyntax, op)
		}
		return darwin.Do(op), true, nil
	}
	if len(args) != 1 {
		return in, false, fmt.Errorf("%w: %v needs one target", ErrSyntax, op)
	}
	target, err := strconv.Atoi(args[0])
	if err != nil || target < 0 {
		return in, false, fmt.Errorf("%w: bad target %s", ErrSyntax, args[0])
	}
	return darwin.Jump(op, target), true, nil
}

//Format writes the completed species s in the form read by Parse
func Format(s *darwin.Species) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", s.Name())
	for pc := 0; pc < s.Len(); pc++ {
		in, err := s.NextMove(pc)
		if err != nil {
			break
		}
		fmt.Fprintf(&b, "%d: %v\n", pc, in)
	}
	return b.String()
}
