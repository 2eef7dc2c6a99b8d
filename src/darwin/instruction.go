package darwin

import (
	"fmt"
	"strconv"
)

//Opcode is the operation of an Instruction
type Opcode int

const (
	Hop Opcode = iota
	Left
	Right
	Infect
	IfEmpty
	IfWall
	IfRandom
	IfEnemy
	Go
)

//mnemonics used by the assembler and by String
var mnemonics = [...]string{
	Hop:      "hop",
	Left:     "left",
	Right:    "right",
	Infect:   "infect",
	IfEmpty:  "if_empty",
	IfWall:   "if_wall",
	IfRandom: "if_random",
	IfEnemy:  "if_enemy",
	Go:       "go",
}

//Action reports whether the opcode ends the creature's turn
func (op Opcode) Action() bool {
	switch op {
	case Hop, Left, Right, Infect:
		return true
	}
	return false
}

//Branch reports whether the opcode uses a jump target
func (op Opcode) Branch() bool {
	switch op {
	case IfEmpty, IfWall, IfRandom, IfEnemy, Go:
		return true
	}
	return false
}

func (op Opcode) String() string {
	if op < Hop || op > Go {
		return "opcode(" + strconv.Itoa(int(op)) + ")"
	}
	return mnemonics[op]
}

//ParseOpcode maps an assembler mnemonic to its opcode
func ParseOpcode(s string) (Opcode, bool) {
	for op, m := range mnemonics {
		if m == s {
			return Opcode(op), true
		}
	}
	return 0, false
}

//Instruction is a single step of a species program.
//Target is the jump destination of branches and is ignored by actions.
type Instruction struct {
	Op     Opcode
	Target int
}

//Do builds an action instruction
func Do(op Opcode) Instruction {
	return Instruction{Op: op}
}

//Jump builds a branch instruction
func Jump(op Opcode, target int) Instruction {
	return Instruction{Op: op, Target: target}
}

func (in Instruction) String() string {
	if in.Op.Branch() {
		return fmt.Sprintf("%v %d", in.Op, in.Target)
	}
	return in.Op.String()
}
