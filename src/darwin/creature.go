package darwin

import "fmt"

//Creature is an individual running a Species program.
//Its position is kept by the World, never by the creature itself.
type Creature struct {
	behavior *Species
	pc       int
	facing   Direction
	turns    int
	acted    int //last tick the creature acted in, 0 before its first
}

func newCreature(s *Species, d Direction) Creature {
	return Creature{behavior: s, facing: d}
}

func (c *Creature) Species() *Species {
	return c.behavior
}

func (c *Creature) PC() int {
	return c.pc
}

func (c *Creature) Facing() Direction {
	return c.facing
}

//Turns is the number of actions taken so far
func (c *Creature) Turns() int {
	return c.turns
}

func (c *Creature) turnLeft() {
	c.facing = c.facing.Left()
}

func (c *Creature) turnRight() {
	c.facing = c.facing.Right()
}

//infect converts target to the species of c and restarts its program
func (c *Creature) infect(target *Creature) {
	target.pc = 0
	target.behavior = c.behavior
}

func (c *Creature) sameSpecies(o *Creature) bool {
	return c.behavior == o.behavior
}

//actedIn reports whether the creature already acted in tick
func (c *Creature) actedIn(tick int) bool {
	return c.acted == tick
}

//takeTurn executes instructions until one action is done.
//Branches do not end the turn, a program without a reachable action never returns.
func (c *Creature) takeTurn(w *World, at Location) error {
	for {
		in, err := c.behavior.NextMove(c.pc)
		if err != nil {
			return err
		}
		switch in.Op {
		case Hop:
			w.Move(at, c.facing)
		case Left:
			c.turnLeft()
		case Right:
			c.turnRight()
		case Infect:
			w.Infect(at, c.facing)
		case IfEmpty:
			c.branch(w.IfEmpty(at, c.facing), in.Target)
			continue
		case IfWall:
			c.branch(w.IfWall(at, c.facing), in.Target)
			continue
		case IfEnemy:
			c.branch(w.IfEnemy(at, c.facing), in.Target)
			continue
		case IfRandom:
			c.branch(w.random(), in.Target)
			continue
		case Go:
			c.pc = in.Target
			continue
		default:
			return fmt.Errorf("%w: %v at pc %d", ErrInvalidProgram, in.Op, c.pc)
		}
		c.pc++
		c.turns++
		return nil
	}
}

func (c *Creature) branch(taken bool, target int) {
	if taken {
		c.pc = target
	} else {
		c.pc++
	}
}
