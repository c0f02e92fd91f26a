package dungeon

import (
	"errors"
	"fmt"
)

// StartRoomID is the id of the entry room, always created first.
const StartRoomID = 0

// StartSymbol marks the entry room in symbol-keyed lookups.
const StartSymbol = "S"

// SymbolDef maps a movement symbol to its gameplay concept. The set of keys
// passed to Build is the closed symbol universe: anything else in the
// expanded string is either a control symbol or ignored.
type SymbolDef struct {
	Label string   `yaml:"label"`
	Tags  []string `yaml:"tags"`
}

// ErrUnmatchedPop reports a "]" with no matching "[" in the expanded string.
var ErrUnmatchedPop = errors.New("unmatched branch pop")

// frame is one saved turtle state for a pending branch.
type frame struct {
	roomID  int
	pos     Point
	heading Direction
}

// Build interprets the expanded string as turtle movement commands and
// returns the resulting graph. Movement symbols (keys of symbols) carve a
// room one step ahead and advance the pen, "+" and "-" rotate the heading a
// quarter turn, "[" and "]" push and pop the turtle state for branching.
// A move onto an already-occupied position links back to the existing room
// instead of duplicating it, which is how cycles form; the occupant keeps
// its original trail.
func Build(expanded string, symbols map[string]SymbolDef) (*Dungeon, error) {
	d := NewDungeon()

	start := &Room{
		ID:       StartRoomID,
		Symbol:   StartSymbol,
		Label:    "Entry point",
		Position: Point{},
		Trail:    []Direction{},
	}
	d.addRoom(start)

	byPosition := map[Point]int{start.Position: start.ID}

	currentID := start.ID
	pos := start.Position
	heading := North
	var stack []frame
	nextID := 1

	for i, r := range expanded {
		symbol := string(r)
		if def, ok := symbols[symbol]; ok {
			delta := heading.Delta()
			next := Point{X: pos.X + delta.X, Y: pos.Y + delta.Y}
			if existingID, occupied := byPosition[next]; occupied {
				d.link(currentID, existingID, heading)
				currentID = existingID
				pos = next
				continue
			}
			parentTrail := d.Rooms[currentID].Trail
			trail := make([]Direction, len(parentTrail), len(parentTrail)+1)
			copy(trail, parentTrail)
			trail = append(trail, heading)
			room := &Room{
				ID:       nextID,
				Symbol:   symbol,
				Label:    def.Label,
				Tags:     def.Tags,
				Position: next,
				Trail:    trail,
			}
			nextID++
			d.addRoom(room)
			byPosition[next] = room.ID
			d.link(currentID, room.ID, heading)
			currentID = room.ID
			pos = next
			continue
		}

		switch symbol {
		case "+":
			heading = heading.TurnRight()
		case "-":
			heading = heading.TurnLeft()
		case "[":
			stack = append(stack, frame{roomID: currentID, pos: pos, heading: heading})
		case "]":
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w at position %d", ErrUnmatchedPop, i)
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			currentID = top.roomID
			pos = top.pos
			heading = top.heading
		default:
			// Content-grammar alphabet; the builder skips it.
		}
	}

	return d, nil
}
