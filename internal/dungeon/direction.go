package dungeon

import "fmt"

// Direction is a compass heading. Rotation symbols in the dungeon grammar
// turn the heading by 90 degrees at a time, so four directions suffice.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// String returns the lowercase compass name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Opposite returns the inverse compass direction.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// TurnRight returns the heading after a clockwise quarter turn.
func (d Direction) TurnRight() Direction {
	return (d + 1) % 4
}

// TurnLeft returns the heading after a counterclockwise quarter turn.
func (d Direction) TurnLeft() Direction {
	return (d + 3) % 4
}

// Delta returns the unit step for one move along this heading.
func (d Direction) Delta() Point {
	switch d {
	case North:
		return Point{X: 0, Y: 1}
	case East:
		return Point{X: 1, Y: 0}
	case South:
		return Point{X: 0, Y: -1}
	default:
		return Point{X: -1, Y: 0}
	}
}

// ParseDirection converts a compass name to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "north":
		return North, true
	case "east":
		return East, true
	case "south":
		return South, true
	case "west":
		return West, true
	default:
		return North, false
	}
}

// MarshalJSON encodes the direction as its compass name.
func (d Direction) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a compass name.
func (d *Direction) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid direction %s", data)
	}
	parsed, ok := ParseDirection(string(data[1 : len(data)-1]))
	if !ok {
		return fmt.Errorf("unknown direction %s", data)
	}
	*d = parsed
	return nil
}
