// Package render draws dungeons as ASCII grids for terminal output.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stonelantern/delvegen/internal/dungeon"
)

const startGlyph = '@'

// ASCII renders the dungeon as a character grid. Rooms print their symbol
// (the start room prints '@'), corridors print '|' and '-', and north is up.
func ASCII(d *dungeon.Dungeon) string {
	if d == nil || d.RoomCount() == 0 {
		return ""
	}

	minX, minY := d.Rooms[dungeon.StartRoomID].Position.X, d.Rooms[dungeon.StartRoomID].Position.Y
	maxX, maxY := minX, minY
	for _, room := range d.Rooms {
		if room.Position.X < minX {
			minX = room.Position.X
		}
		if room.Position.X > maxX {
			maxX = room.Position.X
		}
		if room.Position.Y < minY {
			minY = room.Position.Y
		}
		if room.Position.Y > maxY {
			maxY = room.Position.Y
		}
	}

	// Double the resolution so connectors get their own cells.
	width := (maxX-minX)*2 + 1
	height := (maxY-minY)*2 + 1
	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	// North means increasing Y, so flip rows to keep it pointing up.
	col := func(x int) int { return (x - minX) * 2 }
	row := func(y int) int { return (maxY - y) * 2 }

	for _, room := range d.Rooms {
		glyph := startGlyph
		if room.ID != dungeon.StartRoomID {
			glyph = []rune(room.Symbol)[0]
		}
		grid[row(room.Position.Y)][col(room.Position.X)] = glyph
	}

	for from, neighbors := range d.Directions {
		for to := range neighbors {
			if from > to {
				continue
			}
			a, b := d.Rooms[from].Position, d.Rooms[to].Position
			midCol := (col(a.X) + col(b.X)) / 2
			midRow := (row(a.Y) + row(b.Y)) / 2
			if a.X == b.X {
				grid[midRow][midCol] = '|'
			} else {
				grid[midRow][midCol] = '-'
			}
		}
	}

	var out strings.Builder
	for _, line := range grid {
		out.WriteString(strings.TrimRight(string(line), " "))
		out.WriteString("\n")
	}
	return out.String()
}

// Legend lists each room symbol with its label, start room first.
func Legend(d *dungeon.Dungeon) string {
	if d == nil || d.RoomCount() == 0 {
		return ""
	}

	labels := make(map[string]string)
	for _, room := range d.Rooms {
		if room.ID == dungeon.StartRoomID {
			continue
		}
		labels[room.Symbol] = room.Label
	}

	symbols := make([]string, 0, len(labels))
	for symbol := range labels {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	var out strings.Builder
	out.WriteString("Legend:\n")
	fmt.Fprintf(&out, "  %c = %s\n", startGlyph, d.Rooms[dungeon.StartRoomID].Label)
	for _, symbol := range symbols {
		fmt.Fprintf(&out, "  %s = %s\n", symbol, labels[symbol])
	}
	return out.String()
}

// Summary prints one line per room: label, contents, and description.
func Summary(d *dungeon.Dungeon) string {
	if d == nil {
		return ""
	}

	var out strings.Builder
	for _, id := range d.RoomIDs() {
		room := d.Rooms[id]
		fmt.Fprintf(&out, "#%d %s (%d,%d)", room.ID, room.Label, room.Position.X, room.Position.Y)
		if room.Description != "" {
			fmt.Fprintf(&out, " - %s", room.Description)
		}
		out.WriteString("\n")
		for _, item := range room.Items {
			fmt.Fprintf(&out, "  item: %dx %s\n", item.Quantity, item.Label)
		}
		for _, monster := range room.Monsters {
			fmt.Fprintf(&out, "  monster: %dx %s\n", monster.Quantity, monster.Label)
		}
	}
	return out.String()
}
