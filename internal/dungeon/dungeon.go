// Package dungeon holds the spatial graph model and the turtle-style builder
// that interprets an expanded grammar string into rooms and passages.
package dungeon

import "sort"

// Point is an integer grid coordinate. The start room sits at the origin.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Entity is one item or monster occupying a room.
type Entity struct {
	Symbol      string   `json:"symbol"`
	Label       string   `json:"label"`
	Quantity    int      `json:"quantity"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Room is a single node of the dungeon graph. Trail records the directions
// taken from the start room during construction; when branches reconverge it
// is the path actually walked, not necessarily the shortest one afterwards.
type Room struct {
	ID          int         `json:"id"`
	Symbol      string      `json:"symbol"`
	Label       string      `json:"label"`
	Tags        []string    `json:"tags,omitempty"`
	Position    Point       `json:"position"`
	Trail       []Direction `json:"trail"`
	Items       []Entity    `json:"items,omitempty"`
	Monsters    []Entity    `json:"monsters,omitempty"`
	Description string      `json:"description,omitempty"`
}

// Dungeon is the full spatial graph. Adjacency is symmetric and Directions
// is inverse-consistent: if Directions[a][b] is north, Directions[b][a] is
// south, and both maps always list the same neighbor sets.
type Dungeon struct {
	Rooms      map[int]*Room             `json:"rooms"`
	Adjacency  map[int][]int             `json:"adjacency"`
	Directions map[int]map[int]Direction `json:"directions"`
}

// NewDungeon returns an empty graph.
func NewDungeon() *Dungeon {
	return &Dungeon{
		Rooms:      make(map[int]*Room),
		Adjacency:  make(map[int][]int),
		Directions: make(map[int]map[int]Direction),
	}
}

// RoomCount returns the number of rooms.
func (d *Dungeon) RoomCount() int {
	return len(d.Rooms)
}

// Neighbors returns a copy of the neighbor ids of a room.
func (d *Dungeon) Neighbors(id int) []int {
	neighbors := make([]int, len(d.Adjacency[id]))
	copy(neighbors, d.Adjacency[id])
	return neighbors
}

// RoomIDs returns all room ids in ascending order.
func (d *Dungeon) RoomIDs() []int {
	ids := make([]int, 0, len(d.Rooms))
	for id := range d.Rooms {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// StartRoom returns the designated entry room.
func (d *Dungeon) StartRoom() *Room {
	return d.Rooms[StartRoomID]
}

// link connects two rooms bidirectionally with inverse-consistent compass
// directions. Linking an already-connected pair is a no-op.
func (d *Dungeon) link(from, to int, dir Direction) {
	if _, ok := d.Directions[from][to]; ok {
		return
	}
	d.Adjacency[from] = append(d.Adjacency[from], to)
	d.Adjacency[to] = append(d.Adjacency[to], from)
	d.Directions[from][to] = dir
	d.Directions[to][from] = dir.Opposite()
}

func (d *Dungeon) addRoom(room *Room) {
	d.Rooms[room.ID] = room
	d.Adjacency[room.ID] = []int{}
	d.Directions[room.ID] = make(map[int]Direction)
}
