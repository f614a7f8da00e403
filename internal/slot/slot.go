// Package slot defines the static grid of droppable slots and their keys.
package slot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Grid errors.
var (
	ErrInvalidConfig = errors.New("invalid grid config")
	ErrInvalidKey    = errors.New("invalid slot key")
)

// Shape selects how slots are addressed.
type Shape string

const (
	SingleAxis Shape = "single-axis" // hour only
	TwoAxis    Shape = "two-axis"    // day x hour
)

// ParseShape parses a shape name.
func ParseShape(s string) (Shape, error) {
	switch Shape(strings.ToLower(strings.TrimSpace(s))) {
	case SingleAxis:
		return SingleAxis, nil
	case TwoAxis:
		return TwoAxis, nil
	default:
		return "", fmt.Errorf("%w: unknown shape %q", ErrInvalidConfig, s)
	}
}

// Key identifies one grid cell. Day is empty for single-axis grids.
// Keys are comparable and safe to use as map keys.
type Key struct {
	Day  string
	Hour int
}

// String returns "9" for single-axis keys and "Monday-9" for two-axis keys.
func (k Key) String() string {
	if k.Day == "" {
		return strconv.Itoa(k.Hour)
	}
	return k.Day + "-" + strconv.Itoa(k.Hour)
}

// ParseKey parses the String form of a key. Day names are canonicalised,
// so "monday-9", "Mon-9" and "Monday-9" all yield the same key.
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	dayPart, hourPart := "", s
	if i := strings.LastIndex(s, "-"); i >= 0 {
		dayPart, hourPart = s[:i], s[i+1:]
	}
	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	if dayPart == "" {
		if strings.Contains(s, "-") {
			return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
		}
		return Key{Hour: hour}, nil
	}
	day, ok := CanonicalDay(dayPart)
	if !ok {
		return Key{}, fmt.Errorf("%w: unknown day in %q", ErrInvalidKey, s)
	}
	return Key{Day: day, Hour: hour}, nil
}

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// CanonicalDay maps a full or three-letter weekday name, in any case,
// to its canonical Title-case form.
func CanonicalDay(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) < 3 {
		return "", false
	}
	for _, d := range weekdays {
		lower := strings.ToLower(d)
		if name == lower || name == lower[:3] {
			return d, true
		}
	}
	return "", false
}

// Config describes the grid. It is fixed for the lifetime of a Grid.
type Config struct {
	Shape     Shape
	HourStart int // inclusive
	HourEnd   int // inclusive
	Days      []string
}

// DefaultConfig returns the Monday..Friday, 8..16 two-axis grid.
func DefaultConfig() Config {
	return Config{
		Shape:     TwoAxis,
		HourStart: 8,
		HourEnd:   16,
		Days:      []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
	}
}

// Grid is the immutable enumeration of slot keys for a Config.
type Grid struct {
	shape Shape
	days  []string
	hours []int
	keys  []Key
	index map[Key]int
}

// NewGrid validates cfg and builds the key set.
func NewGrid(cfg Config) (*Grid, error) {
	if cfg.HourStart < 0 || cfg.HourEnd > 23 {
		return nil, fmt.Errorf("%w: hours must be within 0..23, got %d..%d", ErrInvalidConfig, cfg.HourStart, cfg.HourEnd)
	}
	if cfg.HourStart > cfg.HourEnd {
		return nil, fmt.Errorf("%w: hour_start %d after hour_end %d", ErrInvalidConfig, cfg.HourStart, cfg.HourEnd)
	}

	g := &Grid{shape: cfg.Shape, index: make(map[Key]int)}
	for h := cfg.HourStart; h <= cfg.HourEnd; h++ {
		g.hours = append(g.hours, h)
	}

	switch cfg.Shape {
	case SingleAxis:
		for _, h := range g.hours {
			g.add(Key{Hour: h})
		}
	case TwoAxis:
		if len(cfg.Days) == 0 {
			return nil, fmt.Errorf("%w: two-axis grid needs at least one day", ErrInvalidConfig)
		}
		seen := make(map[string]bool, len(cfg.Days))
		for _, name := range cfg.Days {
			day, ok := CanonicalDay(name)
			if !ok {
				return nil, fmt.Errorf("%w: unknown day %q", ErrInvalidConfig, name)
			}
			if seen[day] {
				return nil, fmt.Errorf("%w: duplicate day %q", ErrInvalidConfig, name)
			}
			seen[day] = true
			g.days = append(g.days, day)
		}
		for _, d := range g.days {
			for _, h := range g.hours {
				g.add(Key{Day: d, Hour: h})
			}
		}
	default:
		return nil, fmt.Errorf("%w: unknown shape %q", ErrInvalidConfig, cfg.Shape)
	}

	return g, nil
}

func (g *Grid) add(k Key) {
	g.index[k] = len(g.keys)
	g.keys = append(g.keys, k)
}

// Shape returns the grid shape.
func (g *Grid) Shape() Shape { return g.shape }

// Len returns the number of slots.
func (g *Grid) Len() int { return len(g.keys) }

// Keys returns every slot key, day-major then hour.
func (g *Grid) Keys() []Key {
	out := make([]Key, len(g.keys))
	copy(out, g.keys)
	return out
}

// Days returns the canonical day names; nil for single-axis grids.
func (g *Grid) Days() []string {
	if len(g.days) == 0 {
		return nil
	}
	out := make([]string, len(g.days))
	copy(out, g.days)
	return out
}

// Hours returns the hours covered by the grid in ascending order.
func (g *Grid) Hours() []int {
	out := make([]int, len(g.hours))
	copy(out, g.hours)
	return out
}

// Columns returns the number of day columns (1 for single-axis).
func (g *Grid) Columns() int {
	if g.shape == SingleAxis {
		return 1
	}
	return len(g.days)
}

// Contains reports whether k belongs to this grid.
func (g *Grid) Contains(k Key) bool {
	_, ok := g.index[k]
	return ok
}

// Key returns the key at the given column and row.
func (g *Grid) Key(col, row int) (Key, bool) {
	if col < 0 || col >= g.Columns() || row < 0 || row >= len(g.hours) {
		return Key{}, false
	}
	if g.shape == SingleAxis {
		return Key{Hour: g.hours[row]}, true
	}
	return Key{Day: g.days[col], Hour: g.hours[row]}, true
}

// Index returns the column and row of k.
func (g *Grid) Index(k Key) (col, row int, ok bool) {
	i, found := g.index[k]
	if !found {
		return 0, 0, false
	}
	rows := len(g.hours)
	return i / rows, i % rows, true
}

// Parse parses s and checks that the key belongs to the grid.
func (g *Grid) Parse(s string) (Key, error) {
	k, err := ParseKey(s)
	if err != nil {
		return Key{}, err
	}
	if !g.Contains(k) {
		return Key{}, fmt.Errorf("%w: %q is not in the %s grid", ErrInvalidKey, s, g.shape)
	}
	return k, nil
}
