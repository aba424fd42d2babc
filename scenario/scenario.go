// Package scenario runs scripted diagram edits read from YAML: items are
// placed on a model, lines may be split, and handles are dragged along
// paths.
package scenario

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"linkage"
	"linkage/diagram"
	"linkage/geometry"
)

var (
	ErrUnknownItem   = errors.New("unknown item")
	ErrUnknownKind   = errors.New("unknown item kind")
	ErrBadPoint      = errors.New("a point needs exactly two coordinates")
	ErrBadHandle     = errors.New("handle index out of range")
	ErrDuplicateName = errors.New("duplicate item name")
)

// Point is written as [x, y].
type Point []float64

func (p Point) geometry() (geometry.Point, error) {
	if len(p) != 2 {
		return geometry.Point{}, fmt.Errorf("%w: %v", ErrBadPoint, []float64(p))
	}
	return geometry.Pt(p[0], p[1]), nil
}

// Item describes an item to place.
type Item struct {
	Name   string  `yaml:"name"`
	Kind   string  `yaml:"kind"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Points []Point `yaml:"points"`
}

// Split splits a segment of a line into Count pieces.
type Split struct {
	Item    string `yaml:"item"`
	Segment int    `yaml:"segment"`
	Count   int    `yaml:"count"`
}

// Drag moves handle Handle of Item along Path, in view coordinates.
type Drag struct {
	Item   string  `yaml:"item"`
	Handle int     `yaml:"handle"`
	Path   []Point `yaml:"path"`
}

// Scenario is a parsed scenario file.
type Scenario struct {
	Items  []Item  `yaml:"items"`
	Splits []Split `yaml:"splits"`
	Drags  []Drag  `yaml:"drags"`
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes a scenario.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.UnmarshalStrict(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &s, nil
}

// Run places the items on m, performs the splits and then the drags, in
// file order.
func (s *Scenario) Run(m *linkage.Model) error {
	items := make(map[string]diagram.Item, len(s.Items))

	for _, def := range s.Items {
		if _, ok := items[def.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateName, def.Name)
		}
		item, err := place(m, def)
		if err != nil {
			return fmt.Errorf("item %q: %w", def.Name, err)
		}
		items[def.Name] = item
	}

	for _, split := range s.Splits {
		line, ok := items[split.Item].(*diagram.Line)
		if !ok {
			return fmt.Errorf("split: %w: no line named %q", ErrUnknownItem, split.Item)
		}
		count := split.Count
		if count == 0 {
			count = 2
		}
		if _, _, err := m.Segment(line).SplitSegment(split.Segment, count); err != nil {
			return fmt.Errorf("split %q: %w", split.Item, err)
		}
		if err := m.Update(); err != nil {
			return err
		}
	}

	for i, drag := range s.Drags {
		if err := runDrag(m, items, drag); err != nil {
			return fmt.Errorf("drag %d: %w", i, err)
		}
	}
	return nil
}

func place(m *linkage.Model, def Item) (diagram.Item, error) {
	switch diagram.Kind(def.Kind) {
	case diagram.KindElement:
		return m.AddElement(def.Name, def.X, def.Y, def.Width, def.Height)
	case diagram.KindLine:
		points := make([]geometry.Point, 0, len(def.Points))
		for _, p := range def.Points {
			gp, err := p.geometry()
			if err != nil {
				return nil, err
			}
			points = append(points, gp)
		}
		return m.AddLine(def.Name, def.X, def.Y, points...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, def.Kind)
	}
}

func runDrag(m *linkage.Model, items map[string]diagram.Item, drag Drag) error {
	item, ok := items[drag.Item]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, drag.Item)
	}
	handles := item.Handles()
	if drag.Handle < 0 || drag.Handle >= len(handles) {
		return fmt.Errorf("%w: %q has %d handles, got %d", ErrBadHandle, drag.Item, len(handles), drag.Handle)
	}

	path := make([]geometry.Point, 0, len(drag.Path))
	for _, p := range drag.Path {
		gp, err := p.geometry()
		if err != nil {
			return err
		}
		path = append(path, gp)
	}
	return m.Drag(item, handles[drag.Handle], path)
}
