// Package locator finds ports and items near a point on a view.
//
// Candidates are the items whose bounds intersect the square of side 2*radius
// around the point. They are visited topmost first so that, at equal
// distance, whatever is drawn on top wins.
package locator

import (
	"cmp"
	"errors"
	"io"
	"iter"
	"math"
	"slices"

	"github.com/sirupsen/logrus"

	"linkage/diagram"
	"linkage/geometry"
)

// Sink is a glue candidate: a port of an item and the point on it closest to
// the query point, in view coordinates.
type Sink struct {
	Item diagram.Item
	Port diagram.Port
	Pos  geometry.Point
}

// Locator runs spatial queries against a view.
type Locator struct {
	view diagram.View
	log  logrus.FieldLogger
}

// New creates a locator. A nil logger discards everything.
func New(view diagram.View, log logrus.FieldLogger) *Locator {
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}
	return &Locator{view: view, log: log}
}

// candidates returns the non-excluded items near point, topmost first.
func (l *Locator) candidates(point geometry.Point, radius float64, exclude []diagram.Item) []diagram.Item {
	items := l.view.ItemsInRect(geometry.RectAround(point, radius))
	out := make([]diagram.Item, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		if !slices.Contains(exclude, items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}

// NearestPort returns the connectable port closest to point, if one lies
// strictly within radius. Ports of excluded items are not considered. A
// later candidate replaces the current one only when it is strictly closer.
// Ports answering with a non-finite point or distance are skipped.
func (l *Locator) NearestPort(point geometry.Point, radius float64, exclude ...diagram.Item) (Sink, bool) {
	var (
		best  Sink
		found bool
		limit = radius
	)

	for _, item := range l.candidates(point, radius, exclude) {
		local := geometry.Apply(l.view.ViewToItem(item), point)
		for i, port := range item.Ports() {
			if !port.Connectable() {
				continue
			}
			closest, d := port.Glue(local)
			if !finite(d, closest.X, closest.Y) {
				l.log.WithFields(logrus.Fields{"item": item.ID(), "port": i}).
					WithError(diagram.ErrGeometryUnavailable).
					Warn("skipping port without closest point")
				continue
			}
			if d >= limit {
				continue
			}
			limit = d
			best = Sink{Item: item, Port: port, Pos: geometry.Apply(l.view.ItemToView(item), closest)}
			found = true
		}
	}

	return best, found
}

type ranked struct {
	item     diagram.Item
	distance float64
}

// NearestItems yields the items within radius of point. Items containing the
// point come first, those the point is barely inside of leading. Items the
// point is outside of follow, closest first. The sequence is computed anew on
// every iteration.
func (l *Locator) NearestItems(point geometry.Point, radius float64, exclude ...diagram.Item) iter.Seq[diagram.Item] {
	return func(yield func(diagram.Item) bool) {
		var inside, outside []ranked
		for _, item := range l.candidates(point, radius, exclude) {
			d, err := item.Distance(geometry.Apply(l.view.ViewToItem(item), point))
			if err != nil {
				entry := l.log.WithField("item", item.ID()).WithError(err)
				if errors.Is(err, diagram.ErrGeometryUnavailable) {
					entry.Warn("skipping item without distance")
				} else {
					entry.Error("distance query failed")
				}
				continue
			}
			switch {
			case d <= 0:
				inside = append(inside, ranked{item, d})
			case d < radius:
				outside = append(outside, ranked{item, d})
			}
		}

		slices.SortStableFunc(inside, func(a, b ranked) int { return cmp.Compare(b.distance, a.distance) })
		slices.SortStableFunc(outside, func(a, b ranked) int { return cmp.Compare(a.distance, b.distance) })

		for _, r := range append(inside, outside...) {
			if !yield(r.item) {
				return
			}
		}
	}
}

// ItemAt returns the first item NearestItems would yield.
func (l *Locator) ItemAt(point geometry.Point, radius float64, exclude ...diagram.Item) (diagram.Item, bool) {
	for item := range l.NearestItems(point, radius, exclude...) {
		return item, true
	}
	return nil, false
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
