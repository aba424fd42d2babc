// Package terminal is an interactive driver for the connection core. Items
// are drawn with box and line characters; dragging a handle with the mouse
// glues it to nearby ports and releasing it connects.
package terminal

import (
	"errors"
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"linkage"
	"linkage/geometry"
	"linkage/tool"
)

// App owns the screen and the model for the lifetime of the event loop.
type App struct {
	screen tcell.Screen
	model  *linkage.Model
	tool   *tool.HandleTool
	log    logrus.FieldLogger

	pressed bool
}

// New creates an app drawing m onto screen. The screen must be initialised.
func New(screen tcell.Screen, m *linkage.Model, log logrus.FieldLogger) *App {
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}
	screen.EnableMouse()
	return &App{screen: screen, model: m, tool: m.HandleTool(), log: log}
}

// Run draws the model and handles events until the user quits or the screen
// is finalised.
func (a *App) Run() error {
	a.Draw()
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if a.HandleEvent(ev) {
			return nil
		}
	}
}

// Draw renders the current state.
func (a *App) Draw() {
	Draw(a.screen, a.model, Status(a.model))
}

// HandleEvent processes one event and reports whether the app should quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return true
		}
	case *tcell.EventResize:
		a.screen.Sync()
		a.Draw()
	case *tcell.EventMouse:
		a.handleMouse(ev)
		a.Draw()
	}
	return false
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := geometry.Pt(float64(x), float64(y))

	switch {
	case ev.Buttons()&tcell.Button1 != 0 && !a.pressed:
		a.pressed = true
		a.tool.Press(p)
	case ev.Buttons()&tcell.Button1 != 0:
		a.tool.Motion(p)
	case a.pressed:
		a.pressed = false
		a.tool.Release(p)
	default:
		return
	}

	if err := a.model.Update(); err != nil {
		a.log.WithError(err).Warn("update failed")
	}
}

// Demo builds the model shown by the demo command: two boxes and two wires
// to drag onto them.
func Demo(m *linkage.Model) error {
	var errs []error
	add := func(_ any, err error) {
		errs = append(errs, err)
	}

	add(m.AddElement("left", 4, 3, 18, 7))
	add(m.AddElement("right", 50, 4, 20, 9))
	add(m.AddLine("wire", 10, 16, geometry.Pt(0, 0), geometry.Pt(20, 0)))
	add(m.AddLine("bend", 40, 18, geometry.Pt(0, 0), geometry.Pt(10, -3), geometry.Pt(24, -3)))

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("building demo: %w", err)
	}
	return m.Update()
}
