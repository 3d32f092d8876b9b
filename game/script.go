package game

import (
	"fmt"
	"os"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/bloom/camera"
)

// ScriptAction is one timed gesture in a headless input script.
type ScriptAction struct {
	At       float64 `yaml:"at"`     // Simulation seconds
	Action   string  `yaml:"action"` // tap, down, move, up, swipe, clear
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ToX      float64 `yaml:"to_x"`     // swipe only
	ToY      float64 `yaml:"to_y"`     // swipe only
	Duration float64 `yaml:"duration"` // swipe only, default 0.25
	Steps    int     `yaml:"steps"`    // swipe only, default 4
	Screen   bool    `yaml:"screen"`   // x/y are pixels unprojected through the camera
}

// Script is a list of gestures replayed against a headless game.
type Script struct {
	Actions []ScriptAction `yaml:"actions"`
}

// ParseScript parses a YAML gesture script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	return &s, nil
}

// LoadScript reads a YAML gesture script from disk.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return ParseScript(data)
}

type scriptEvent struct {
	at   float64
	kind inputKind
	pos  r3.Vec
}

// ScriptPlayer feeds a script's gestures into a game as simulation time passes.
type ScriptPlayer struct {
	events []scriptEvent
	next   int
}

// NewScriptPlayer expands a script into pointer events. cam is only needed
// for actions in screen coordinates and may be nil otherwise.
func NewScriptPlayer(s *Script, cam *camera.Camera) (*ScriptPlayer, error) {
	p := &ScriptPlayer{}
	for i, a := range s.Actions {
		from, err := scriptPoint(cam, a.Screen, a.X, a.Y)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}

		switch a.Action {
		case "tap":
			p.add(a.At, inputDown, from)
			p.add(a.At, inputUp, r3.Vec{})
		case "down":
			p.add(a.At, inputDown, from)
		case "move":
			p.add(a.At, inputMove, from)
		case "up":
			p.add(a.At, inputUp, r3.Vec{})
		case "clear":
			p.add(a.At, inputClear, r3.Vec{})
		case "swipe":
			to, err := scriptPoint(cam, a.Screen, a.ToX, a.ToY)
			if err != nil {
				return nil, fmt.Errorf("action %d: %w", i, err)
			}
			duration := a.Duration
			if duration <= 0 {
				duration = 0.25
			}
			steps := a.Steps
			if steps <= 0 {
				steps = 4
			}
			p.add(a.At, inputDown, from)
			for k := 1; k <= steps; k++ {
				f := float64(k) / float64(steps)
				pos := r3.Add(from, r3.Scale(f, r3.Sub(to, from)))
				p.add(a.At+f*duration, inputMove, pos)
			}
			p.add(a.At+duration, inputUp, r3.Vec{})
		default:
			return nil, fmt.Errorf("action %d: unknown action %q", i, a.Action)
		}
	}

	sort.SliceStable(p.events, func(i, j int) bool {
		return p.events[i].at < p.events[j].at
	})
	return p, nil
}

func scriptPoint(cam *camera.Camera, screen bool, x, y float64) (r3.Vec, error) {
	if !screen {
		return r3.Vec{X: x, Y: y}, nil
	}
	if cam == nil {
		return r3.Vec{}, fmt.Errorf("screen coordinates need a camera")
	}
	p, ok := cam.Unproject(x, y)
	if !ok {
		return r3.Vec{}, fmt.Errorf("pixel (%v, %v) does not hit the working plane", x, y)
	}
	return p, nil
}

func (p *ScriptPlayer) add(at float64, kind inputKind, pos r3.Vec) {
	p.events = append(p.events, scriptEvent{at: at, kind: kind, pos: pos})
}

// Apply queues every event due at or before the game's current time and
// returns how many were queued.
func (p *ScriptPlayer) Apply(g *Game) int {
	now := g.Elapsed()
	n := 0
	for p.next < len(p.events) && p.events[p.next].at <= now {
		ev := p.events[p.next]
		switch ev.kind {
		case inputUp, inputClear:
			g.enqueue(inputEvent{kind: ev.kind})
		default:
			// Non-finite points are dropped and counted like live input
			_ = g.enqueuePoint(ev.kind, ev.pos)
		}
		p.next++
		n++
	}
	return n
}

// Done reports whether every scripted event has been queued.
func (p *ScriptPlayer) Done() bool {
	return p.next >= len(p.events)
}
