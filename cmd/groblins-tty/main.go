// Command groblins-tty is a terminal viewer for a running groblinsd.
// It subscribes to the state feed over WebSocket, renders the world
// with tcell, and forwards terrain edits (mouse) and pan keys back to
// the server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gorilla/websocket"

	"github.com/ryholmdahl/groblins/internal/world"
)

type stateFrame struct {
	Type     string         `json:"type"`
	Snapshot world.Snapshot `json:"snapshot"`
}

type clientMsg struct {
	Type string  `json:"type"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`
	Key  string  `json:"key,omitempty"`
}

type viewer struct {
	screen tcell.Screen
	conn   *websocket.Conn

	mu     sync.Mutex
	latest *world.Snapshot

	camX, camY int
}

func newViewer(url string) (*viewer, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := screen.Init(); err != nil {
		conn.Close()
		return nil, err
	}
	screen.EnableMouse()

	return &viewer{screen: screen, conn: conn}, nil
}

func (v *viewer) cleanup() {
	v.screen.Fini()
	v.conn.Close()
}

func (v *viewer) send(msg clientMsg) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	v.conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
	v.conn.WriteMessage(websocket.TextMessage, data)
}

// readFrames pumps server state into the latest-snapshot slot until the
// socket drops, then signals the main loop.
func (v *viewer) readFrames(done chan<- struct{}) {
	defer close(done)
	for {
		_, payload, err := v.conn.ReadMessage()
		if err != nil {
			return
		}
		var frame stateFrame
		if err := json.Unmarshal(payload, &frame); err != nil || frame.Type != "state" {
			continue
		}
		v.mu.Lock()
		v.latest = &frame.Snapshot
		v.mu.Unlock()
	}
}

func (v *viewer) snapshot() *world.Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.latest
}

func (v *viewer) draw() {
	s := v.snapshot()
	v.screen.Clear()
	width, height := v.screen.Size()
	if s == nil {
		drawText(v.screen, 0, 0, tcell.StyleDefault, "waiting for state...")
		v.screen.Show()
		return
	}

	for _, ent := range s.Entities {
		x := int(ent.X+ent.W/2) - v.camX
		y := int(ent.Y+ent.H/2) - v.camY
		if x < 0 || y < 0 || x >= width || y >= height-1 {
			continue
		}
		ch, style := glyph(ent)
		v.screen.SetContent(x, y, ch, nil, style)
	}

	status := fmt.Sprintf(" tick %d  cam %d,%d  %s", s.Tick, v.camX, v.camY, groblinStatus(s))
	drawText(v.screen, 0, height-1, tcell.StyleDefault.Reverse(true), status)
	v.screen.Show()
}

func glyph(ent world.EntitySnapshot) (rune, tcell.Style) {
	switch ent.Kind {
	case world.KindGroblin:
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		if ent.Agent != nil && ent.Agent.Crawling {
			style = style.Bold(true)
		}
		return '@', style
	case world.KindEdible:
		return '*', tcell.StyleDefault.Foreground(tcell.ColorYellow)
	case world.KindVine:
		return '|', tcell.StyleDefault.Foreground(tcell.ColorGreen)
	default:
		return '█', tcell.StyleDefault.Foreground(tcell.ColorGray)
	}
}

func groblinStatus(s *world.Snapshot) string {
	for _, ent := range s.Entities {
		if ent.Agent == nil {
			continue
		}
		line := ent.Agent.Name
		for _, need := range ent.Agent.Needs {
			line += fmt.Sprintf(" %s=%.1f(%s)", need.Name, need.Value, need.State)
		}
		return line
	}
	return "no groblins"
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	}
	return ""
}

func (v *viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		if name := keyName(ev); name != "" {
			switch name {
			case "left":
				v.camX--
			case "right":
				v.camX++
			case "up":
				v.camY--
			case "down":
				v.camY++
			}
			// tcell reports no key-up; send a matched pair so held
			// state on the server never sticks.
			v.send(clientMsg{Type: "keydown", Key: name})
			v.send(clientMsg{Type: "keyup", Key: name})
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			v.send(clientMsg{
				Type: "edit",
				X:    float64(x + v.camX),
				Y:    float64(y + v.camY),
			})
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *viewer) run() {
	done := make(chan struct{})
	go v.readFrames(done)

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			events <- v.screen.PollEvent()
		}
	}()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case ev := <-events:
			if !v.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			v.draw()
		}
	}
}

func main() {
	addr := flag.String("addr", "ws://localhost:8080/ws", "server WebSocket URL")
	flag.Parse()

	v, err := newViewer(*addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
	defer v.cleanup()

	v.run()
}
