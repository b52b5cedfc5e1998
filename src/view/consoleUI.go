package view

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"deltalife/src/simulation"
	"deltalife/src/timing"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI is the interactive terminal viewer
type ConsoleUI struct {
	s *simulation.Simulation
	g *gocui.Gui
	k []keyBindings

	mu     sync.Mutex
	board  *Board
	status simulation.Status

	fps *timing.Rate

	template   string
	liveFiller string
	deadFiller string
}

var (
	runningStateDescr = map[simulation.RunningState]string{
		simulation.RunningStateManual:   aurora.Colorize("waiting", aurora.BlueFg).String(),
		simulation.RunningStateStep:     "do the step",
		simulation.RunningStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
		simulation.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
)

//NewViewTerminal creates the terminal viewer, template is settled by the reset key
func NewViewTerminal(template string) *ConsoleUI {

	var err error
	t := ConsoleUI{
		board:      NewBoard(0, 0),
		fps:        timing.NewRate(),
		template:   template,
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln(err)
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next step", t.cmdNextRound, ""},
		{'r', "R", "Run", t.cmdRun, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'c', "C", "Clear", t.cmdClear, ""},
		{'w', "W", "Settle with random", t.cmdSettleWithRandom, ""},
		{'p', "P", "Settle with noise", t.cmdSettleWithNoise, ""},
		{'t', "T", "Reset template", t.cmdReset, ""},
		{gocui.MouseLeft, "MOUSE", "Toggle the cell", t.cmdMouseClick, "battlefield"},
	}
	t.g.SetManagerFunc(t.layout)

	t.initKeyBindings(t.k)

	return &t
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			log.Panicln(err)
		}
	}
}

//Register implements simulation.Viewer
func (t *ConsoleUI) Register(s *simulation.Simulation) {
	t.s = s
	f := s.Snapshot()
	t.mu.Lock()
	t.board.Apply(f)
	t.status = f.Status
	t.mu.Unlock()
}

//Start runs the terminal main loop until the exit key
func (t *ConsoleUI) Start() {
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
	t.g.Close()
}

//Refresh implements simulation.Viewer, the board is patched with the frame deltas
func (t *ConsoleUI) Refresh(f simulation.Frame) {
	t.mu.Lock()
	t.board.Apply(f)
	t.status = f.Status
	t.mu.Unlock()
	t.fps.Tick()
	t.renderField()
	t.renderConfiguration()
	t.renderStatus()
}

func (t *ConsoleUI) renderField() {

	t.g.Update(func(g *gocui.Gui) error {
		v, e := g.View("battlefield")
		if e != nil {
			return e
		}
		//gocui keeps the view as the text buffer, the board is patched incrementally
		//but the buffer is rewritten at once
		v.Clear()

		t.mu.Lock()
		defer t.mu.Unlock()
		a := t.board

		crop := false
		maxW, maxH := v.Size()
		if a.Width > maxW || a.Height > maxH {
			crop = true
		}

		var b bytes.Buffer

		for i, l := range a.Cells {
			//discard the data outside the view area
			if i >= maxH {
				break
			}
			//line feed char
			if i != 0 {
				b.WriteByte(10)
			}
			if crop && i == (maxH-1) {
				b.WriteString(aurora.Red("The field size is larger than the viewing area").BgBlack().String())
				break
			}
			for j, e := range l {
				if j >= maxW {
					break
				}
				if e {
					b.WriteString(t.liveFiller)
				} else {
					b.WriteString(t.deadFiller)
				}
			}
		}
		_, _ = fmt.Fprint(v, b.String())
		return nil
	})
}

//terminal geometry
const (
	headerHeight      = 3
	footerHeight      = 5
	sideWidth         = 28
	minTerminalHeight = 20
)

//prop formats one "name: value" line of a side panel
func prop(name string, format string, args ...interface{}) string {
	return " " + aurora.Green(name).String() + ": " + fmt.Sprintf(format, args...)
}

//fillView replaces the view content with the lines, must run inside gocui Update
func fillView(g *gocui.Gui, name string, lines ...string) error {
	v, err := g.View(name)
	if err != nil {
		return nil //not laid out yet
	}
	v.Clear()
	_, err = fmt.Fprint(v, strings.Join(lines, "\n"))
	return err
}

func (t *ConsoleUI) renderStatus() {
	t.mu.Lock()
	s := t.status
	t.mu.Unlock()
	mean := t.s.TickStats().Mean()
	fps := t.fps.Summary()
	t.g.Update(func(g *gocui.Gui) error {
		return fillView(g, "status",
			prop("Step", "%d", s.IterationNum),
			prop("Live cells", "%d", s.LiveCells),
			prop("Tick", "%v (mean %v)", s.IterationTime.Round(time.Microsecond), mean.Round(time.Microsecond)),
			prop("FPS", "%.1f avg %.1f", fps.Latest, fps.Mean),
			prop("FPS min/max", "%.1f / %.1f", fps.Min, fps.Max),
			prop("Mode", "%s", runningStateDescr[s.RunningMode]),
		)
	})
}

func (t *ConsoleUI) renderConfiguration() {
	c := t.s.Options()
	t.mu.Lock()
	w, h := t.board.Width, t.board.Height
	t.mu.Unlock()
	t.g.Update(func(g *gocui.Gui) error {
		return fillView(g, "configuration",
			prop("Grid", "%d x %d", w, h),
			prop("Boundary", "%v", c.Policy),
			prop("Strategy", "%v", c.Strategy),
			prop("Interval", "%v", c.Interval),
			prop("Max steps", "%d", c.MaxSteps),
		)
	})
}

//layout places the banner, the side panels, the universe and the key help
func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	if maxY < minTerminalHeight {
		for _, name := range []string{"configuration", "status", "battlefield", "help"} {
			_ = g.DeleteView(name)
		}
		return banner(g, maxY, "Terminal height too small")
	}
	if err := banner(g, headerHeight, "deltalife, Game of Life on delta frames"); err != nil {
		return err
	}

	bottom := maxY - footerHeight
	split := headerHeight + (bottom-headerHeight)/2
	panels := []struct {
		name, title    string
		x0, y0, x1, y1 int
		render         func()
	}{
		{"configuration", "Configuration", 0, headerHeight, sideWidth, split, t.renderConfiguration},
		{"status", "Status", 0, split + 1, sideWidth, bottom, t.renderStatus},
		{"battlefield", "Universe", sideWidth + 1, headerHeight, maxX - 1, bottom, nil},
	}
	for _, p := range panels {
		v, err := g.SetView(p.name, p.x0, p.y0, p.x1, p.y1)
		if err == nil {
			continue
		}
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title, v.Frame = p.title, true
		if p.render != nil {
			p.render()
		}
	}
	t.renderField()

	v, err := g.SetView("help", -1, bottom, maxX, bottom+2)
	if err == gocui.ErrUnknownView {
		v.Frame = false
		_, _ = fmt.Fprint(v, helpLine(t.k))
		return nil
	}
	return err
}

//helpLine lists the key bindings as "KEY action | KEY action"
func helpLine(k []keyBindings) string {
	items := make([]string, 0, len(k))
	for _, kb := range k {
		items = append(items, aurora.Green(kb.name).String()+" "+kb.descr)
	}
	return "Keys: " + strings.Join(items, " | ")
}

//banner fills the top height rows with the centred text, the text is cut to the terminal width
func banner(g *gocui.Gui, height int, text string) error {
	maxX, _ := g.Size()
	v, err := g.SetView("header", -1, -1, maxX+1, height)
	switch {
	case err == gocui.ErrUnknownView:
		v.Frame = false
		v.BgColor, v.FgColor = gocui.ColorCyan, gocui.ColorBlack
	case err != nil:
		return err
	}
	if len(text) > maxX {
		text = text[:maxX]
	}
	v.Clear()
	_, err = fmt.Fprint(v, strings.Repeat("\n", height/2), strings.Repeat(" ", (maxX-len(text))/2), text)
	return err
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	t.s.Step()
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.s.Run()
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.s.Stop()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.s.Clear()
	return nil
}

func (t *ConsoleUI) cmdSettleWithRandom(_ *gocui.View) error {
	t.s.SettleWithRandomData()
	return nil
}

func (t *ConsoleUI) cmdSettleWithNoise(_ *gocui.View) error {
	t.s.SettleWithNoise()
	return nil
}

func (t *ConsoleUI) cmdReset(_ *gocui.View) error {
	t.s.Clear()
	t.s.SettleTemplate(t.template)
	return nil
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	t.s.Toggle(cy, cx)
	return nil
}
