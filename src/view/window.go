//go:build ebiten

package view

import (
	"errors"
	"image/color"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"deltalife/src/simulation"
	"deltalife/src/timing"
)

//Window shows the universe in an ebiten window, one pixel per cell scaled up.
//Only the cells from the frame deltas are repainted.
type Window struct {
	s        *simulation.Simulation
	template string
	scale    int

	mu    sync.Mutex
	board *Board
	pix   []byte
	img   *ebiten.Image

	onColor  color.Color
	offColor color.Color
	fps      *timing.Rate
	showFPS  bool
}

//NewWindow creates the window viewer
func NewWindow(scale int, template string) (*Window, error) {
	if scale <= 0 {
		scale = 8
	}
	return &Window{
		template: template,
		scale:    scale,
		board:    NewBoard(0, 0),
		onColor:  color.Black,
		offColor: color.White,
		fps:      timing.NewRate(),
		showFPS:  true,
	}, nil
}

//Register implements simulation.Viewer
func (w *Window) Register(s *simulation.Simulation) {
	w.s = s
	w.Refresh(s.Snapshot())
}

//Refresh implements simulation.Viewer
func (w *Window) Refresh(f simulation.Frame) {
	w.mu.Lock()
	defer w.mu.Unlock()
	changed := w.board.Apply(f)
	if changed == nil || len(w.pix) != w.board.Width*w.board.Height*4 {
		w.repaint()
		return
	}
	for i := 0; i+1 < len(changed); i += 2 {
		w.paint(changed[i], changed[i+1])
	}
}

//Start opens the window and blocks until it is closed
func (w *Window) Start() {
	width, height := w.s.Dimensions()
	ebiten.SetWindowTitle("deltalife")
	ebiten.SetWindowSize(width*w.scale, height*w.scale)
	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Println(err)
	}
}

//Update handles the keyboard and the mouse
func (w *Window) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		w.s.Run()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		w.s.Stop()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		w.s.Step()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		w.s.Clear()
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		w.s.SettleWithRandomData()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		w.s.SettleWithNoise()
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		w.s.Clear()
		w.s.SettleTemplate(w.template)
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		w.mu.Lock()
		w.showFPS = !w.showFPS
		w.mu.Unlock()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		w.s.Toggle(y/w.scale, x/w.scale)
	}
	return nil
}

//Draw renders the pixel buffer and the frame rate overlay (toggled by F)
func (w *Window) Draw(screen *ebiten.Image) {
	w.fps.Tick()
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.board.Width == 0 || w.board.Height == 0 {
		return
	}
	if w.img == nil || w.img.Bounds().Dx() != w.board.Width || w.img.Bounds().Dy() != w.board.Height {
		w.img = ebiten.NewImage(w.board.Width, w.board.Height)
	}
	w.img.WritePixels(w.pix)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.scale), float64(w.scale))
	screen.DrawImage(w.img, op)
	if w.showFPS {
		ebitenutil.DebugPrint(screen, "FPS "+w.fps.Summary().String())
	}
}

//Layout returns the logical screen size
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.board.Width * w.scale, w.board.Height * w.scale
}

//repaint fills the whole pixel buffer from the board
func (w *Window) repaint() {
	w.pix = make([]byte, w.board.Width*w.board.Height*4)
	for row := 0; row < w.board.Height; row++ {
		for col := 0; col < w.board.Width; col++ {
			w.paint(row, col)
		}
	}
}

//paint sets the pixel of one cell
func (w *Window) paint(row int, col int) {
	c := w.offColor
	if w.board.Alive(row, col) {
		c = w.onColor
	}
	r, g, b, a := c.RGBA()
	base := (row*w.board.Width + col) * 4
	w.pix[base+0] = uint8(r >> 8)
	w.pix[base+1] = uint8(g >> 8)
	w.pix[base+2] = uint8(b >> 8)
	w.pix[base+3] = uint8(a >> 8)
}
