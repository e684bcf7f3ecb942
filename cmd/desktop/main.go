package main

import (
	"bytes"
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"gobf/pkg/compiler"
	"gobf/pkg/grid"
	"gobf/pkg/utils"
	"gobf/pkg/vm"
)

const (
	viewCols = 32 // tape cells per row in the window
	viewRows = 16
	viewSize = viewCols * viewRows

	cellWidth  = 16
	cellHeight = 16

	statusHeight = 16
	outputHeight = 128

	maxStepsPerFrame = 1000000
)

// cursorColor marks the data pointer's cell in the tape view.
var cursorColor = color.RGBA{R: 0x29, G: 0xAD, B: 0xFF, A: 0xFF}

type Game struct {
	program []vm.Instruction
	input   []byte // original program input, kept for reset

	vm     *vm.Machine
	out    bytes.Buffer
	runErr error

	paused        bool
	stepsPerFrame int
	steps         int64

	cursorImg *ebiten.Image // reused highlight for the current cell
}

func newGame(program []vm.Instruction, input []byte) *Game {
	g := &Game{
		program:       program,
		input:         input,
		stepsPerFrame: 1000,
	}
	g.reset()
	return g
}

func (g *Game) reset() {
	g.vm = vm.NewMachine(g.program)
	g.vm.Input = bytes.NewReader(g.input)
	g.vm.Output = &g.out
	g.out.Reset()
	g.runErr = nil
	g.steps = 0
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.speedUp()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.speedDown()
	}

	if g.runErr != nil {
		return nil
	}

	if g.paused {
		// Single-step while paused.
		if inpututil.IsKeyJustPressed(ebiten.KeyS) && !g.vm.Halted {
			g.step()
		}
		return nil
	}

	for i := 0; i < g.stepsPerFrame; i++ {
		// Break early if the program finishes or fails.
		if g.vm.Halted || g.runErr != nil {
			break
		}
		g.step()
	}

	return nil
}

func (g *Game) speedUp() {
	if g.stepsPerFrame < maxStepsPerFrame {
		g.stepsPerFrame *= 10
	}
}

func (g *Game) speedDown() {
	if g.stepsPerFrame > 1 {
		g.stepsPerFrame /= 10
	}
}

func (g *Game) step() {
	if err := g.vm.Step(); err != nil {
		g.runErr = err
		return
	}
	g.steps++
}

// viewStart returns the tape index of the window's first cell, keeping the
// data pointer inside the window. Near the end of the tape the window may
// extend past the last cell; drawTape stops there.
func (g *Game) viewStart() int {
	start := g.vm.DP - viewSize/2
	if start < 0 {
		start = 0
	}
	// Align to a row so cells don't shift column as the pointer moves.
	return start - start%viewCols
}

func (g *Game) drawTape(screen *ebiten.Image) {
	if g.cursorImg == nil {
		g.cursorImg = ebiten.NewImage(cellWidth, cellHeight)
		g.cursorImg.Fill(cursorColor)
	}

	start := g.viewStart()
	for i := 0; i < viewSize; i++ {
		cell := start + i
		if cell >= len(g.vm.Tape) {
			break
		}
		x, y := grid.GetGridCoords(i, viewCols)
		px := x * cellWidth
		py := statusHeight + y*cellHeight

		if cell == g.vm.DP {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(px), float64(py))
			screen.DrawImage(g.cursorImg, op)
		}

		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%02x", g.vm.Tape[cell]), px, py)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	state := "running"
	switch {
	case g.runErr != nil:
		state = fmt.Sprintf("error: %v", g.runErr)
	case g.vm.Halted:
		state = "halted"
	case g.paused:
		state = "paused (S steps)"
	}
	status := fmt.Sprintf("ip=%d dp=%d steps=%d speed=%d/frame  %s", g.vm.IP, g.vm.DP, g.steps, g.stepsPerFrame, state)
	ebitenutil.DebugPrintAt(screen, status, 0, 0)

	g.drawTape(screen)

	outY := statusHeight + viewRows*cellHeight
	ebitenutil.DebugPrintAt(screen, "output:", 0, outY)
	ebitenutil.DebugPrintAt(screen, tail(g.out.String(), 7), 0, outY+16)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewCols * cellWidth, statusHeight + viewRows*cellHeight + outputHeight
}

// tail returns at most the last n lines of s.
func tail(s string, n int) string {
	lines := 0
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '\n' {
			lines++
			if lines >= n {
				return s[i+1:]
			}
		}
	}
	return s
}

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <source.bf> [input-file]", os.Args[0])
	}

	fullPath, _, err := utils.PathInfo(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to resolve source path: %v", err)
	}
	sourceBytes, err := os.ReadFile(fullPath)
	if err != nil {
		log.Fatalf("Failed to read source file: %v", err)
	}

	var input []byte
	if len(os.Args) > 2 {
		input, err = os.ReadFile(os.Args[2])
		if err != nil {
			log.Fatalf("Failed to read input file: %v", err)
		}
	}

	program, err := compiler.Compile(string(sourceBytes))
	if err != nil {
		log.Fatalf("Compilation failed: %v", err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(viewCols*cellWidth*2, (statusHeight+viewRows*cellHeight+outputHeight)*2)
	ebiten.SetWindowTitle("Brainfuck Tape")

	if err := ebiten.RunGame(newGame(program, input)); err != nil {
		log.Fatal(err)
	}
}
