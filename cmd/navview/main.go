// Interactive hex world viewer: generates a terrain world, runs the
// search strategies over it, and paints paths, reachability and
// direction fields in the terminal.
//
// Keys: arrows/hjkl move the cursor, s/g place start/goal, n cycles
// the strategy, x toggles a wall, o toggles occupancy, r shows
// reachable cells, f shows the direction field toward the goal,
// q/Esc quits.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/gravitas-015/hexcore/hex"

	"github.com/lixenwraith/hexnav/grid"
	"github.com/lixenwraith/hexnav/navigation"
	"github.com/lixenwraith/hexnav/terrain"
)

var (
	radius    = flag.Int("radius", 12, "World radius in hex rings")
	seed      = flag.Int64("seed", 0, "World seed (0 = random)")
	occupancy = flag.Float64("occupancy", 0.05, "Fraction of cells occupied")
	budget    = flag.Int("budget", 6, "Movement budget for the reachability overlay")
)

type viewer struct {
	screen tcell.Screen
	world  *grid.Map
	mgr    *navigation.Manager

	cursor hex.Axial
	start  hex.Axial
	goal   hex.Axial

	showReach bool
	showField bool

	// Screen offsets so negative hex coordinates still land on screen
	colShift, rowShift int

	status string
}

var terrainStyles = map[string]tcell.Style{
	terrain.TerrainPlains:   tcell.StyleDefault.Foreground(tcell.ColorGreen),
	terrain.TerrainForest:   tcell.StyleDefault.Foreground(tcell.ColorDarkGreen),
	terrain.TerrainHills:    tcell.StyleDefault.Foreground(tcell.ColorOlive),
	terrain.TerrainSwamp:    tcell.StyleDefault.Foreground(tcell.ColorTeal),
	terrain.TerrainMountain: tcell.StyleDefault.Foreground(tcell.ColorGray),
}

func main() {
	flag.Parse()

	cfg := terrain.DefaultConfig()
	cfg.Radius = *radius
	cfg.Seed = *seed
	cfg.OccupancyRate = *occupancy
	world := terrain.Generate(cfg)

	open := terrain.OpenCells(world)
	if len(open) < 2 {
		log.Fatal("generated world has no open cells; try another seed")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	v := &viewer{
		screen: screen,
		world:  world,
		mgr:    navigation.NewManager(world),
		start:  open[0],
		goal:   open[len(open)-1],
	}
	v.cursor = v.start
	v.computeShift()

	v.run()
}

func (v *viewer) computeShift() {
	first := true
	v.world.Each(func(a hex.Axial, _ *grid.Tile) {
		col, row := grid.AxialToOffset(a)
		if first || col < -v.colShift {
			v.colShift = -col
		}
		if first || row < -v.rowShift {
			v.rowShift = -row
		}
		first = false
	})
}

func (v *viewer) run() {
	for {
		v.draw()
		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if !v.handleKey(ev) {
				return
			}
		}
	}
}

func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		v.moveCursor(0, -1)
	case tcell.KeyDown:
		v.moveCursor(0, 1)
	case tcell.KeyLeft:
		v.moveCursor(-1, 0)
	case tcell.KeyRight:
		v.moveCursor(1, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'h':
			v.moveCursor(-1, 0)
		case 'l':
			v.moveCursor(1, 0)
		case 'k':
			v.moveCursor(0, -1)
		case 'j':
			v.moveCursor(0, 1)
		case 's':
			v.start = v.cursor
		case 'g':
			v.goal = v.cursor
		case 'n':
			v.cycleStrategy()
		case 'x':
			v.toggleWall()
		case 'o':
			v.toggleOccupied()
		case 'r':
			v.showReach = !v.showReach
		case 'f':
			v.showField = !v.showField
		}
	}
	return true
}

func (v *viewer) moveCursor(dc, dr int) {
	col, row := grid.AxialToOffset(v.cursor)
	next := grid.OffsetToAxial(col+dc, row+dr)
	if v.world.Contains(next) {
		v.cursor = next
	}
}

func (v *viewer) cycleStrategy() {
	all := navigation.Strategies()
	cur := v.mgr.Algorithm()
	next := all[(int(cur)+1)%len(all)]
	if err := v.mgr.SetAlgorithm(next); err != nil {
		v.status = err.Error()
	}
}

func (v *viewer) toggleWall() {
	t := v.world.TileAt(v.cursor)
	if t == nil {
		return
	}
	t.Walkable = !t.Walkable
	v.mgr.InvalidateCache(v.cursor)
}

func (v *viewer) toggleOccupied() {
	t := v.world.TileAt(v.cursor)
	if t == nil {
		return
	}
	t.Occupied = !t.Occupied
	v.mgr.InvalidateCache(v.cursor)
}

func (v *viewer) draw() {
	v.screen.Clear()

	r, err := v.mgr.FindPath(v.start, v.goal, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	onPath := make(map[hex.Axial]bool, len(r.Path))
	for _, c := range r.Path {
		onPath[c] = true
	}

	var reach map[hex.Axial]struct{}
	if v.showReach {
		reach, _ = v.mgr.GetReachableCells(v.start, *budget, nil)
	}
	var field *navigation.DirectionField
	if v.showField {
		field, _ = v.mgr.GenerateDirectionField(v.goal, nil, -1)
	}

	v.world.Each(func(a hex.Axial, t *grid.Tile) {
		x, y := v.cellScreen(a)
		ch, style := v.cellGlyph(a, t, onPath, reach, field)
		v.screen.SetContent(x, y, ch, nil, style)
	})

	v.drawStatus(r)
	v.screen.Show()
}

// cellScreen maps a hex cell to terminal coordinates: two columns per
// cell, odd rows shifted right by one for the hex stagger
func (v *viewer) cellScreen(a hex.Axial) (int, int) {
	col, row := grid.AxialToOffset(a)
	col += v.colShift
	row += v.rowShift
	return col*2 + (row & 1), row
}

func (v *viewer) cellGlyph(a hex.Axial, t *grid.Tile, onPath map[hex.Axial]bool,
	reach map[hex.Axial]struct{}, field *navigation.DirectionField) (rune, tcell.Style) {

	style, ok := terrainStyles[t.Terrain]
	if !ok {
		style = tcell.StyleDefault
	}

	switch {
	case a == v.cursor:
		return '+', tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	case a == v.start:
		return 'S', tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	case a == v.goal:
		return 'G', tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	case !t.Walkable:
		return '#', tcell.StyleDefault.Foreground(tcell.ColorGray)
	case onPath[a]:
		return '*', tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	case t.Occupied:
		return 'o', style
	}
	if reach != nil {
		if _, ok := reach[a]; ok {
			return '~', tcell.StyleDefault.Foreground(tcell.ColorBlue)
		}
	}
	if field != nil {
		if next, ok := field.Next(a); ok {
			return flowRune(a, next), style
		}
	}
	return '.', style
}

// flowRune picks an arrow for the step direction a -> next
func flowRune(a, next hex.Axial) rune {
	d := hex.Axial{Q: next.Q - a.Q, R: next.R - a.R}
	switch d {
	case hex.Axial{Q: 1, R: 0}:
		return '>'
	case hex.Axial{Q: -1, R: 0}:
		return '<'
	case hex.Axial{Q: 0, R: -1}, hex.Axial{Q: 1, R: -1}:
		return '^'
	default:
		return 'v'
	}
}

func (v *viewer) drawStatus(r navigation.Result) {
	_, h := v.screen.Size()
	st := v.mgr.Statistics()

	line := fmt.Sprintf("[%s] ", v.mgr.Algorithm())
	if r.Success {
		line += fmt.Sprintf("cost=%d cells=%d nodes=%d", r.TotalCost, len(r.Path), r.NodesExplored)
	} else {
		line += fmt.Sprintf("no path (%s)", r.FailureReason)
	}
	line += fmt.Sprintf("  cache=%d hit=%.0f%%", v.mgr.CacheSize(), st.HitRate()*100)
	if v.status != "" {
		line += "  " + v.status
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range line {
		v.screen.SetContent(i, h-1, ch, nil, style)
	}
	help := "s:start g:goal n:strategy x:wall o:occupy r:reach f:field q:quit"
	for i, ch := range help {
		v.screen.SetContent(i, h-2, ch, nil, tcell.StyleDefault.Foreground(tcell.ColorGray))
	}
}
