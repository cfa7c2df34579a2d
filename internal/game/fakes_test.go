package game

import (
	"image"
	"image/color"

	"chosenoffset.com/raysight/internal/core/shadows"
	"chosenoffset.com/raysight/internal/render"
	"chosenoffset.com/raysight/internal/world/room"
)

type fakeInput struct {
	held             map[render.Key]bool
	just             map[render.Key]bool
	cursorX, cursorY int
}

func newFakeInput() *fakeInput {
	return &fakeInput{held: map[render.Key]bool{}, just: map[render.Key]bool{}}
}

func (f *fakeInput) IsKeyPressed(key render.Key) bool     { return f.held[key] }
func (f *fakeInput) IsKeyJustPressed(key render.Key) bool { return f.just[key] }
func (f *fakeInput) GetCursorPosition() (int, int)        { return f.cursorX, f.cursorY }

type fakeImage struct {
	fills int
}

func (i *fakeImage) Bounds() image.Rectangle { return image.Rect(0, 0, 1536, 768) }
func (i *fakeImage) Size() (int, int)        { return 1536, 768 }
func (i *fakeImage) Fill(clr color.Color)    { i.fills++ }
func (i *fakeImage) Clear()                  {}

// recorder counts draw calls per primitive
type recorder struct {
	rects, circles, strokes, lines, polygons, texts int
	lastText                                        string
	textLog                                         []string
	polygonSizes                                    []int
}

func (r *recorder) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	r.rects++
}

func (r *recorder) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	r.circles++
}

func (r *recorder) StrokeCircle(dst render.Image, x, y, radius float32, strokeWidth float32, clr color.Color) {
	r.strokes++
}

func (r *recorder) StrokeLine(dst render.Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color) {
	r.lines++
}

func (r *recorder) FillPolygon(dst render.Image, points []shadows.Point, clr color.Color) {
	r.polygons++
	r.polygonSizes = append(r.polygonSizes, len(points))
}

func (r *recorder) DrawText(dst render.Image, text string, x, y int, clr color.Color, scale float64) {
	r.texts++
	r.lastText = text
	r.textLog = append(r.textLog, text)
}

func (r *recorder) MeasureText(text string, scale float64) (int, int) {
	columns, lines := render.TextExtent(text)
	return int(float64(columns*6) * scale), int(float64(lines*13) * scale)
}

// clockedRecorder also reports a frame rate
type clockedRecorder struct {
	recorder
	fps float64
}

func (r *clockedRecorder) ActualFPS() float64 { return r.fps }

type countingSounds struct {
	doors int
}

func (s *countingSounds) PlayDoor() { s.doors++ }

// singleDoorLevel is two rooms split by a vertical wall at x=800 with a door
// cut at y=384.
func singleDoorLevel() *room.Level {
	west := room.Region{Max: shadows.IntPoint{X: 800, Y: 767}}
	east := room.Region{Min: shadows.IntPoint{X: 800}, Max: shadows.IntPoint{X: 1535, Y: 767}}
	return &room.Level{
		Seed:    9,
		Bounds:  room.Region{Max: shadows.IntPoint{X: 1535, Y: 767}},
		Rooms:   []room.Region{west, east},
		Doors:   []shadows.IntPoint{{X: 800, Y: 384}},
		DoorGap: 150,
		Walls: []shadows.Rect{
			{X: 800, Y: 0, Width: 10, Height: 319},
			{X: 800, Y: 459, Width: 10, Height: 318},
		},
	}
}

func generatedLevel(seed int64) *room.Level {
	cfg := room.DefaultGeneratorConfig()
	cfg.Seed = seed
	level, err := room.NewGenerator(cfg).Generate()
	if err != nil {
		panic(err)
	}
	return level
}
