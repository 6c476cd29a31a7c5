package surface

// Op names counted by Recorder.
const (
	OpClear        = "clear"
	OpFillRect     = "fill_rect"
	OpStrokeRect   = "stroke_rect"
	OpFillCircle   = "fill_circle"
	OpStrokeCircle = "stroke_circle"
	OpFillEllipse  = "fill_ellipse"
	OpFillPath     = "fill_path"
	OpStrokePath   = "stroke_path"
	OpStrokeLine   = "stroke_line"
)

// Recorder is a Canvas that draws nothing and counts what it was asked to draw.
// The headless host hands these out; tests read them back.
type Recorder struct {
	StateStack
	width, height int

	ops         int
	byKind      map[string]int
	byComposite map[Composite]int
	byShape     map[ShapeKind]int
	clipped     int
}

// NewRecorder returns a recorder of the given size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		StateStack:  NewStateStack(),
		width:       width,
		height:      height,
		byKind:      make(map[string]int),
		byComposite: make(map[Composite]int),
		byShape:     make(map[ShapeKind]int),
	}
}

func (r *Recorder) Size() (int, int) {
	return r.width, r.height
}

// SetSize changes the recorder size, as a host does on viewport resize.
func (r *Recorder) SetSize(width, height int) {
	r.width, r.height = width, height
}

// Ops returns the total number of draw operations.
func (r *Recorder) Ops() int {
	return r.ops
}

// Count returns the number of draw operations of one kind.
func (r *Recorder) Count(kind string) int {
	return r.byKind[kind]
}

// CompositeOps returns the number of operations drawn with a composite mode.
func (r *Recorder) CompositeOps(op Composite) int {
	return r.byComposite[op]
}

// Shapes returns the number of filled subpaths of one shape kind.
func (r *Recorder) Shapes(kind ShapeKind) int {
	return r.byShape[kind]
}

// ClippedOps returns the number of operations drawn under a clip.
func (r *Recorder) ClippedOps() int {
	return r.clipped
}

// ResetCounts zeroes the counters without touching the drawing state.
func (r *Recorder) ResetCounts() {
	r.ops = 0
	r.clipped = 0
	clear(r.byKind)
	clear(r.byComposite)
	clear(r.byShape)
}

func (r *Recorder) record(kind string) {
	r.ops++
	r.byKind[kind]++
	st := r.Current()
	r.byComposite[st.Composite]++
	if st.Clip != nil {
		r.clipped++
	}
}

func (r *Recorder) Clear() { r.record(OpClear) }

func (r *Recorder) FillRect(Rect, Paint) { r.record(OpFillRect) }
func (r *Recorder) StrokeRect(Rect, float64, Paint) { r.record(OpStrokeRect) }
func (r *Recorder) FillCircle(_, _, _ float64, _ Paint) { r.record(OpFillCircle) }
func (r *Recorder) StrokePath(*Path, float64, Paint) { r.record(OpStrokePath) }
func (r *Recorder) FillPath(p *Path, _ Paint) {
	r.record(OpFillPath)
	for _, poly := range p.Flatten() {
		r.byShape[Classify(poly).Kind]++
	}
}
func (r *Recorder) StrokeCircle(_, _, _, _ float64, _ Paint) {
	r.record(OpStrokeCircle)
}
func (r *Recorder) FillEllipse(_, _, _, _, _ float64, _ Paint) {
	r.record(OpFillEllipse)
}
func (r *Recorder) StrokeLine(_, _, _, _, _ float64, _ Paint) {
	r.record(OpStrokeLine)
}
