package decoder

// Frame is a read-only handle to one decoded picture.
//
// A Frame is owned by the engine and is only valid for the duration of the
// FrameHandler invocation that delivered it. Callers must extract whatever
// they need synchronously and must not retain the handle.
//
// The picture is addressed through a fixed grid of minimum coding blocks.
// GridWidth and GridHeight give the grid dimensions in min-CB units, and
// MinCBSize the scale factor from grid units to pixels.
type Frame interface {
	// ID returns the monotonically increasing frame identifier.
	ID() int

	// GridWidth returns the picture width in minimum coding block units.
	GridWidth() int

	// GridHeight returns the picture height in minimum coding block units.
	GridHeight() int

	// MinCBSize returns the minimum coding block size in pixels.
	MinCBSize() int

	// Log2CBSize returns the partition size exponent of the coding block
	// whose top-left corner is at grid position (x0, y0). A value of 0
	// marks a grid cell that lies inside a larger block reported at its
	// own origin.
	Log2CBSize(x0, y0 int) int

	// LumaQP returns the luma quantization parameter of the block owning
	// pixel (x, y).
	LumaQP(x, y int) int

	// ChromaCbQP returns the chroma Cb quantization parameter of the block
	// owning pixel (x, y).
	ChromaCbQP(x, y int) int

	// ChromaCrQP returns the chroma Cr quantization parameter of the block
	// owning pixel (x, y).
	ChromaCrQP(x, y int) int

	// PredictionMode returns the prediction mode (0 intra, 1 inter,
	// 2 skip) of the block owning pixel (x, y).
	PredictionMode(x, y int) int
}

// FrameHandler is invoked synchronously by the engine for every completed
// frame, zero or more times per DecodeStep call.
type FrameHandler func(Frame)

// Engine is the push-style decoding engine consumed by the stream loop.
//
// All methods are called from a single goroutine; implementations do not
// need to be safe for concurrent use.
type Engine interface {
	// Push hands a span of bitstream bytes to the engine together with its
	// byte offset in the input. The engine may buffer internally.
	Push(data []byte, offset int64) error

	// PushNAL hands one discrete length-prefixed unit to the engine.
	PushNAL(data []byte, offset int64) error

	// Flush signals end of input and forces emission of any buffered
	// frames. Called exactly once.
	Flush() error

	// DecodeStep performs one unit of decode work. It reports whether more
	// work remains for this drain pass. Completed frames are delivered to
	// the registered FrameHandler from within the call.
	DecodeStep() (more bool, err error)

	// SetFrameHandler registers the synchronous per-frame callback.
	SetFrameHandler(h FrameHandler)

	// NextWarning pops one pending decoder warning, reporting false when
	// none remain.
	NextWarning() (string, bool)

	// Close releases engine resources.
	Close() error
}

// Config carries decoder configuration. The pipeline passes it through
// unchanged; interpretation is entirely up to the engine.
type Config struct {
	// CheckHash enables SEI picture hash validation.
	CheckHash bool

	// SuppressFaultyPictures hides pictures the engine considers damaged.
	SuppressFaultyPictures bool

	// DisableDeblocking turns off the deblocking filter.
	DisableDeblocking bool

	// DisableSAO turns off the sample-adaptive offset filter.
	DisableSAO bool

	// NoAcceleration forces the scalar (non-SIMD) decode paths.
	NoAcceleration bool

	// MaxTemporalID limits decoding to temporal sublayers up to this ID.
	MaxTemporalID int

	// Verbosity is the engine-internal log verbosity level.
	Verbosity int
}
