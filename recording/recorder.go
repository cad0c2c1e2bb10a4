// Package recording captures the render surface as a frame stream and
// finalizes it into a downloadable asset. The engine only offers its surface
// pixels; everything about formats and containers lives here.
package recording

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// FrameSource yields the current surface pixels, top row first.
type FrameSource interface {
	Frame() *image.RGBA
}

// Format is one encoding candidate.
type Format struct {
	Name string
	Ext  string
}

// Candidates lists encoding formats in priority order; Start picks the
// first supported one. The container formats stay listed so a build that
// links a video encoder negotiates them ahead of the frame sequence.
var Candidates = []Format{
	{Name: "webm", Ext: ".webm"},
	{Name: "mp4", Ext: ".mp4"},
	{Name: "png-seq", Ext: ".png"},
}

// supported reports whether an encoder for the format is available.
func supported(f Format) bool {
	return f.Name == "png-seq"
}

func pickFormat() (Format, error) {
	for _, f := range Candidates {
		if supported(f) {
			return f, nil
		}
	}
	return Format{}, fmt.Errorf("no supported recording format among %d candidates", len(Candidates))
}

// Recorder is the capture controller: idle until Start succeeds, then
// capturing one frame per tick until Stop. Failures here never affect
// the render loop.
type Recorder struct {
	baseDir string
	source  FrameSource

	format Format
	dir    string
	frame  int
	active bool
}

// New creates an idle recorder writing sessions under baseDir.
func New(baseDir string, source FrameSource) *Recorder {
	return &Recorder{baseDir: baseDir, source: source}
}

// Active reports whether a session is in progress.
func (r *Recorder) Active() bool {
	return r.active
}

// Start negotiates a format and opens a new capture session. The bitrate is
// advisory; the frame-sequence encoder ignores it. If no candidate format is
// supported the recorder stays idle and the error is reported to the caller.
func (r *Recorder) Start(bitrate int) error {
	if r.active {
		return fmt.Errorf("recording already active")
	}

	format, err := pickFormat()
	if err != nil {
		return err
	}

	dir := filepath.Join(r.baseDir, time.Now().Format("20060102-150405"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	r.format = format
	r.dir = dir
	r.frame = 0
	r.active = true

	slog.Info("recording started", "dir", dir, "format", format.Name, "bitrate", bitrate)
	return nil
}

// Capture encodes the current surface frame into the session. No-op when
// idle, so the render loop can call it unconditionally every tick.
func (r *Recorder) Capture() error {
	if !r.active {
		return nil
	}

	img := r.source.Frame()
	if img == nil {
		return fmt.Errorf("frame source returned no pixels")
	}

	path := filepath.Join(r.dir, fmt.Sprintf("frame_%05d%s", r.frame, r.format.Ext))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating frame file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding frame %d: %w", r.frame, err)
	}
	r.frame++
	return nil
}

// Stop finalizes the session and returns the asset reference (the session
// directory). Stopping an idle recorder is a no-op, not an error.
func (r *Recorder) Stop() (string, error) {
	if !r.active {
		return "", nil
	}
	r.active = false
	slog.Info("recording stopped", "dir", r.dir, "frames", r.frame)
	return r.dir, nil
}
