// Package render holds the collaborator interfaces between the loop and the
// platform layer, plus CPU-side drawing helpers.
//
// Frames are drawn by the loop worker into *image.RGBA buffers owned by a
// SwapChain. A Host (a desktop window or a terminal) runs the event-dispatch
// goroutine, feeds input into an input.Store and puts the front buffer on
// screen. Nothing in this package depends on a particular backend.
package render

import "image"

// Host represents the windowing layer that the application runs inside.
type Host interface {
	// Name identifies the backend in logs.
	Name() string

	// Run opens the window and dispatches input until the window is closed
	// or Close is called. It blocks and, for desktop backends, must be
	// called from the main goroutine.
	Run() error

	// Close asks Run to return. It is safe to call from any goroutine and
	// more than once.
	Close()
}

// ResourceLoader handles loading resources like images from disk.
type ResourceLoader interface {
	// LoadImage returns the decoded image. Callers that treat a missing
	// resource as non-fatal use Load.
	LoadImage(path string) (image.Image, error)
}

// Presenter is the "present a frame" capability used by the loop's render
// callback. Draw hands out a back buffer, runs fn on it and makes it the
// front buffer, possibly waiting briefly for the display.
type Presenter interface {
	Draw(fn func(dst *image.RGBA)) error
}

var _ Presenter = (*SwapChain)(nil)
