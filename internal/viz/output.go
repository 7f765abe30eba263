package viz

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Target selects where rendered output goes.
type Target int

const (
	// Display renders for a person at a terminal.
	Display Target = iota
	// Stream writes plain text frames for another program to consume.
	Stream
	// File writes a recording: SVG for a pose, GIF for an animation.
	File
)

var ErrNoPath = errors.New("viz: file output requires a path")

func (t Target) String() string {
	switch t {
	case Display:
		return "display"
	case Stream:
		return "stream"
	case File:
		return "file"
	}
	return fmt.Sprintf("target(%d)", int(t))
}

func ParseTarget(s string) (Target, error) {
	switch s {
	case "", "display":
		return Display, nil
	case "stream":
		return Stream, nil
	case "file":
		return File, nil
	}
	return Display, fmt.Errorf("unknown output: %s (available: display, stream, file)", s)
}

// Output is the full set of recognised output options.
type Output struct {
	Target Target
	// Path is required for File.
	Path string
	// Writer receives Display and Stream output; nil means stdout.
	Writer io.Writer
	// Theme names the Display color theme.
	Theme string
}

func (o Output) Validate() error {
	if o.Target == File && o.Path == "" {
		return ErrNoPath
	}
	return nil
}

func (o Output) writer() io.Writer {
	if o.Writer == nil {
		return os.Stdout
	}
	return o.Writer
}
