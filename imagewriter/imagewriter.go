// This file is part of Gatesim.
//
// Gatesim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gatesim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gatesim.  If not, see <https://www.gnu.org/licenses/>.

// Package imagewriter saves captured frames as image files. Files are named
// deterministically from the frame index, eg. frame00.bmp, frame01.bmp, etc.
package imagewriter

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/environment"
	"github.com/jetsetilly/gatesim/logger"
	"golang.org/x/image/bmp"
)

const logTag = "imagewriter"

// Format of the image files.
type Format int

// List of valid Format values.
const (
	BMP Format = iota
	PNG
)

// Extension returns the filename extension for the format, without the
// leading period.
func (f Format) Extension() string {
	switch f {
	case PNG:
		return "png"
	}
	return "bmp"
}

// ParseFormat returns the Format for a name. The name is not case sensitive
// and can have a leading period.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(s), ".") {
	case "bmp":
		return BMP, nil
	case "png":
		return PNG, nil
	}
	return BMP, curated.Errorf(UnknownFormat, s)
}

// Sentinal error patterns.
const (
	UnknownFormat       = "imagewriter: unknown format (%s)"
	UnsupportedChannels = "imagewriter: unsupported number of channels (%d)"
	WriteError          = "imagewriter: %v"
)

// Writer implements the sink interface of the display capture.
type Writer struct {
	env *environment.Environment

	dir    string
	prefix string
	format Format

	// list of files written
	Files []string
}

// NewWriter is the preferred method of initialisation for the Writer type.
// The directory is created if it does not already exist.
func NewWriter(env *environment.Environment, dir string, prefix string, format Format) (*Writer, error) {
	if dir == "" {
		dir = "."
	}
	if prefix == "" {
		prefix = "frame"
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, curated.Errorf(WriteError, err)
	}

	return &Writer{
		env:    env,
		dir:    dir,
		prefix: prefix,
		format: format,
	}, nil
}

// Filename returns the filename that will be used for the frame index.
func (w *Writer) Filename(index int) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s%02d.%s", w.prefix, index, w.format.Extension()))
}

// Frame writes the frame to a new file, replacing any existing file with the
// same name.
func (w *Writer) Frame(pix []byte, width, height, channels int, index int) error {
	img, err := Image(pix, width, height, channels)
	if err != nil {
		return err
	}

	fn := w.Filename(index)

	f, err := os.Create(fn)
	if err != nil {
		return curated.Errorf(WriteError, err)
	}
	defer f.Close()

	switch w.format {
	case PNG:
		err = png.Encode(f, img)
	default:
		err = bmp.Encode(f, img)
	}
	if err != nil {
		return curated.Errorf(WriteError, err)
	}

	w.Files = append(w.Files, fn)
	logger.Logf(w.env, logTag, "saved %s", fn)

	return nil
}

// Image converts row-major pixel data to an image. One channel is a grey
// scale image. Three channels are RGB and four channels are RGBA.
func Image(pix []byte, width, height, channels int) (image.Image, error) {
	r := image.Rect(0, 0, width, height)

	switch channels {
	case 1:
		img := image.NewGray(r)
		copy(img.Pix, pix)
		return img, nil
	case 3:
		img := image.NewNRGBA(r)
		for i, j := 0, 0; i+2 < len(pix) && j+3 < len(img.Pix); i, j = i+3, j+4 {
			img.Pix[j] = pix[i]
			img.Pix[j+1] = pix[i+1]
			img.Pix[j+2] = pix[i+2]
			img.Pix[j+3] = 255
		}
		return img, nil
	case 4:
		img := image.NewNRGBA(r)
		copy(img.Pix, pix)
		return img, nil
	}

	return nil, curated.Errorf(UnsupportedChannels, channels)
}
