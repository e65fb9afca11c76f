// This file is part of Hearth.
//
// Hearth is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Hearth is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Hearth.  If not, see <https://www.gnu.org/licenses/>.

// Package sdldisplay is an SDL2 window onto the temperature field. Each grid
// cell occupies a square of screen pixels coloured on the heat ramp. The
// window is refreshed at the end of every sweep rather than on every cell
// commit. Refreshing per commit would mean one present per tick, which is
// both slow and visually meaningless.
//
// The window must be created and serviced from the main thread, a
// requirement inherited from SDL itself. The Service() function should be
// called regularly (once per sweep is fine) to handle window events.
package sdldisplay

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/hearth-emu/hearth/curated"
	"github.com/hearth-emu/hearth/display"
	"github.com/hearth-emu/hearth/version"
)

// IdealScale is the suggested screen size of one grid cell, in pixels.
const IdealScale = 16

// the maximum rate at which the window is repainted. sweeps can complete
// far faster than any monitor refresh
const framePeriod = 16 * time.Millisecond

// Display is an SDL2 implementation of the hardware.CellRenderer interface.
type Display struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	width  int
	height int

	// RGBA pixel data, one pixel per grid cell. the renderer scales it up
	// to the window size
	pixels []byte

	// the time of the last repaint, for limiting the repaint rate
	lastFrame time.Time

	// OnClose is called when the window close button is pressed. may be nil
	OnClose func()
}

// NewDisplay is the preferred method of initialisation for the Display
// type. The width and height arguments must match the chip model being
// displayed. scale is the screen size of one grid cell in pixels; values
// less than one select IdealScale.
func NewDisplay(width, height, scale int) (*Display, error) {
	var err error

	if scale < 1 {
		scale = IdealScale
	}

	scr := &Display{
		width:  width,
		height: height,
		pixels: make([]byte, width*height*4),
	}

	if err = sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, curated.Errorf("sdldisplay: %v", err)
	}

	scr.window, err = sdl.CreateWindow(version.ApplicationName,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(width*scale), int32(height*scale), sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, curated.Errorf("sdldisplay: %v", err)
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return nil, curated.Errorf("sdldisplay: %v", err)
	}

	scr.texture, err = scr.renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING,
		int32(width), int32(height))
	if err != nil {
		return nil, curated.Errorf("sdldisplay: %v", err)
	}

	// nearest neighbour scaling. the cells should look like cells, not a
	// blurry gradient
	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "nearest")

	scr.clear()
	_ = scr.repaint()

	return scr, nil
}

func (scr *Display) clear() {
	for i := 0; i < len(scr.pixels); i += 4 {
		scr.pixels[i] = 0
		scr.pixels[i+1] = 0
		scr.pixels[i+2] = 0
		scr.pixels[i+3] = 255
	}
}

func (scr *Display) repaint() error {
	if err := scr.texture.Update(nil, scr.pixels, scr.width*4); err != nil {
		return curated.Errorf("sdldisplay: %v", err)
	}
	if err := scr.renderer.Copy(scr.texture, nil, nil); err != nil {
		return curated.Errorf("sdldisplay: %v", err)
	}
	scr.renderer.Present()
	scr.lastFrame = time.Now()
	return nil
}

// Service window events. Must be called from the main thread at a regular
// interval.
func (scr *Display) Service() {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev.(type) {
		case *sdl.QuitEvent:
			if scr.OnClose != nil {
				scr.OnClose()
			}
		}
	}
}

// SetCell implements the hardware.CellRenderer interface.
func (scr *Display) SetCell(x, y int, v uint8, max uint8) error {
	i := (y*scr.width + x) * 4
	if i+3 >= len(scr.pixels) {
		return nil
	}

	r, g, b := display.Heat(v, max)
	scr.pixels[i] = r
	scr.pixels[i+1] = g
	scr.pixels[i+2] = b
	scr.pixels[i+3] = 255
	return nil
}

// NewSweep implements the hardware.CellRenderer interface. The window is
// repainted unless a repaint has happened within the last frame period.
func (scr *Display) NewSweep(iteration uint8) error {
	if time.Since(scr.lastFrame) < framePeriod {
		return nil
	}
	return scr.repaint()
}

// EndRendering implements the hardware.CellRenderer interface. The window
// and all SDL resources are destroyed.
func (scr *Display) EndRendering() error {
	_ = scr.texture.Destroy()
	_ = scr.renderer.Destroy()
	err := scr.window.Destroy()
	sdl.Quit()
	if err != nil {
		return curated.Errorf("sdldisplay: %v", err)
	}
	return nil
}
