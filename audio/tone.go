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

// Package audio generates the entertainment tone of the display variants of
// the chip family. The generator consumes only the sweep beat (the
// iteration counter and the running flag) through the hardware.SweepMixer
// interface. It has no access to the grid and never affects the simulation.
//
// Samples are handed to a SampleSink. The wavwriter package provides a sink
// that encodes to a WAV file.
package audio

// SampleFreq is the sample frequency of the generated audio.
const SampleFreq = 22050

// SampleSink implementations receive generated audio samples. Samples are
// unsigned 8 bit, centred on 128.
type SampleSink interface {
	AppendSamples(samples []int)

	// EndMixing is called when no more samples will be appended
	EndMixing() error
}

// ToneGenerator is an implementation of the hardware.SweepMixer interface.
// Each completed sweep produces a short square-wave blip whose pitch rises
// with the iteration counter, so a converging simulation can literally be
// heard ticking over.
type ToneGenerator struct {
	sink SampleSink

	// length of one blip in samples
	blipLen int
}

// blip duration of 10ms at the generator's sample frequency
const blipLen = SampleFreq / 100

// NewToneGenerator is the preferred method of initialisation for the
// ToneGenerator type.
func NewToneGenerator(sink SampleSink) *ToneGenerator {
	return &ToneGenerator{
		sink:    sink,
		blipLen: blipLen,
	}
}

// SetSweep implements the hardware.SweepMixer interface.
func (tg *ToneGenerator) SetSweep(iteration uint8, running bool) error {
	if !running {
		return nil
	}

	// pitch rises with the iteration count. one octave over the full
	// counter range
	freq := 220 + int(iteration)*220/256

	// square wave. the half-period in samples
	half := SampleFreq / (2 * freq)
	if half < 1 {
		half = 1
	}

	samples := make([]int, tg.blipLen)
	for i := range samples {
		if (i/half)%2 == 0 {
			samples[i] = 192
		} else {
			samples[i] = 64
		}
	}
	tg.sink.AppendSamples(samples)

	return nil
}

// EndMixing implements the hardware.SweepMixer interface.
func (tg *ToneGenerator) EndMixing() error {
	return tg.sink.EndMixing()
}
