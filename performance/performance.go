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

// Package performance measures how fast the chip can be ticked on the host
// machine, optionally capturing CPU and memory profiles while it runs.
package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/hearth-emu/hearth/curated"
	"github.com/hearth-emu/hearth/hardware"
	"github.com/hearth-emu/hearth/hardware/control"
)

// sentinal errors returned by the performance package.
const (
	MeasurementError = "performance: %v"
)

// sentinal error used to stop the measurement loop.
const timedOut = "performance: timed out"

// checking the timer channel on every tick is expensive so we only look at
// it every performanceBrake ticks.
const performanceBrake = 1024

// Check measures the raw sweep rate of the named chip model. The chip runs
// flat out in RUN mode for the given duration, after a short leadtime to
// let the host settle, and the result is written to output.
func Check(output io.Writer, profile Profile, modelID string, duration string) error {
	mod, ok := hardware.GetModel(modelID)
	if !ok {
		return curated.Errorf(MeasurementError, fmt.Sprintf("unrecognised model (%s)", modelID))
	}

	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf(MeasurementError, err)
	}

	ch := hardware.NewChip(mod)
	run := ch.Codec.Pack(control.Run, 0)

	var ticks int64
	var startTicks int64

	runner := func() error {
		// the timer channel signals false at the end of the leadtime and
		// true at the end of the measurement period
		timerChan := make(chan bool)

		go func() {
			time.AfterFunc(2*time.Second, func() {
				timerChan <- false
				time.AfterFunc(dur, func() {
					timerChan <- true
				})
			})
		}()

		brake := 0
		for {
			ch.Step(run, 0)
			ticks++

			brake++
			if brake >= performanceBrake {
				brake = 0
				select {
				case v := <-timerChan:
					if v {
						return curated.Errorf(timedOut)
					}
					startTicks = ticks
				default:
				}
			}
		}
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil && !curated.Is(err, timedOut) {
		return curated.Errorf(MeasurementError, err)
	}

	numTicks := ticks - startTicks
	sweeps := float64(numTicks) / float64(mod.NumCells())
	rate := sweeps / dur.Seconds()

	output.Write([]byte(fmt.Sprintf("%s: %.2f sweeps/sec (%d ticks in %.2f seconds)\n",
		mod.ID, rate, numTicks, dur.Seconds())))

	return nil
}
