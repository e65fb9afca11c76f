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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/hearth-emu/hearth/audio"
	"github.com/hearth-emu/hearth/curated"
	"github.com/hearth-emu/hearth/digest"
	"github.com/hearth-emu/hearth/display/sdldisplay"
	"github.com/hearth-emu/hearth/hardware"
	"github.com/hearth-emu/hearth/hardware/boundary"
	"github.com/hearth-emu/hearth/hardware/control"
	"github.com/hearth-emu/hearth/logger"
	"github.com/hearth-emu/hearth/modalflag"
	"github.com/hearth-emu/hearth/monitor"
	"github.com/hearth-emu/hearth/pattern"
	"github.com/hearth-emu/hearth/performance"
	"github.com/hearth-emu/hearth/regression"
	"github.com/hearth-emu/hearth/statsview"
	"github.com/hearth-emu/hearth/version"
	"github.com/hearth-emu/hearth/wavwriter"
)

// sentinal error used to stop a run when an interrupt signal arrives.
const interrupted = "interrupted"

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "PLAY", "MONITOR", "PERFORMANCE", "REGRESS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "PLAY":
		err = play(md)
	case "MONITOR":
		err = monitorMode(md)
	case "PERFORMANCE":
		err = perform(md)
	case "REGRESS":
		err = regress(md)
	case "VERSION":
		vers, revision := version.Version()
		fmt.Printf("%s %s (%s)\n", version.ApplicationName, vers, revision)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

// prepareChip builds a chip from flag values common to the RUN and PLAY and
// MONITOR modes. configuration values go in through the CONFIGURE protocol,
// the pattern (if there is one) through the WRITE protocol.
func prepareChip(modelID string, alpha int, btype string, btemp int, patternFile string) (*hardware.Chip, error) {
	mod, ok := hardware.GetModel(modelID)
	if !ok {
		return nil, fmt.Errorf("unrecognised model (%s). available models: %s", modelID, hardware.ModelList)
	}

	ch := hardware.NewChip(mod)

	if alpha >= 0 {
		ch.Step(ch.Codec.Pack(control.Configure, control.CfgAlpha), uint8(alpha))
	}

	if btype != "" {
		p, ok := boundary.ParsePolicy(btype)
		if !ok {
			return nil, fmt.Errorf("unrecognised boundary policy (%s)", btype)
		}
		ch.Step(ch.Codec.Pack(control.Configure, control.CfgBoundaryType), uint8(p))
	}

	if btemp >= 0 {
		ch.Step(ch.Codec.Pack(control.Configure, control.CfgBoundaryTemp), uint8(btemp))
	}

	if patternFile != "" {
		pat, err := pattern.Load(patternFile)
		if err != nil {
			return nil, err
		}
		if err := pat.Poke(ch); err != nil {
			return nil, err
		}
	}

	return ch, nil
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	model := md.AddString("model", "HS6", "chip model to run")
	sweeps := md.AddInt("sweeps", 100, "number of complete sweeps to run")
	alpha := md.AddInt("alpha", -1, "diffusion coefficient (default per model)")
	btype := md.AddString("boundary", "", "boundary policy: dirichlet, neumann, periodic")
	btemp := md.AddInt("btemp", -1, "boundary temperature (dirichlet only)")
	wav := md.AddString("wav", "", "record sweep audio to wav file")
	hash := md.AddBool("hash", false, "print a digest of the field after every run")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	stats := md.AddBool("stats", false, "launch statistics server (requires statsview build)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	logger.SetEcho(*log)

	if *stats {
		if statsview.Available() {
			statsview.Launch(os.Stdout)
		} else {
			fmt.Println("* stats server not available. rebuild with statsview build tag")
		}
	}

	var patternFile string
	switch len(md.RemainingArgs()) {
	case 0:
		// an unseeded field is legitimate when there is a heat source or a
		// warm boundary
	case 1:
		patternFile = md.GetArg(0)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	ch, err := prepareChip(*model, *alpha, *btype, *btemp, patternFile)
	if err != nil {
		return err
	}

	var dig *digest.Grid
	if *hash {
		dig = digest.NewGrid(ch.Model.Width, ch.Model.Height)
		ch.AttachRenderer(dig)
	}

	if *wav != "" {
		ch.AttachMixer(audio.NewToneGenerator(wavwriter.NewWavWriter(*wav)))
	}

	// stop the run cleanly on ctrl-c
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	err = ch.Run(*sweeps, func() error {
		select {
		case <-intChan:
			return curated.Errorf(interrupted)
		default:
		}
		return nil
	})
	if err != nil && !curated.Is(err, interrupted) {
		return err
	}

	fmt.Print(ch.Grid.String())
	fmt.Printf("iteration=%d\n", ch.Sched.Iteration)
	if dig != nil {
		fmt.Printf("hash=%s\n", dig.Hash())
	}

	return ch.EndRendering()
}

func play(md *modalflag.Modes) error {
	md.NewMode()

	model := md.AddString("model", "HS6", "chip model to run")
	scale := md.AddInt("scale", 32, "pixels per cell")
	hz := md.AddDuration("sweep", 50*time.Millisecond, "time per sweep")
	alpha := md.AddInt("alpha", -1, "diffusion coefficient (default per model)")
	btype := md.AddString("boundary", "", "boundary policy: dirichlet, neumann, periodic")
	btemp := md.AddInt("btemp", -1, "boundary temperature (dirichlet only)")
	wav := md.AddString("wav", "", "record sweep audio to wav file")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	logger.SetEcho(*log)

	var patternFile string
	if len(md.RemainingArgs()) > 0 {
		patternFile = md.GetArg(0)
	}

	ch, err := prepareChip(*model, *alpha, *btype, *btemp, patternFile)
	if err != nil {
		return err
	}

	scr, err := sdldisplay.NewDisplay(ch.Model.Width, ch.Model.Height, *scale)
	if err != nil {
		return err
	}
	ch.AttachRenderer(scr)

	if *wav != "" {
		ch.AttachMixer(audio.NewToneGenerator(wavwriter.NewWavWriter(*wav)))
	}

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	done := false
	scr.OnClose = func() {
		done = true
	}

	// SDL event handling must happen on the main goroutine so the loop below
	// interleaves sweeps with display servicing
	tick := time.NewTicker(*hz)
	defer tick.Stop()

	for !done {
		if err := ch.Run(1, nil); err != nil {
			return err
		}
		scr.Service()

		select {
		case <-intChan:
			done = true
		case <-tick.C:
		}
	}

	return ch.EndRendering()
}

func monitorMode(md *modalflag.Modes) error {
	md.NewMode()

	model := md.AddString("model", "HS6", "chip model to run")
	alpha := md.AddInt("alpha", -1, "diffusion coefficient (default per model)")
	btype := md.AddString("boundary", "", "boundary policy: dirichlet, neumann, periodic")
	btemp := md.AddInt("btemp", -1, "boundary temperature (dirichlet only)")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	logger.SetEcho(*log)

	var patternFile string
	if len(md.RemainingArgs()) > 0 {
		patternFile = md.GetArg(0)
	}

	ch, err := prepareChip(*model, *alpha, *btype, *btemp, patternFile)
	if err != nil {
		return err
	}

	mon, err := monitor.NewMonitor(ch)
	if err != nil {
		return err
	}

	return mon.Run()
}

func regress(md *modalflag.Modes) error {
	md.NewMode()
	md.AddSubModes("RUN", "LIST", "DELETE", "ADD")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch md.Mode() {
	case "RUN":
		md.NewMode()

		verbose := md.AddBool("verbose", false, "print any test errors")
		failOnError := md.AddBool("fail", false, "stop on the first error")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		return regression.RegressRunTests(os.Stdout, *verbose, *failOnError, md.RemainingArgs())

	case "LIST":
		md.NewMode()

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		return regression.RegressList(os.Stdout)

	case "DELETE":
		md.NewMode()

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		switch len(md.RemainingArgs()) {
		case 0:
			return fmt.Errorf("database key required for %s mode", md)
		case 1:
			return regression.RegressDelete(os.Stdout, os.Stdin, md.GetArg(0))
		default:
			return fmt.Errorf("only one entry can be deleted at a time in %s mode", md)
		}

	case "ADD":
		md.NewMode()

		model := md.AddString("model", "HS6", "chip model to run")
		sweeps := md.AddInt("sweeps", 100, "number of complete sweeps to run")
		alpha := md.AddInt("alpha", -1, "diffusion coefficient (default per model)")
		btype := md.AddString("boundary", "", "boundary policy: dirichlet, neumann, periodic")
		btemp := md.AddInt("btemp", -1, "boundary temperature (dirichlet only)")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		var patternFile string
		if len(md.RemainingArgs()) > 0 {
			patternFile = md.GetArg(0)
		}

		reg := regression.NewSweepRegression(*model, patternFile, *sweeps)
		reg.Alpha = *alpha
		reg.Boundary = *btype
		reg.BTemp = *btemp

		return regression.RegressAdd(os.Stdout, reg)
	}

	return nil
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	model := md.AddString("model", "HS6", "chip model to run")
	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	profile := md.AddString("profile", "none", "profile measurement: cpu, mem, both, none")
	stats := md.AddBool("stats", false, "launch statistics server (requires statsview build)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(os.Stdout)
		} else {
			fmt.Println("* stats server not available. rebuild with statsview build tag")
		}
	}

	prof, ok := performance.ParseProfile(*profile)
	if !ok {
		return fmt.Errorf("unrecognised profile type (%s)", *profile)
	}

	return performance.Check(os.Stdout, prof, *model, *duration)
}
