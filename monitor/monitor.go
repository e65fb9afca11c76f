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

// Package monitor is an interactive console onto a running chip. every
// command that touches the grid goes through the memory-mapped protocol, one
// tick at a time, so what the console sees is exactly what an external
// controller would see.
package monitor

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/hearth-emu/hearth/curated"
	"github.com/hearth-emu/hearth/hardware"
	"github.com/hearth-emu/hearth/hardware/boundary"
	"github.com/hearth-emu/hearth/hardware/control"
	"github.com/hearth-emu/hearth/logger"
	"github.com/hearth-emu/hearth/monitor/easyterm"
)

// sentinal errors returned by the monitor package.
const (
	// a command could not be parsed or executed
	CommandError = "monitor: %v"

	// the user has asked to leave the monitor
	UserQuit = "monitor: user quit"
)

// Monitor is an interactive session attached to a chip.
type Monitor struct {
	ch   *hardware.Chip
	term easyterm.Terminal
	in   *bufio.Scanner
}

// NewMonitor attaches an interactive session to a chip. the session reads
// from and writes to the process's standard streams.
func NewMonitor(ch *hardware.Chip) (*Monitor, error) {
	mon := &Monitor{
		ch: ch,
		in: bufio.NewScanner(os.Stdin),
	}

	if err := mon.term.Initialise(os.Stdin, os.Stdout); err != nil {
		return nil, curated.Errorf(CommandError, err)
	}

	return mon, nil
}

// Run the monitor loop until the user quits or input runs dry.
func (mon *Monitor) Run() error {
	defer mon.term.CleanUp()

	mon.term.Print("%s model. type HELP for commands\n", mon.ch.Model.ID)

	for {
		mon.term.Print("(hearth) ")
		if !mon.in.Scan() {
			return nil
		}

		err := mon.parseCommand(mon.in.Text())
		if err != nil {
			if curated.Is(err, UserQuit) {
				return nil
			}
			mon.term.Print("%v\n", err)
		}
	}
}

func (mon *Monitor) parseCommand(input string) error {
	toks := strings.Fields(input)
	if len(toks) == 0 {
		return nil
	}

	cmd := strings.ToUpper(toks[0])
	args := toks[1:]

	switch cmd {
	case "HELP":
		mon.term.Print("%s", helpText)

	case "GRID":
		mon.term.Print("%s", mon.ch.Grid.String())

	case "REGS":
		mon.term.Print("%s\n", mon.ch.Regs.String())
		mon.term.Print("cursor=%d iteration=%d running=%v\n",
			mon.ch.Sched.Cursor, mon.ch.Sched.Iteration, mon.ch.Sched.Running)

	case "PEEK":
		return mon.peek(args)

	case "POKE":
		return mon.poke(args)

	case "CFG":
		return mon.configure(args)

	case "RUN":
		return mon.run(args)

	case "STEP":
		return mon.step()

	case "DUMP":
		return mon.dump(args)

	case "RESET":
		mon.ch.Reset()
		mon.term.Print("chip reset\n")

	case "QUIT", "EXIT":
		return curated.Errorf(UserQuit)

	default:
		return curated.Errorf(CommandError, fmt.Sprintf("unrecognised command (%s)", cmd))
	}

	return nil
}

// cellAddr converts "x y" or a bare "addr" argument into a cell index.
func (mon *Monitor) cellAddr(args []string) (uint16, error) {
	switch len(args) {
	case 1:
		addr, err := strconv.ParseUint(args[0], 0, 16)
		if err != nil {
			return 0, curated.Errorf(CommandError, err)
		}
		return uint16(addr), nil
	case 2:
		x, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, curated.Errorf(CommandError, err)
		}
		y, err := strconv.Atoi(args[1])
		if err != nil {
			return 0, curated.Errorf(CommandError, err)
		}
		return uint16(y*mon.ch.Model.Width + x), nil
	}
	return 0, curated.Errorf(CommandError, "expected a cell address or an x y pair")
}

func (mon *Monitor) peek(args []string) error {
	addr, err := mon.cellAddr(args)
	if err != nil {
		return err
	}

	// two READ ticks. the first latches the address, the second returns the
	// cell behind it
	w := mon.ch.Codec.Pack(control.Read, addr)
	_ = mon.ch.Step(w, 0)
	v := mon.ch.Step(w, 0)

	mon.term.Print("cell %d = %d\n", addr, v)
	return nil
}

func (mon *Monitor) poke(args []string) error {
	if len(args) < 2 {
		return curated.Errorf(CommandError, "expected a cell address and a value")
	}

	v, err := strconv.ParseUint(args[len(args)-1], 0, 8)
	if err != nil {
		return curated.Errorf(CommandError, err)
	}

	addr, err := mon.cellAddr(args[:len(args)-1])
	if err != nil {
		return err
	}

	got := mon.ch.Step(mon.ch.Codec.Pack(control.Write, addr), uint8(v))
	mon.term.Print("cell %d = %d\n", addr, got)
	return nil
}

func (mon *Monitor) configure(args []string) error {
	if len(args) == 0 {
		mon.term.Print("%s\n", mon.ch.Regs.String())
		return nil
	}

	var selector uint16
	switch strings.ToUpper(args[0]) {
	case "ALPHA":
		selector = control.CfgAlpha
	case "BTEMP":
		selector = control.CfgBoundaryTemp
	case "BTYPE":
		selector = control.CfgBoundaryType
	case "SRCADDR":
		selector = control.CfgSourceAddr
	case "SRCVAL":
		selector = control.CfgSourceValue
	case "SRCEN":
		selector = control.CfgSourceEnable
	case "CLEAR":
		mon.ch.Step(mon.ch.Codec.Pack(control.Configure, control.CfgClearIteration), 0)
		return nil
	default:
		return curated.Errorf(CommandError, fmt.Sprintf("unrecognised setting (%s)", args[0]))
	}

	if len(args) < 2 {
		return curated.Errorf(CommandError, "expected a value")
	}

	var data uint64
	var err error
	if selector == control.CfgBoundaryType {
		// boundary type accepts a name as well as a number
		if p, ok := boundary.ParsePolicy(args[1]); ok {
			data = uint64(p)
		} else {
			data, err = strconv.ParseUint(args[1], 0, 8)
		}
	} else {
		data, err = strconv.ParseUint(args[1], 0, 8)
	}
	if err != nil {
		return curated.Errorf(CommandError, err)
	}

	mon.ch.Step(mon.ch.Codec.Pack(control.Configure, selector), uint8(data))
	mon.term.Print("%s\n", mon.ch.Regs.String())
	return nil
}

func (mon *Monitor) run(args []string) error {
	sweeps := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return curated.Errorf(CommandError, err)
		}
		sweeps = n
	}

	if err := mon.ch.Run(sweeps, nil); err != nil {
		return err
	}

	mon.term.Print("iteration=%d\n", mon.ch.Sched.Iteration)
	return nil
}

// step drops into cbreak mode so individual ticks can be fired with single
// keypresses.
func (mon *Monitor) step() error {
	mon.term.CBreakMode()
	defer mon.term.CanonicalMode()

	mon.term.Print("space=tick  s=sweep  g=grid  q=done\n")

	w := mon.ch.Codec.Pack(control.Run, 0)
	for {
		k, err := mon.term.ReadKey()
		if err != nil {
			return curated.Errorf(CommandError, err)
		}

		switch k {
		case ' ':
			status := mon.ch.Step(w, 0)
			mon.term.Print("cursor=%d status=%#02x\n", mon.ch.Sched.Cursor, status)
		case 's':
			start := mon.ch.Sched.Iteration
			for mon.ch.Sched.Iteration == start {
				mon.ch.Step(w, 0)
			}
			mon.term.Print("iteration=%d\n", mon.ch.Sched.Iteration)
		case 'g':
			mon.term.Print("%s", mon.ch.Grid.String())
		case 'q':
			return nil
		}
	}
}

// dump writes a graphviz rendering of the chip's internal state to a file.
func (mon *Monitor) dump(args []string) error {
	fn := "hearth_state.dot"
	if len(args) > 0 {
		fn = args[0]
	}

	f, err := os.Create(fn)
	if err != nil {
		return curated.Errorf(CommandError, err)
	}
	defer f.Close()

	memviz.Map(f, mon.ch)
	logger.Logf("monitor", "state graph written to %s", fn)
	mon.term.Print("state graph written to %s\n", fn)
	return nil
}

const helpText = `GRID            print the temperature field
REGS            print configuration registers and scheduler state
PEEK addr|x y   read a cell through the protocol
POKE addr|x y v write a cell through the protocol
CFG             print configuration registers
CFG name v      set a register (ALPHA BTEMP BTYPE SRCADDR SRCVAL SRCEN CLEAR)
RUN [n]         run n sweeps (default 1)
STEP            single-tick mode (space=tick s=sweep g=grid q=done)
DUMP [file]     write a graphviz graph of the chip state
RESET           reset the chip
QUIT            leave the monitor
`
