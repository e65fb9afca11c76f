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

package regression

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hearth-emu/hearth/curated"
	"github.com/hearth-emu/hearth/database"
	"github.com/hearth-emu/hearth/digest"
	"github.com/hearth-emu/hearth/hardware"
	"github.com/hearth-emu/hearth/hardware/boundary"
	"github.com/hearth-emu/hearth/hardware/control"
	"github.com/hearth-emu/hearth/pattern"
)

const sweepEntryID = "sweep"

const (
	sweepFieldModel int = iota
	sweepFieldPattern
	sweepFieldSweeps
	sweepFieldAlpha
	sweepFieldBoundary
	sweepFieldBTemp
	sweepFieldDigest
	numSweepFields
)

// SweepRegression runs a chip model for a number of sweeps and compares the
// digest of the resulting temperature field with the recorded digest.
type SweepRegression struct {
	Model   string
	Pattern string
	Sweeps  int

	// configuration overrides. a negative Alpha or BTemp, or an empty
	// Boundary, leaves the power-on value in place
	Alpha    int
	Boundary string
	BTemp    int

	Digest string
}

// NewSweepRegression is a convenience function for creating a new entry with
// no configuration overrides.
func NewSweepRegression(model string, patternFile string, sweeps int) *SweepRegression {
	return &SweepRegression{
		Model:   model,
		Pattern: patternFile,
		Sweeps:  sweeps,
		Alpha:   -1,
		BTemp:   -1,
	}
}

func deserialiseSweepEntry(fields []string) (database.Entry, error) {
	if len(fields) != numSweepFields {
		return nil, curated.Errorf(RegressionError, "wrong number of fields in sweep entry")
	}

	reg := &SweepRegression{
		Model:    fields[sweepFieldModel],
		Pattern:  fields[sweepFieldPattern],
		Boundary: fields[sweepFieldBoundary],
		Digest:   fields[sweepFieldDigest],
	}

	var err error

	reg.Sweeps, err = strconv.Atoi(fields[sweepFieldSweeps])
	if err != nil {
		return nil, curated.Errorf(RegressionError, "invalid sweeps field in sweep entry")
	}

	reg.Alpha, err = strconv.Atoi(fields[sweepFieldAlpha])
	if err != nil {
		return nil, curated.Errorf(RegressionError, "invalid alpha field in sweep entry")
	}

	reg.BTemp, err = strconv.Atoi(fields[sweepFieldBTemp])
	if err != nil {
		return nil, curated.Errorf(RegressionError, "invalid btemp field in sweep entry")
	}

	return reg, nil
}

// ID implements the database.Entry interface.
func (reg SweepRegression) ID() string {
	return sweepEntryID
}

// String implements the database.Entry interface.
func (reg SweepRegression) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("[%s] %s sweeps=%d", reg.ID(), reg.Model, reg.Sweeps))
	if reg.Pattern != "" {
		s.WriteString(fmt.Sprintf(" pattern=%s", reg.Pattern))
	}
	if reg.Alpha >= 0 {
		s.WriteString(fmt.Sprintf(" alpha=%d", reg.Alpha))
	}
	if reg.Boundary != "" {
		s.WriteString(fmt.Sprintf(" boundary=%s", reg.Boundary))
	}
	if reg.BTemp >= 0 {
		s.WriteString(fmt.Sprintf(" btemp=%d", reg.BTemp))
	}
	return s.String()
}

// Serialise implements the database.Entry interface.
func (reg SweepRegression) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
		reg.Model,
		reg.Pattern,
		strconv.Itoa(reg.Sweeps),
		strconv.Itoa(reg.Alpha),
		reg.Boundary,
		strconv.Itoa(reg.BTemp),
		reg.Digest,
	}, nil
}

// CleanUp implements the database.Entry interface.
func (reg SweepRegression) CleanUp() error {
	return nil
}

// regress implements the Regressor interface.
func (reg *SweepRegression) regress(newRegression bool, output io.Writer, message string) (bool, error) {
	output.Write([]byte(message))

	mod, ok := hardware.GetModel(reg.Model)
	if !ok {
		return false, curated.Errorf(RegressionError, fmt.Sprintf("unrecognised model (%s)", reg.Model))
	}

	ch := hardware.NewChip(mod)

	if reg.Alpha >= 0 {
		ch.Step(ch.Codec.Pack(control.Configure, control.CfgAlpha), uint8(reg.Alpha))
	}

	if reg.Boundary != "" {
		p, ok := boundary.ParsePolicy(reg.Boundary)
		if !ok {
			return false, curated.Errorf(RegressionError, fmt.Sprintf("unrecognised boundary policy (%s)", reg.Boundary))
		}
		ch.Step(ch.Codec.Pack(control.Configure, control.CfgBoundaryType), uint8(p))
	}

	if reg.BTemp >= 0 {
		ch.Step(ch.Codec.Pack(control.Configure, control.CfgBoundaryTemp), uint8(reg.BTemp))
	}

	if reg.Pattern != "" {
		pat, err := pattern.Load(reg.Pattern)
		if err != nil {
			return false, err
		}
		if err := pat.Poke(ch); err != nil {
			return false, err
		}
	}

	dig := digest.NewGrid(mod.Width, mod.Height)
	ch.AttachRenderer(dig)

	if err := ch.Run(reg.Sweeps, nil); err != nil {
		return false, err
	}

	if err := ch.EndRendering(); err != nil {
		return false, err
	}

	if newRegression {
		reg.Digest = dig.Hash()
		return true, nil
	}

	return reg.Digest == dig.Hash(), nil
}
