// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package asm_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lassandro/tec/internal/asm"
)

func TestMinimalProgram(t *testing.T) {
	// LD G0,#5 / HALT -> 13 05 FF
	src := "START LD G0,#5\n HALT\n"

	bin, ctx := asm.Assemble(strings.NewReader(src))
	require.Empty(t, ctx.Errors)
	require.NotNil(t, bin)

	require.Equal(t, byte(0x00), bin.Start)
	require.Equal(t, byte(0x03), bin.Size)
	require.Equal(t, []byte{0x13, 0x05, 0xFF}, bin.Image[0:3])

	require.Equal(t, byte(0), ctx.Labels["START"].Value)
}

func TestDuplicateLabel(t *testing.T) {
	src := "FOO NO\nFOO NO\n"

	bin, ctx := asm.Assemble(strings.NewReader(src))
	require.Nil(t, bin)
	require.NotEmpty(t, ctx.Errors)

	_, ok := ctx.Errors[0].(*asm.DuplicatedLabelError)
	require.True(t, ok)
}

func TestOrgBackwardsIsError(t *testing.T) {
	src := "ORG 10H\n NO\n ORG 5H\n NO\n"

	_, ctx := asm.Assemble(strings.NewReader(src))
	require.NotEmpty(t, ctx.Errors)

	_, ok := ctx.Errors[0].(*asm.InvalidOrgError)
	require.True(t, ok)
}

func TestRomWriteWarns(t *testing.T) {
	src := "ST G0,0E0H\n HALT\n"

	bin, ctx := asm.Assemble(strings.NewReader(src))
	require.NotNil(t, bin)
	require.Empty(t, ctx.Errors)
	require.NotEmpty(t, ctx.Warnings)
}

func TestDCStringRoundTrip(t *testing.T) {
	src := `MSG DC "AB"` + "\n"

	bin, ctx := asm.Assemble(strings.NewReader(src))
	require.Empty(t, ctx.Errors)
	require.NotNil(t, bin)

	require.Equal(t, []byte("AB"), bin.Image[bin.Start:int(bin.Start)+int(bin.Size)])
}

func TestEquAndOrgAdvanceAddress(t *testing.T) {
	src := "FIVE EQU 5\n ORG 10H\nSTART NO\n"

	_, ctx := asm.Assemble(strings.NewReader(src))
	require.Empty(t, ctx.Errors)
	require.Equal(t, byte(5), ctx.Labels["FIVE"].Value)
	require.Equal(t, byte(0x10), ctx.Labels["START"].Value)
}

func TestUnknownInstruction(t *testing.T) {
	src := " BOGUS G0,#1\n"

	_, ctx := asm.Assemble(strings.NewReader(src))
	require.NotEmpty(t, ctx.Errors)

	_, ok := ctx.Errors[0].(*asm.UnknownInstructionError)
	require.True(t, ok)
}

func TestImmediateIllegalForStore(t *testing.T) {
	src := "ST G0,#5\n"

	_, ctx := asm.Assemble(strings.NewReader(src))
	require.NotEmpty(t, ctx.Errors)

	found := false
	for _, err := range ctx.Errors {
		if _, ok := err.(*asm.InvalidImmediateError); ok {
			found = true
		}
	}
	require.True(t, found)
}

func TestSymTableRoundTrip(t *testing.T) {
	labels := map[string]asm.LabelEntry{
		"START": {Value: 0x0A, Line: 1},
		"LOOP":  {Value: 0xE0, Line: 2},
	}

	var buf strings.Builder
	require.NoError(t, asm.WriteSymTable(&buf, labels))

	values, errs := asm.ReadSymTable(strings.NewReader(buf.String()))
	require.Empty(t, errs)
	require.Equal(t, uint8(0x0A), values["START"])
	require.Equal(t, uint8(0xE0), values["LOOP"])
}

func TestExpressionPrecedence(t *testing.T) {
	src := "LD G0,#2+3*4\n LD G1,#(2+3)*4\n HALT\n"

	bin, ctx := asm.Assemble(strings.NewReader(src))
	require.Empty(t, ctx.Errors)
	require.NotNil(t, bin)

	require.Equal(t, byte(14), bin.Image[1])
	require.Equal(t, byte(20), bin.Image[3])
}

func TestLowercaseHexLiteral(t *testing.T) {
	src := "ld g0,#0ffh\n halt\n"

	bin, ctx := asm.Assemble(strings.NewReader(src))
	require.Empty(t, ctx.Errors)
	require.NotNil(t, bin)

	require.Equal(t, byte(0x13), bin.Image[0])
	require.Equal(t, byte(0xFF), bin.Image[1])
}

func TestValueOutOfRangeWarns(t *testing.T) {
	src := "LD G0,#300\n HALT\n"

	bin, ctx := asm.Assemble(strings.NewReader(src))
	require.NotNil(t, bin)
	require.Empty(t, ctx.Errors)
	require.NotEmpty(t, ctx.Warnings)

	// Truncated to the low byte, warned but written.
	require.Equal(t, byte(300&0xFF), bin.Image[1])
}

func TestBinaryOverrunsRomWarns(t *testing.T) {
	src := "ORG 0DEH\n DC 1,2,3,4\n"

	bin, ctx := asm.Assemble(strings.NewReader(src))
	require.NotNil(t, bin)
	require.Empty(t, ctx.Errors)

	found := false
	for _, w := range ctx.Warnings {
		if _, ok := w.(*asm.FileWarning); ok {
			found = true
		}
	}
	require.True(t, found)
}

func TestForwardLabelReference(t *testing.T) {
	src := " JMP DONE\n NO\nDONE HALT\n"

	bin, ctx := asm.Assemble(strings.NewReader(src))
	require.Empty(t, ctx.Errors)
	require.NotNil(t, bin)

	require.Equal(t, byte(0xA0), bin.Image[0])
	require.Equal(t, byte(0x03), bin.Image[1])
}

func TestIndexedAddressing(t *testing.T) {
	src := "LD G0,10H,G1\n"

	bin, ctx := asm.Assemble(strings.NewReader(src))
	require.Empty(t, ctx.Errors)
	require.NotNil(t, bin)

	// LD family base 0x1, GR=G0(00), XR=G1-indexed(01)
	require.Equal(t, byte(0x11), bin.Image[0])
	require.Equal(t, byte(0x10), bin.Image[1])
}
