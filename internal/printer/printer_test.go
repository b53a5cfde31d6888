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

package printer_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lassandro/tec/internal/printer"
)

func TestRawPassesBytesThrough(t *testing.T) {
	var buf bytes.Buffer
	p := printer.New(&buf)
	p.SetSerialMode(printer.Raw)

	p.Serial('A')
	p.Serial('B')
	p.Flush()

	require.Equal(t, "AB", buf.String())
}

func TestHexGroupsEightPerLine(t *testing.T) {
	var buf bytes.Buffer
	p := printer.New(&buf)
	p.SetPrintMode(printer.Hex)

	for i := 0; i < 9; i++ {
		p.Print(byte(i))
	}
	p.Flush()

	require.Equal(t, "00 01 02 03 04 05 06 07\n08\n", buf.String())
}

func TestTeCModeFormatsThreeHexDigits(t *testing.T) {
	var buf bytes.Buffer
	p := printer.New(&buf)
	p.SetPrintMode(printer.TeC)

	p.Print(0xA5)
	p.Flush()

	require.Equal(t, "0A5H\n", buf.String())
}

func TestSDECSignExtends(t *testing.T) {
	var buf bytes.Buffer
	p := printer.New(&buf)
	p.SetPrintMode(printer.SDEC)

	p.Print(0xFF)
	p.Flush()

	require.Equal(t, "-1\n", buf.String())
}

func TestUDECTreatsAsUnsigned(t *testing.T) {
	var buf bytes.Buffer
	p := printer.New(&buf)
	p.SetPrintMode(printer.UDEC)

	p.Print(0xFF)
	p.Flush()

	require.Equal(t, "255\n", buf.String())
}

func TestSwitchingCategoryFlushesTheOther(t *testing.T) {
	var buf bytes.Buffer
	p := printer.New(&buf)
	p.SetSerialMode(printer.Raw)
	p.SetPrintMode(printer.Raw)

	p.Serial('X')
	p.Print('Y')
	p.Serial('Z')
	p.Flush()

	require.Equal(t, "XYZ", buf.String())
}

func TestSwitchingModeFlushesOpenBufferInOldMode(t *testing.T) {
	var buf bytes.Buffer
	p := printer.New(&buf)
	p.SetSerialMode(printer.Raw)

	p.Serial('Q')
	p.SetSerialMode(printer.Hex)
	p.Serial(0x10)
	p.Flush()

	require.Equal(t, "Q10\n", buf.String())
}
