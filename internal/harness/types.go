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

package harness

import "github.com/lassandro/tec/internal/printer"

// Reg names the five values a stimulus script can read or write through
// REG=... and $PRINT REG forms; PC can be set and printed like the
// others, while during a run only the CPU itself advances it.
type Reg uint8

const (
	RegG0 Reg = iota
	RegG1
	RegG2
	RegSP
	RegPC
)

func StrToReg(s string) (Reg, bool) {
	switch s {
	case "G0":
		return RegG0, true
	case "G1":
		return RegG1, true
	case "G2":
		return RegG2, true
	case "SP":
		return RegSP, true
	case "PC":
		return RegPC, true
	default:
		return 0, false
	}
}

// Flg names the three condition flags a stimulus script can read or set.
type Flg uint8

const (
	FlgC Flg = iota
	FlgS
	FlgZ
)

func StrToFlg(s string) (Flg, bool) {
	switch s {
	case "C":
		return FlgC, true
	case "S":
		return FlgS, true
	case "Z":
		return FlgZ, true
	default:
		return 0, false
	}
}

// EventType enumerates every stimulus-script command.
type EventType uint8

const (
	EvSetReg EventType = iota
	EvSetFlg
	EvSetMM
	EvSetDataSW
	EvRun
	EvStop
	EvReset
	EvSerial
	EvWaitStates
	EvWaitSerial
	EvWaitStop
	EvWrite
	EvPrintReg
	EvPrintFlg
	EvPrintMM
	EvPrintBuz
	EvPrintSpk
	EvPrintRun
	EvSetSerialMode
	EvSetPrintMode
	EvAnalog
	EvParallelWrite
	EvPrintParallel
	EvPrintExtParallel
)

// Event is one parsed stimulus-script command. Only the fields relevant
// to Type are populated; a flat tagged struct reads more plainly at the
// dispatch site than a small interface implemented by two dozen
// single-field types would.
type Event struct {
	Type EventType

	Reg  Reg
	Flg  Flg
	Mode printer.Mode

	Addr   byte
	Value  byte
	Values []byte

	Pin byte

	States uint64
}
