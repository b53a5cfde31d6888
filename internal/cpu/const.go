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

package cpu

const (
	opNO    = 0x0
	opLD    = 0x1
	opST    = 0x2
	opADD   = 0x3
	opSUB   = 0x4
	opCMP   = 0x5
	opAND   = 0x6
	opOR    = 0x7
	opXOR   = 0x8
	opSHIFT = 0x9
	opJcc   = 0xA
	opJnn   = 0xB
	opIO    = 0xC
	opStack = 0xD
	opFlow  = 0xE
	opHALT  = 0xF
)

const (
	xrDirect    = 0x0
	xrG1Indexed = 0x1
	xrG2Indexed = 0x2
	xrImmediate = 0x3
)

// ROMStart is the first ROM-resident address; writes at or above it are
// silently dropped.
const ROMStart = 0xE0

// Interrupt vector table, one vector byte per source.
const (
	VecTimer   = 0xDC
	VecRX      = 0xDD
	VecTX      = 0xDE
	VecConsole = 0xDF
)

// IPL is the fixed boot/interrupt-handler firmware preloaded into
// [0xE0, 0x100).
var IPL = [32]byte{
	0x1F, 0xDC, 0xB0, 0xF6, 0xD0, 0xD6, 0xB0, 0xF6,
	0xD0, 0xDA, 0xA4, 0xFF, 0xB0, 0xF6, 0x21, 0x00,
	0x37, 0x01, 0x4B, 0x01, 0xA0, 0xEA, 0xC0, 0x03,
	0x63, 0x40, 0xA4, 0xF6, 0xC0, 0x02, 0xEC, 0xFF,
}

// I/O port map. IN and OUT occupy separate address spaces.
const (
	PortDataSwitch0 = 0x0
	PortDataSwitch1 = 0x1
	PortSIORxData   = 0x2
	PortSIOStatus   = 0x3
	PortTimerCount  = 0x4
	PortTimerStatus = 0x5
	PortParallelIn  = 0x7
	PortADC0        = 0x8
	PortADC1        = 0x9
	PortADC2        = 0xA
	PortADC3        = 0xB
)

const (
	PortBuzzer       = 0x0
	PortSpeaker      = 0x1
	PortSIOTxData    = 0x2
	PortSIOControl   = 0x3
	PortTimerPeriod  = 0x4
	PortTimerControl = 0x5
	PortConsoleCtrl  = 0x6
	PortParallelOut  = 0x7
	PortPIOControl   = 0xC
)

// Virtual clock constants.
const (
	StatesPerSec     = 2457600
	SIOBitPerSec     = 9600
	SerialUnitStates = StatesPerSec / (SIOBitPerSec * 8) // 32
	TimerDivisor     = StatesPerSec / 75                 // 32768
)
