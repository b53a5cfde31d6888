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

import (
	"fmt"
	"strings"

	"github.com/lassandro/tec/internal/cpu"
	"github.com/lassandro/tec/internal/printer"
)

// Harness owns the machine, the printer, and the pending serial-input
// queue, and plays a parsed event list against them. Ownership is a
// strict tree: harness owns CPU owns memory+peripherals.
type Harness struct {
	CPU     *cpu.CPU
	Printer *printer.Printer

	serialIn []byte

	// OnStep, when set, is called after every scheduler quantum with
	// the machine state. The debug REPL in cmd/tec does not use it; it
	// steps the CPU directly.
	OnStep func(c *cpu.CPU)
}

func New(c *cpu.CPU, p *printer.Printer) *Harness {
	return &Harness{CPU: c, Printer: p}
}

// Run plays every event in order. The first failure stops the run and
// is returned; a decode error inside a wait loop surfaces as a
// RuntimeError carrying the register/stack snapshot.
func (h *Harness) Run(events []Event) error {
	for _, ev := range events {
		if err := h.dispatch(ev); err != nil {
			return err
		}
	}
	h.Printer.Flush()
	return nil
}

func (h *Harness) dispatch(ev Event) error {
	c := h.CPU

	switch ev.Type {
	case EvSetReg:
		h.setReg(ev.Reg, ev.Value)
	case EvSetFlg:
		h.setFlg(ev.Flg, ev.Value != 0)
	case EvSetMM:
		c.SetMem(ev.Addr, ev.Value)
	case EvSetDataSW:
		c.IO.DataSwitch = ev.Value

	case EvRun:
		c.Run()
	case EvStop:
		c.Stop()
	case EvReset:
		c.SoftReset()

	case EvSerial:
		h.serialIn = append(h.serialIn, ev.Values...)

	case EvWrite:
		if !c.Running {
			return fmt.Errorf("$WRITE while the machine is not running")
		}
		c.RaiseConsole()

	case EvParallelWrite:
		c.WriteParallel(ev.Value)
	case EvAnalog:
		c.WriteAnalog(ev.Pin, ev.Value)

	case EvSetSerialMode:
		h.Printer.SetSerialMode(ev.Mode)
	case EvSetPrintMode:
		h.Printer.SetPrintMode(ev.Mode)

	case EvWaitStates:
		var states uint64
		for states < ev.States && c.Running {
			quantum := ev.States - states
			if quantum > cpu.SerialUnitStates {
				quantum = cpu.SerialUnitStates
			}
			states += c.Clock(quantum)
			if err := h.exchangeSerial(); err != nil {
				return err
			}
		}

	case EvWaitSerial:
		for c.Running && (c.IsSerialInFull() || len(h.serialIn) > 0 || !c.IO.SIO.TXEmpty) {
			c.Clock(cpu.SerialUnitStates)
			if err := h.exchangeSerial(); err != nil {
				return err
			}
		}

	case EvWaitStop:
		for c.Running {
			c.Clock(cpu.SerialUnitStates)
			if err := h.exchangeSerial(); err != nil {
				return err
			}
		}

	case EvPrintReg:
		h.Printer.Print(h.getReg(ev.Reg))
	case EvPrintFlg:
		h.Printer.Print(boolToByte(h.getFlg(ev.Flg)))
	case EvPrintMM:
		h.Printer.Print(c.Mem[ev.Addr])
	case EvPrintParallel:
		h.Printer.Print(c.IO.ParallelOut)
	case EvPrintExtParallel:
		h.Printer.Print(c.IO.ExtParallel.Value)
	case EvPrintBuz:
		h.Printer.Print(boolToByte(c.IO.Buzzer))
	case EvPrintSpk:
		h.Printer.Print(boolToByte(c.IO.Speaker))
	case EvPrintRun:
		h.Printer.Print(boolToByte(c.Running))
	}

	return nil
}

// exchangeSerial is the quantum-boundary peripheral service: drain one
// TX byte to the printer, deliver one queued RX byte if the register is
// free, and surface a CPU decode error as a fatal snapshot.
func (h *Harness) exchangeSerial() error {
	c := h.CPU

	if b, ok := c.TryReadSerialOut(); ok {
		h.Printer.Serial(b)
	}
	if len(h.serialIn) > 0 && c.TryWriteSerialIn(h.serialIn[0]) {
		h.serialIn = h.serialIn[1:]
	}
	if c.Err {
		return &RuntimeError{Snapshot: Snapshot(c)}
	}

	if h.OnStep != nil {
		h.OnStep(c)
	}
	return nil
}

func (h *Harness) setReg(r Reg, v byte) {
	if r == RegPC {
		h.CPU.PC = v
		return
	}
	h.CPU.Reg[r] = v
}

func (h *Harness) getReg(r Reg) byte {
	if r == RegPC {
		return h.CPU.PC
	}
	return h.CPU.Reg[r]
}

func (h *Harness) setFlg(f Flg, v bool) {
	switch f {
	case FlgC:
		h.CPU.C = v
	case FlgS:
		h.CPU.S = v
	case FlgZ:
		h.CPU.Z = v
	}
}

func (h *Harness) getFlg(f Flg) bool {
	switch f {
	case FlgC:
		return h.CPU.C
	case FlgS:
		return h.CPU.S
	default:
		return h.CPU.Z
	}
}

// Snapshot renders the register/stack dump printed when the machine
// decodes an invalid instruction: PC and the five bytes leading up to
// it, SP and the five bytes leading up to it, then registers and
// flags.
func Snapshot(c *cpu.CPU) string {
	var b strings.Builder

	pc := c.PC
	sp := c.Reg[3]

	fmt.Fprintf(&b, "PC: %03XH\n", pc)
	for i := byte(0); i < 5; i++ {
		addr := pc - (4 - i)
		fmt.Fprintf(&b, "[%03XH]: %03XH\n", addr, c.Mem[addr])
	}

	fmt.Fprintf(&b, "SP: %03XH\n", sp)
	for i := byte(0); i < 5; i++ {
		addr := sp - (4 - i)
		fmt.Fprintf(&b, "[%03XH]: %03XH\n", addr, c.Mem[addr])
	}

	fmt.Fprintf(&b, "G0: %03XH, G1: %03XH, G2: %03XH, SP: %03XH\n",
		c.Reg[0], c.Reg[1], c.Reg[2], c.Reg[3])
	fmt.Fprintf(&b, "C: %s, S: %s, Z: %s",
		flagChar(c.C), flagChar(c.S), flagChar(c.Z))

	return b.String()
}

func flagChar(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
