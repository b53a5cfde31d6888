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

package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/lassandro/tec/internal/cpu"
	"github.com/lassandro/tec/internal/harness"
)

var lastcmd []string
var breakpoints []byte

// debugAddr decodes a REPL address argument: a label from the loaded
// symbol table, or a numeric literal ("2AH" hex, "42" decimal).
func debugAddr(arg string, labels map[string]uint8) (byte, error) {
	name := strings.ToUpper(arg)

	if v, ok := labels[name]; ok {
		return v, nil
	}

	if strings.HasSuffix(name, "H") {
		v, err := strconv.ParseUint(name[:len(name)-1], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid address '%s'", arg)
		}
		return byte(v), nil
	}

	v, err := strconv.ParseUint(name, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid address '%s'", arg)
	}
	return byte(v), nil
}

func debugRegs(machine *cpu.CPU) {
	fmt.Printf(
		"G0: %03XH, G1: %03XH, G2: %03XH, SP: %03XH\n",
		machine.Reg[0], machine.Reg[1], machine.Reg[2], machine.Reg[3],
	)
	fmt.Printf(
		"PC: %03XH, C: %d, S: %d, Z: %d, IE: %d, RUN: %d\n",
		machine.PC,
		bit(machine.C), bit(machine.S), bit(machine.Z),
		bit(machine.IE), bit(machine.Running),
	)
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}

func debugMemory(machine *cpu.CPU, args []string, labels map[string]uint8) {
	const usage = "mem [addr] [count]"

	if len(args) < 1 || len(args) > 2 {
		log.Println(usage)
		return
	}

	addr, err := debugAddr(args[0], labels)

	if err != nil {
		log.Println(err)
		return
	}

	count := 8
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			log.Println(usage)
			return
		}
		count = n
	}

	for i := 0; i < count; i++ {
		a := addr + byte(i)
		fmt.Printf("[%03XH]: %03XH\n", a, machine.Mem[a])
		if a == 0xFF {
			break
		}
	}
}

func debugStep(machine *cpu.CPU, args []string) {
	count := 1
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			log.Println("step [count]")
			return
		}
		count = n
	}

	machine.Running = true
	for i := 0; i < count && machine.Running; i++ {
		machine.Step()
		drainSerial(machine)
	}

	if machine.Err {
		fmt.Println(harness.Snapshot(machine))
		return
	}

	debugRegs(machine)
}

// debugContinue runs until a breakpoint, a halt, or a machine error.
func debugContinue(machine *cpu.CPU) {
	machine.Running = true

	for machine.Running {
		machine.Step()
		drainSerial(machine)

		for _, bp := range breakpoints {
			if machine.PC == bp {
				fmt.Printf("Breakpoint hit [%03XH]\n", bp)
				debugRegs(machine)
				return
			}
		}
	}

	if machine.Err {
		fmt.Println(harness.Snapshot(machine))
		return
	}

	fmt.Println("Machine halted")
}

// drainSerial echoes any transmitted byte so serial output stays visible
// while stepping.
func drainSerial(machine *cpu.CPU) {
	if b, ok := machine.TryReadSerialOut(); ok {
		os.Stdout.Write([]byte{b})
	}
}

func debugBreak(args []string, labels map[string]uint8) {
	const usage = "break [addr]"

	if len(args) != 1 {
		for i, bp := range breakpoints {
			fmt.Printf("#%d: %03XH\n", i, bp)
		}
		return
	}

	addr, err := debugAddr(args[0], labels)

	if err != nil {
		log.Println(err)
		return
	}

	for _, bp := range breakpoints {
		if bp == addr {
			return
		}
	}

	breakpoints = append(breakpoints, addr)
	fmt.Printf("Breakpoint added [%03XH]\n", addr)
}

func debugREPL(machine *cpu.CPU, labels map[string]uint8) {
	exitRawTerm()
	defer enterRawTerm()

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("\033[1;30m(dbg)\033[0m ")

		if !scanner.Scan() {
			fmt.Println()
			return
		}

		args := strings.Split(strings.TrimSpace(scanner.Text()), " ")

		if len(args[0]) == 0 {
			if len(lastcmd) == 0 {
				continue
			}
			args = lastcmd
		} else {
			lastcmd = make([]string, len(args))
			copy(lastcmd, args)
		}

		cmd := args[0]
		args = args[1:]

		switch cmd {
		case "s", "step":
			debugStep(machine, args)

		case "r", "reg", "regs":
			debugRegs(machine)

		case "m", "mem", "memory":
			debugMemory(machine, args, labels)

		case "b", "bp", "break":
			debugBreak(args, labels)

		case "c", "continue":
			debugContinue(machine)

		case "reset":
			machine.SoftReset()
			debugRegs(machine)

		case "q", "quit", "exit":
			return

		default:
			log.Printf("'%s' is not a valid command\n", cmd)
		}
	}
}
