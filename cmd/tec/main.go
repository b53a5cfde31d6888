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
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/lassandro/tec/internal/asm"
	"github.com/lassandro/tec/internal/cpu"
	"github.com/lassandro/tec/internal/harness"
	"github.com/lassandro/tec/internal/printer"
)

var helpvar bool
var debugvar bool

const usage = "tec [-debug] filename.bin [filename.nt]"

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(
		&debugvar, "debug", false,
		"Single-steps the machine in an interactive CLI instead of "+
			"replaying a stimulus script from standard input",
	)
	flag.Parse()
}

func tec() int {
	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	args := flag.Args()

	if len(args) < 1 || len(args) > 2 {
		log.Println(usage)
		return 1
	}

	file, err := os.Open(args[0])

	if err != nil {
		log.Println(err)
		return 1
	}

	start, size, image, err := asm.ReadBinary(file)
	file.Close()

	if err != nil {
		log.Println(err)
		return 1
	}

	labels := make(map[string]uint8)

	if len(args) == 2 {
		ntfile, err := os.Open(args[1])

		if err != nil {
			log.Println(err)
			return 1
		}

		var errs []error
		labels, errs = asm.ReadSymTable(ntfile)
		ntfile.Close()

		if len(errs) > 0 {
			for _, err := range errs {
				log.Println(err)
			}
			return 1
		}
	}

	machine := cpu.New()
	machine.LoadImage(start, size, image)

	if debugvar {
		enterRawTerm()
		defer exitRawTerm()

		debugREPL(machine, labels)
		return 0
	}

	var lines []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	events, errs := harness.Parse(strings.NewReader(strings.Join(lines, "\n")), labels)

	if len(errs) > 0 {
		for _, err := range errs {
			printScriptError(lines, err)
		}
		return 1
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	h := harness.New(machine, printer.New(out))

	if err := h.Run(events); err != nil {
		out.Flush()
		log.Println(err)
		return 1
	}

	return 0
}

// printScriptError renders a stimulus-script diagnostic with the same
// prev/current/next context the assembler prints.
func printScriptError(lines []string, err error) {
	scriptErr, ok := err.(*harness.ScriptError)

	if !ok {
		log.Println(err)
		return
	}

	cursor := scriptErr.GetPosition()

	var context strings.Builder

	fmt.Fprintf(&context, "error: %s\n", err)

	if cursor.Line-2 >= 0 && cursor.Line-2 < len(lines) {
		fmt.Fprintf(&context, "%4d | %s\n", cursor.Line-1, lines[cursor.Line-2])
	}

	if cursor.Line-1 >= 0 && cursor.Line-1 < len(lines) {
		fmt.Fprintf(&context, "%4d | %s\n", cursor.Line, lines[cursor.Line-1])
		fmt.Fprintf(
			&context, "     | \033[31m%*s\033[0m\n", cursor.Column, "^",
		)
	}

	if cursor.Line >= 0 && cursor.Line < len(lines) {
		fmt.Fprintf(&context, "%4d | %s\n", cursor.Line+1, lines[cursor.Line])
	}

	log.Print(context.String())
}

func main() {
	os.Exit(tec())
}
