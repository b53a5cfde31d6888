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
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/lassandro/tec/internal/asm"
)

var helpvar bool
var outvar string

const usage = "tasm [-out outfile] filename.t7"

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.StringVar(
		&outvar, "out", "",
		"Specifies a precise name for the output file, "+
			"overriding the default means of determining it",
	)
	flag.Parse()
}

func tasm() int {
	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	args := flag.Args()

	if len(args) != 1 {
		log.Println(usage)
		return 1
	}

	filename := filepath.Base(args[0])

	if filepath.Ext(filename) != ".t7" {
		log.Printf("%s is not a valid TeC assembly file", filename)
		return 1
	}

	file, err := os.Open(args[0])

	if err != nil {
		log.Println(err)
		return 1
	}

	defer file.Close()

	log.SetPrefix(fmt.Sprintf("\033[1m%s:\033[0m", filename))

	bin, ctx := asm.Assemble(file)

	for _, warning := range ctx.Warnings {
		printDiagnostic(ctx.Lines, warning, "warning")
	}

	if len(ctx.Errors) > 0 {
		for _, err := range ctx.Errors {
			printDiagnostic(ctx.Lines, err, "error")
		}
		return 1
	}

	if outvar == "" {
		outvar = strings.ReplaceAll(
			args[0], filepath.Ext(args[0]), ".bin",
		)
	}

	outfile, err := os.Create(outvar)

	if err != nil {
		log.Println("Error writing output file")
		log.Println(err)
		return 1
	}

	defer outfile.Close()

	if err := asm.WriteBinary(outfile, bin); err != nil {
		log.Println("Error writing output file")
		log.Println(err)
		return 1
	}

	ntname := strings.ReplaceAll(outvar, filepath.Ext(outvar), ".nt")

	ntfile, err := os.Create(ntname)

	if err != nil {
		log.Println("Error writing symbol table")
		log.Println(err)
		return 1
	}

	defer ntfile.Close()

	if err := asm.WriteSymTable(ntfile, ctx.Labels); err != nil {
		log.Println("Error writing symbol table")
		log.Println(err)
		return 1
	}

	return 0
}

type positional interface {
	GetPosition() asm.Cursor
}

// printDiagnostic renders one error or warning with its surrounding
// source context: the previous line, the offending line with a caret
// under the failing column, and the next line. Diagnostics without a
// position (file-level warnings) print as a single line.
func printDiagnostic(lines []string, err error, severity string) {
	tokenErr, ok := err.(positional)

	if !ok {
		log.Printf("%s: %s", severity, err)
		return
	}

	cursor := tokenErr.GetPosition()

	var context strings.Builder

	fmt.Fprintf(&context, "%s: %s\n", severity, err)

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
	os.Exit(tasm())
}
