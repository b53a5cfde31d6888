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

import "fmt"

// Cursor locates a diagnostic inside a stimulus script: the line it
// occurred on and the 1-based column of the offending character.
type Cursor struct {
	Line   int
	Column int
}

// ScriptError is every positional stimulus-script diagnostic. Unlike
// the assembler's per-case typed errors, the script parser carries one
// message string per failure site, so a single struct fits better than
// a typed-error zoo.
type ScriptError struct {
	Position Cursor
	Message  string
}

func (err *ScriptError) GetPosition() Cursor { return err.Position }
func (err *ScriptError) Error() string {
	return fmt.Sprintf("%d:%d: %s", err.Position.Line, err.Position.Column, err.Message)
}

func newError(pos Cursor, format string, args ...interface{}) error {
	return &ScriptError{pos, fmt.Sprintf(format, args...)}
}

// RuntimeError is a fatal emulator-side failure: an instruction decoded
// outside the opcode table, reported with a register/stack snapshot.
type RuntimeError struct {
	Snapshot string
}

func (err *RuntimeError) Error() string {
	return "invalid instruction\n" + err.Snapshot
}
