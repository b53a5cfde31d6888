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

package asm

import "fmt"

type TokenType uint

const (
	TOKEN_NONE TokenType = iota
	TOKEN_IDENT
	TOKEN_NUMBER
	TOKEN_CHAR
	TOKEN_STRING
	TOKEN_COMMA
	TOKEN_HASH
	TOKEN_LPAREN
	TOKEN_RPAREN
	TOKEN_PLUS
	TOKEN_MINUS
	TOKEN_STAR
	TOKEN_SLASH
)

// Cursor locates a diagnostic inside the source: the line it occurred on
// and the 1-based column of the offending token.
type Cursor struct {
	Line   int
	Column int
}

type Token struct {
	Type     TokenType
	Position Cursor
	Value    string
}

// LabelEntry is a resolved Pass 1 symbol: its value and the line that
// defined it. Pass 2 never mutates this map, only reads it.
type LabelEntry struct {
	Value uint8
	Line  int
}

// Context is the parser cursor threaded through both passes. No package
// level mutable state; every parse function takes and returns through this
// value instead.
type Context struct {
	Lines    []string
	Labels   map[string]LabelEntry
	CurAddr  int
	Start    int
	Errors   []error
	Warnings []Warning
}

func NewContext(lines []string) *Context {
	return &Context{
		Lines:  lines,
		Labels: make(map[string]LabelEntry),
	}
}

func (ctx *Context) addError(err error) {
	ctx.Errors = append(ctx.Errors, err)
}

func (ctx *Context) addWarning(w Warning) {
	ctx.Warnings = append(ctx.Warnings, w)
}

// TokenError is implemented by every positional assembler error, letting
// the CLI render caret-context without a type switch per error kind.
type TokenError interface {
	error
	GetPosition() Cursor
}

type ExpectedTokenError struct {
	Position Cursor
	Want     string
	Have     string
}

func (err *ExpectedTokenError) GetPosition() Cursor { return err.Position }
func (err *ExpectedTokenError) Error() string {
	return fmt.Sprintf(
		"%d:%d: expected %s, have %s",
		err.Position.Line, err.Position.Column, err.Want, err.Have,
	)
}

type UnknownInstructionError struct {
	Position   Cursor
	Received   string
	Suggestion string
}

func (err *UnknownInstructionError) GetPosition() Cursor { return err.Position }
func (err *UnknownInstructionError) Error() string {
	if err.Suggestion != "" {
		return fmt.Sprintf(
			"%d:%d: unknown instruction '%s' (did you mean '%s'?)",
			err.Position.Line, err.Position.Column, err.Received, err.Suggestion,
		)
	}

	return fmt.Sprintf(
		"%d:%d: unknown instruction '%s'",
		err.Position.Line, err.Position.Column, err.Received,
	)
}

type InvalidRegisterError struct {
	Position Cursor
	Received string
}

func (err *InvalidRegisterError) GetPosition() Cursor { return err.Position }
func (err *InvalidRegisterError) Error() string {
	return fmt.Sprintf(
		"%d:%d: invalid register '%s'", err.Position.Line, err.Position.Column, err.Received,
	)
}

type InvalidIndexRegisterError struct {
	Position Cursor
	Received string
}

func (err *InvalidIndexRegisterError) GetPosition() Cursor { return err.Position }
func (err *InvalidIndexRegisterError) Error() string {
	return fmt.Sprintf(
		"%d:%d: invalid index register '%s', want G1 or G2",
		err.Position.Line, err.Position.Column, err.Received,
	)
}

type InvalidImmediateError struct {
	Position Cursor
}

func (err *InvalidImmediateError) GetPosition() Cursor { return err.Position }
func (err *InvalidImmediateError) Error() string {
	return fmt.Sprintf(
		"%d:%d: immediate operand not allowed here", err.Position.Line, err.Position.Column,
	)
}

type InvalidOperandError struct {
	Position Cursor
	Reason   string
}

func (err *InvalidOperandError) GetPosition() Cursor { return err.Position }
func (err *InvalidOperandError) Error() string {
	return fmt.Sprintf(
		"%d:%d: invalid operand: %s", err.Position.Line, err.Position.Column, err.Reason,
	)
}

type InvalidLabelError struct {
	Position Cursor
	Received string
}

func (err *InvalidLabelError) GetPosition() Cursor { return err.Position }
func (err *InvalidLabelError) Error() string {
	return fmt.Sprintf(
		"%d:%d: invalid label name '%s'", err.Position.Line, err.Position.Column, err.Received,
	)
}

type DuplicatedLabelError struct {
	Position  Cursor
	Received  string
	FirstLine int
}

func (err *DuplicatedLabelError) GetPosition() Cursor { return err.Position }
func (err *DuplicatedLabelError) Error() string {
	return fmt.Sprintf(
		"%d:%d: duplicated label '%s', first defined on line %d",
		err.Position.Line, err.Position.Column, err.Received, err.FirstLine,
	)
}

type UndefinedLabelError struct {
	Position Cursor
	Received string
}

func (err *UndefinedLabelError) GetPosition() Cursor { return err.Position }
func (err *UndefinedLabelError) Error() string {
	return fmt.Sprintf(
		"%d:%d: undefined label '%s'", err.Position.Line, err.Position.Column, err.Received,
	)
}

type InvalidOrgError struct {
	Position Cursor
	CurAddr  int
	Target   int
}

func (err *InvalidOrgError) GetPosition() Cursor { return err.Position }
func (err *InvalidOrgError) Error() string {
	return fmt.Sprintf(
		"%d:%d: ORG target %#02x precedes current address %#02x",
		err.Position.Line, err.Position.Column, err.Target, err.CurAddr,
	)
}

type ZeroDivisionError struct {
	Position Cursor
}

func (err *ZeroDivisionError) GetPosition() Cursor { return err.Position }
func (err *ZeroDivisionError) Error() string {
	return fmt.Sprintf("%d:%d: division by zero", err.Position.Line, err.Position.Column)
}

// Warning mirrors TokenError but for the non-fatal diagnostic channel.
// FileWarning carries no Cursor: an overrun of the writable area is a
// property of the whole binary, not of one line.
type Warning interface {
	error
}

type PositionalWarning struct {
	Position Cursor
	Message  string
}

func (w *PositionalWarning) GetPosition() Cursor { return w.Position }
func (w *PositionalWarning) Error() string {
	return fmt.Sprintf("%d:%d: %s", w.Position.Line, w.Position.Column, w.Message)
}

func newWarning(pos Cursor, format string, args ...interface{}) Warning {
	return &PositionalWarning{pos, fmt.Sprintf(format, args...)}
}

type FileWarning struct {
	Message string
}

func (w *FileWarning) Error() string { return w.Message }
