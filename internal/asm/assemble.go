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

import (
	"bufio"
	"io"
)

// Assemble drives both passes over a `.t7` source: Pass 1 builds the
// symbol table and detects sizing/label errors, and only on a clean
// Pass 1 does Pass 2 walk the same lines again to encode the binary.
func Assemble(r io.Reader) (bin *Binary, ctx *Context) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	ctx, cache := Pass1(lines)

	if len(ctx.Errors) > 0 {
		return nil, ctx
	}

	bin = Pass2(ctx, cache)

	return bin, ctx
}
