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

// Binary is the assembled artifact: the 256-byte memory image, the start
// address and the size, matching the on-disk header layout.
type Binary struct {
	Start byte
	Size  byte
	Image [256]byte
}

// Pass2 re-walks the cached lines from Pass 1, encoding each instruction
// and pseudo-op into the 256-byte image. Pass 1 must have finished
// without error before this is called; no binary is produced on any
// Pass 1 error.
func Pass2(ctx *Context, cache []lineTokens) *Binary {
	bin := &Binary{}

	curAddr := 0
	started := false

	for _, lt := range cache {
		if lt.tokens == nil {
			continue
		}

		rest := lt.tokens
		if lt.hasLabel {
			rest = lt.tokens[1:]
		}

		if len(rest) == 0 {
			continue
		}

		keyword := rest[0]
		operands := rest[1:]

		if dir := lookupDirective(keyword.Value); dir != DIRECTIVE_NONE {
			switch dir {
			case DIRECTIVE_EQU:
				continue

			case DIRECTIVE_ORG:
				pos := 0
				value := EvalExpr(operands, &pos, ctx)
				target := int(checkRange8(value, keyword.Position, ctx))

				if !started {
					bin.Start = byte(target)
					curAddr = target
					started = true
				} else {
					for curAddr < target {
						zeroFillByte(bin, curAddr, keyword.Position, ctx)
						curAddr++
					}
				}
				continue

			case DIRECTIVE_DS:
				pos := 0
				value := EvalExpr(operands, &pos, ctx)
				for n := int32(0); n < value; n++ {
					zeroFillByte(bin, curAddr, keyword.Position, ctx)
					curAddr++
				}
				continue

			case DIRECTIVE_DC:
				for _, item := range splitDCItems(operands) {
					if len(item) == 1 && item[0].Type == TOKEN_STRING {
						for _, b := range []byte(item[0].Value) {
							writeByte(bin, curAddr, b, item[0].Position, ctx)
							curAddr++
						}
						continue
					}

					pos := 0
					value := EvalExpr(item, &pos, ctx)
					writeByte(
						bin, curAddr, checkRange8(value, keyword.Position, ctx),
						keyword.Position, ctx,
					)
					curAddr++
				}
				continue
			}
		}

		desc, ok := lookupInstr(keyword.Value)
		if !ok {
			// Pass 1 already reported unknown instructions.
			continue
		}

		encodeInstruction(bin, &curAddr, desc, keyword, operands, ctx)
	}

	bin.Size = byte(curAddr - int(bin.Start))

	if curAddr > ROMStart {
		ctx.addWarning(&FileWarning{"binary exceeds writable area, overruns ROM"})
	}

	return bin
}

// writeByte emits one explicit byte (instruction encoding, DC data).
// Range/ROM warnings here are non-fatal and the byte is written
// regardless, unlike zeroFillByte below.
func writeByte(bin *Binary, addr int, value byte, pos Cursor, ctx *Context) {
	if addr < 0 || addr >= 256 {
		ctx.addWarning(newWarning(pos, "address %#02x out of range", addr))
		return
	}

	if addr >= ROMStart {
		ctx.addWarning(newWarning(pos, "writing to the ROM area at %#02x", addr))
	}

	bin.Image[addr] = value
}

// zeroFillByte backs ORG/DS zero-fill. A zero-fill that crosses into
// the ROM window follows the same suppression rule the runtime uses,
// rather than writing regardless like an explicit byte would.
func zeroFillByte(bin *Binary, addr int, pos Cursor, ctx *Context) {
	if addr < 0 || addr >= 256 {
		ctx.addWarning(newWarning(pos, "address %#02x out of range", addr))
		return
	}

	if addr >= ROMStart {
		ctx.addWarning(newWarning(pos, "writing to the ROM area at %#02x", addr))
		return
	}

	bin.Image[addr] = 0
}

func encodeInstruction(
	bin *Binary, curAddr *int, desc InstrDesc, keyword Token, operands []Token, ctx *Context,
) {
	addr := *curAddr
	opcodeByte := desc.Base

	switch desc.Family {
	case T1:
		writeByte(bin, addr, opcodeByte, keyword.Position, ctx)
		*curAddr++
		checkTrailing(operands, ctx)
		return

	case T2:
		gr, pos, ok := takeRegister(operands, ctx)
		if ok {
			opcodeByte |= gr << 2
		}
		writeByte(bin, addr, opcodeByte, keyword.Position, ctx)
		*curAddr++
		checkTrailing(operands[pos:], ctx)
		return
	}

	// T3, T4, T5, T6 all emit two bytes: opcode then operand.
	var gr byte
	var pos int
	var ok bool

	if desc.Family != T6 {
		gr, pos, ok = takeRegister(operands, ctx)
		if ok {
			opcodeByte |= gr << 2
		}

		if pos < len(operands) && operands[pos].Type == TOKEN_COMMA {
			pos++
		} else {
			ctx.addError(&ExpectedTokenError{keyword.Position, ",", "end of operands"})
		}
	}

	var operand byte

	switch desc.Family {
	case T3:
		rest := operands[pos:]
		exprPos := 0
		value := EvalExpr(rest, &exprPos, ctx)
		operand = byte(uint32(value) & 0xFF)
		if value < 0 || value >= 0x10 {
			ctx.addWarning(newWarning(keyword.Position, "io address %#02x out of range", value))
		}
		pos += exprPos

	case T4, T5:
		rest := operands[pos:]
		if len(rest) > 0 && rest[0].Type == TOKEN_HASH {
			if desc.Family == T5 {
				ctx.addError(&InvalidImmediateError{rest[0].Position})
			}
			exprPos := 1
			value := EvalExpr(rest, &exprPos, ctx)
			operand = checkRange8(value, keyword.Position, ctx)
			opcodeByte |= xrImmediate
			pos += exprPos
		} else {
			exprPos := 0
			value := EvalExpr(rest, &exprPos, ctx)
			operand = checkRange8(value, keyword.Position, ctx)
			pos += exprPos

			xr, consumed := takeIndexSuffix(operands[pos:], ctx)
			opcodeByte |= xr
			pos += consumed

			if desc.Family == T5 && xr == xrDirect && operand >= ROMStart {
				ctx.addWarning(newWarning(keyword.Position, "writing to the ROM area at %#02x", operand))
			}
		}

	case T6:
		rest := operands[pos:]
		exprPos := 0
		value := EvalExpr(rest, &exprPos, ctx)
		operand = checkRange8(value, keyword.Position, ctx)
		pos += exprPos

		xr, consumed := takeIndexSuffix(operands[pos:], ctx)
		opcodeByte |= xr
		pos += consumed
	}

	writeByte(bin, addr, opcodeByte, keyword.Position, ctx)
	writeByte(bin, addr+1, operand, keyword.Position, ctx)
	*curAddr += 2

	checkTrailing(operands[pos:], ctx)
}

func takeRegister(operands []Token, ctx *Context) (byte, int, bool) {
	if len(operands) == 0 {
		ctx.addError(&InvalidOperandError{Cursor{}, "expected a register operand"})
		return 0, 0, false
	}

	if operands[0].Type != TOKEN_IDENT {
		ctx.addError(&InvalidOperandError{operands[0].Position, "expected a register operand"})
		return 0, 1, false
	}

	gr, ok := lookupRegister(operands[0].Value)
	if !ok {
		ctx.addError(&InvalidRegisterError{operands[0].Position, operands[0].Value})
		return 0, 1, false
	}

	return gr, 1, true
}

// takeIndexSuffix consumes an optional ", G1" or ", G2" index suffix,
// returning the XR bits to OR in (xrDirect if absent).
func takeIndexSuffix(operands []Token, ctx *Context) (byte, int) {
	if len(operands) == 0 || operands[0].Type != TOKEN_COMMA {
		return xrDirect, 0
	}

	if len(operands) < 2 {
		ctx.addError(&ExpectedTokenError{operands[0].Position, "G1 or G2", "end of line"})
		return xrDirect, 1
	}

	if operands[1].Type != TOKEN_IDENT {
		ctx.addError(&InvalidIndexRegisterError{operands[1].Position, operands[1].Value})
		return xrDirect, 2
	}

	xr, ok := lookupIndexRegister(operands[1].Value)
	if !ok {
		ctx.addError(&InvalidIndexRegisterError{operands[1].Position, operands[1].Value})
		return xrDirect, 2
	}

	return xr, 2
}

// checkTrailing enforces that after operand emission, nothing but
// whitespace/comment remains on the line.
func checkTrailing(operands []Token, ctx *Context) {
	if len(operands) > 0 {
		ctx.addError(&InvalidOperandError{
			operands[0].Position, "unexpected trailing operand",
		})
	}
}
