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

import "unicode"

// lineTokens caches the tokenization of one source line so Pass 2
// doesn't re-scan it; stored alongside whether the line carries a label:
// a first identifier in column one that is not a mnemonic or directive.
type lineTokens struct {
	tokens     []Token
	hasLabel   bool
	labelToken Token
}

// Pass1 sizes every instruction and pseudo-op, assigns labels their
// addresses, and detects duplicates. A non-empty ctx.Errors keeps
// Pass 2 from being entered.
func Pass1(lines []string) (*Context, []lineTokens) {
	ctx := NewContext(lines)
	cache := make([]lineTokens, len(lines))

	for i, raw := range lines {
		lineNo := i + 1

		tokens, err := Tokenize(raw, lineNo)
		if err != nil {
			ctx.addError(err)
			continue
		}

		if len(tokens) == 0 {
			continue
		}

		startsIndented := len(raw) > 0 && unicode.IsSpace([]rune(raw)[0])

		lt := lineTokens{tokens: tokens}

		rest := tokens

		if !startsIndented && tokens[0].Type == TOKEN_IDENT {
			if _, isInstr := lookupInstr(tokens[0].Value); !isInstr &&
				lookupDirective(tokens[0].Value) == DIRECTIVE_NONE {
				lt.hasLabel = true
				lt.labelToken = tokens[0]
				rest = tokens[1:]
			}
		}

		cache[i] = lt

		if lt.hasLabel {
			if prior, exists := ctx.Labels[lt.labelToken.Value]; exists {
				ctx.addError(&DuplicatedLabelError{
					lt.labelToken.Position, lt.labelToken.Value, prior.Line,
				})
				continue
			}
		}

		if len(rest) == 0 {
			if lt.hasLabel {
				ctx.Labels[lt.labelToken.Value] = LabelEntry{
					byte(ctx.CurAddr), lineNo,
				}
			}
			continue
		}

		keyword := rest[0]

		if dir := lookupDirective(keyword.Value); dir != DIRECTIVE_NONE {
			operands := rest[1:]

			switch dir {
			case DIRECTIVE_EQU:
				pos := 0
				value := EvalExpr(operands, &pos, ctx)
				if lt.hasLabel {
					ctx.Labels[lt.labelToken.Value] = LabelEntry{
						checkRange8(value, keyword.Position, ctx), lineNo,
					}
				}
				continue

			case DIRECTIVE_ORG:
				pos := 0
				value := EvalExpr(operands, &pos, ctx)
				target := int(checkRange8(value, keyword.Position, ctx))

				if target < ctx.CurAddr {
					ctx.addError(&InvalidOrgError{keyword.Position, ctx.CurAddr, target})
				} else {
					ctx.CurAddr = target
				}

				if lt.hasLabel {
					ctx.Labels[lt.labelToken.Value] = LabelEntry{
						byte(target), lineNo,
					}
				}
				continue

			case DIRECTIVE_DS:
				pos := 0
				value := EvalExpr(operands, &pos, ctx)
				if lt.hasLabel {
					ctx.Labels[lt.labelToken.Value] = LabelEntry{
						byte(ctx.CurAddr), lineNo,
					}
				}
				ctx.CurAddr += int(value)
				continue

			case DIRECTIVE_DC:
				if lt.hasLabel {
					ctx.Labels[lt.labelToken.Value] = LabelEntry{
						byte(ctx.CurAddr), lineNo,
					}
				}
				ctx.CurAddr += sizeDC(operands)
				continue
			}
		}

		if desc, ok := lookupInstr(keyword.Value); ok {
			if lt.hasLabel {
				ctx.Labels[lt.labelToken.Value] = LabelEntry{
					byte(ctx.CurAddr), lineNo,
				}
			}
			ctx.CurAddr += desc.Size
			continue
		}

		// Unknown mnemonic: offer a suggestion if the identifier collides
		// with a defined label (the classic typo'd-mnemonic case).
		suggestion := ""
		if lt.hasLabel {
			// the label itself was consumed as a label above: nothing to
			// suggest against in that case.
		} else if _, exists := ctx.Labels[keyword.Value]; exists {
			suggestion = keyword.Value
		}

		ctx.addError(&UnknownInstructionError{keyword.Position, keyword.Value, suggestion})
	}

	return ctx, cache
}

// sizeDC returns the byte count a DC item list will occupy: one byte per
// scalar item, or len(string) bytes for a string literal item.
func sizeDC(operands []Token) int {
	size := 0

	for _, item := range splitDCItems(operands) {
		if len(item) == 1 && item[0].Type == TOKEN_STRING {
			size += len([]byte(item[0].Value))
		} else {
			size++
		}
	}

	return size
}

// splitDCItems splits a DC operand list on top-level commas (commas
// inside parens stay with their expression).
func splitDCItems(operands []Token) [][]Token {
	var items [][]Token
	var cur []Token
	depth := 0

	for _, tok := range operands {
		switch tok.Type {
		case TOKEN_LPAREN:
			depth++
		case TOKEN_RPAREN:
			depth--
		case TOKEN_COMMA:
			if depth == 0 {
				items = append(items, cur)
				cur = nil
				continue
			}
		}
		cur = append(cur, tok)
	}

	if len(cur) > 0 {
		items = append(items, cur)
	}

	return items
}
