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
	"errors"
	"io"
)

// WriteBinary emits the on-disk artifact: byte 0 is the start address,
// byte 1 is the size, followed by `size` image bytes beginning at
// `start`.
func WriteBinary(w io.Writer, bin *Binary) error {
	header := []byte{bin.Start, bin.Size}
	if _, err := w.Write(header); err != nil {
		return err
	}

	end := int(bin.Start) + int(bin.Size)
	if end > 256 {
		end = 256
	}

	_, err := w.Write(bin.Image[bin.Start:end])
	return err
}

var ErrMalformedBinary = errors.New("malformed binary: truncated file")

// ReadBinary loads the artifact WriteBinary produces, placing its bytes
// into a fresh 256-byte image at their original addresses.
func ReadBinary(r io.Reader) (start, size byte, image [256]byte, err error) {
	header := make([]byte, 2)
	if _, err = io.ReadFull(r, header); err != nil {
		err = ErrMalformedBinary
		return
	}

	start, size = header[0], header[1]

	body := make([]byte, size)
	if _, err = io.ReadFull(r, body); err != nil {
		err = ErrMalformedBinary
		return
	}

	for i, b := range body {
		addr := int(start) + i
		if addr >= 256 {
			break
		}
		image[addr] = b
	}

	err = nil
	return
}
