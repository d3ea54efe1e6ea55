// Package respbuf implements the sensor context's response buffer: a
// fixed-capacity byte slice paired with an explicit length, rather than a
// NUL- or CRLF-terminated C string. Binary high-volume packets may
// legitimately contain zero bytes, so the buffer can never rely on a
// sentinel value the way the teacher's original fifo.Fifo did for CANopen
// segmented transfers; Buf()/Len() are always used together.
package respbuf

import "gosdi12/crc"

// MinCapacity is the smallest response buffer the spec allows (§3): large
// enough for the widest ASCII data page plus its CRC and CR LF.
const MinCapacity = 82

// Buffer is a write-once-per-response scratch area owned by a single
// sensor context. It is reset at the start of every Process call.
type Buffer struct {
	data []byte
	len  int
}

// New allocates a Buffer with the given capacity. Capacity must be at
// least MinCapacity to hold any legal sensor response.
func New(capacity int) *Buffer {
	if capacity < MinCapacity {
		capacity = MinCapacity
	}
	return &Buffer{data: make([]byte, capacity)}
}

// Reset empties the buffer, preparing it for the next response.
func (b *Buffer) Reset() {
	b.len = 0
}

// Len reports how many bytes have been written so far.
func (b *Buffer) Len() int { return b.len }

// Cap reports the buffer's total capacity.
func (b *Buffer) Cap() int { return len(b.data) }

// Bytes returns the written portion of the buffer. The returned slice
// aliases the buffer's storage and is invalidated by the next Write/Reset.
func (b *Buffer) Bytes() []byte { return b.data[:b.len] }

// Write appends p to the buffer, folding it into crcAcc if non-nil. It
// reports ErrBufferOverflow-compatible false if p does not fit.
func (b *Buffer) Write(p []byte, crcAcc *crc.CRC16) bool {
	if b.len+len(p) > len(b.data) {
		return false
	}
	copy(b.data[b.len:], p)
	if crcAcc != nil {
		crcAcc.Block(p)
	}
	b.len += len(p)
	return true
}

// WriteByte appends a single byte, folding it into crcAcc if non-nil.
func (b *Buffer) WriteByte(c byte, crcAcc *crc.CRC16) bool {
	return b.Write([]byte{c}, crcAcc)
}

// Remaining reports how many more bytes can be written before the buffer
// is full.
func (b *Buffer) Remaining() int {
	return len(b.data) - b.len
}

// AppendCRLF writes a bare CR LF with no CRC, used for replies that never
// carry a CRC (most of the grammar).
func (b *Buffer) AppendCRLF() bool {
	return b.Write([]byte{'\r', '\n'}, nil)
}

// AppendCRCAndCRLF encodes acc as the 3 printable CRC bytes and appends
// them followed by CR LF.
func (b *Buffer) AppendCRCAndCRLF(acc crc.CRC16) bool {
	enc := acc.Encode3()
	return b.Write(enc[:], nil) && b.AppendCRLF()
}
