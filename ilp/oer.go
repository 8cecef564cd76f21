package ilp

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// This file implements just enough of the OER (Octet Encoding Rules)
// variable-length octet string framing used by the Interledger packet
// formats: a length determinant followed by that many content octets.
// Short form (length < 128) is a single length byte; long form sets the
// top bit of the first byte and encodes the count of following
// big-endian length bytes in the remaining 7 bits.

var errTruncated = errors.New("ilp: truncated packet")
var errLengthTooLarge = errors.New("ilp: length determinant too large")

func writeLengthPrefixed(buf *bytes.Buffer, content []byte) {
	writeLength(buf, len(content))
	buf.Write(content)
}

func writeLength(buf *bytes.Buffer, n int) {
	if n < 128 {
		buf.WriteByte(byte(n))
		return
	}
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], uint64(n))
	i := 0
	for i < len(tmp)-1 && tmp[i] == 0 {
		i++
	}
	lenBytes := tmp[i:]
	buf.WriteByte(0x80 | byte(len(lenBytes)))
	buf.Write(lenBytes)
}

func readLength(r *bytes.Reader) (int, error) {
	first, err := r.ReadByte()
	if err != nil {
		return 0, errTruncated
	}
	if first < 128 {
		return int(first), nil
	}
	n := int(first &^ 0x80)
	if n == 0 || n > 8 {
		return 0, errLengthTooLarge
	}
	var tmp [8]byte
	if _, err := readFull(r, tmp[8-n:]); err != nil {
		return 0, errTruncated
	}
	return int(binary.BigEndian.Uint64(tmp[:])), nil
}

func readLengthPrefixed(r *bytes.Reader) ([]byte, error) {
	n, err := readLength(r)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	if _, err := readFull(r, out); err != nil {
		return nil, errTruncated
	}
	return out, nil
}

func readFull(r *bytes.Reader, out []byte) (int, error) {
	total := 0
	for total < len(out) {
		n, err := r.Read(out[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, errTruncated
		}
	}
	return total, nil
}
