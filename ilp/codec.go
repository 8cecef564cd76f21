package ilp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"time"
)

// Packet type octets, matching the Interledger v4 packet framing.
const (
	typePrepare byte = 12
	typeFulfill byte = 13
	typeReject  byte = 14
)

// ErrDecode is returned (possibly wrapped) for any malformed buffer passed
// to Decode. The Receiver (spec §4.3) treats any such error identically:
// a 400 response, without invoking the inner service.
var ErrDecode = errors.New("ilp: failed to decode packet")

// Encode serializes a Prepare, Fulfill, or Reject into its wire form.
// Any other type is a programmer error.
func Encode(packet interface{}) ([]byte, error) {
	switch p := packet.(type) {
	case *Prepare:
		return encodePrepare(p), nil
	case Prepare:
		return encodePrepare(&p), nil
	case *Fulfill:
		return encodeFulfill(p), nil
	case Fulfill:
		return encodeFulfill(&p), nil
	case *Reject:
		return encodeReject(p), nil
	case Reject:
		return encodeReject(&p), nil
	default:
		return nil, errors.New("ilp: Encode: unsupported packet type")
	}
}

// Decode parses an arbitrary buffer into a *Prepare, *Fulfill, or *Reject.
// A malformed buffer, an unrecognized type octet, or a truncated body all
// return an error matching ErrDecode under errors.Is (wrapped with more
// detail, except for an unrecognized type octet, which returns ErrDecode
// itself).
func Decode(buf []byte) (interface{}, error) {
	r := bytes.NewReader(buf)
	typ, err := r.ReadByte()
	if err != nil {
		return nil, wrapDecode(err)
	}
	// The length determinant describes the content length; it is read
	// (a malformed determinant is an error) but its value is not compared
	// with the content, which is parsed directly off the remaining reader
	// rather than re-sliced, since all of our fields are self-delimiting.
	if _, err := readLength(r); err != nil {
		return nil, wrapDecode(err)
	}

	switch typ {
	case typePrepare:
		p, err := decodePrepare(r)
		if err != nil {
			return nil, wrapDecode(err)
		}
		return p, nil
	case typeFulfill:
		f, err := decodeFulfill(r)
		if err != nil {
			return nil, wrapDecode(err)
		}
		return f, nil
	case typeReject:
		j, err := decodeReject(r)
		if err != nil {
			return nil, wrapDecode(err)
		}
		return j, nil
	default:
		return nil, ErrDecode
	}
}

func wrapDecode(err error) error {
	return errors.Join(ErrDecode, err)
}

func encodePrepare(p *Prepare) []byte {
	content := &bytes.Buffer{}
	var amount [8]byte
	binary.BigEndian.PutUint64(amount[:], p.Amount)
	content.Write(amount[:])

	var micros [8]byte
	binary.BigEndian.PutUint64(micros[:], uint64(p.ExpiresAt.UnixMicro()))
	content.Write(micros[:])

	content.Write(p.ExecutionCondition[:])
	writeLengthPrefixed(content, p.Destination)
	writeLengthPrefixed(content, p.Data)

	return frame(typePrepare, content.Bytes())
}

func decodePrepare(r *bytes.Reader) (*Prepare, error) {
	var amount [8]byte
	if _, err := readFull(r, amount[:]); err != nil {
		return nil, err
	}
	var micros [8]byte
	if _, err := readFull(r, micros[:]); err != nil {
		return nil, err
	}
	var cond [ConditionLength]byte
	if _, err := readFull(r, cond[:]); err != nil {
		return nil, err
	}
	dest, err := readLengthPrefixed(r)
	if err != nil {
		return nil, err
	}
	data, err := readLengthPrefixed(r)
	if err != nil {
		return nil, err
	}
	return &Prepare{
		Amount:             binary.BigEndian.Uint64(amount[:]),
		ExpiresAt:          time.UnixMicro(int64(binary.BigEndian.Uint64(micros[:]))).UTC(),
		ExecutionCondition: cond,
		Destination:        dest,
		Data:               data,
	}, nil
}

func encodeFulfill(f *Fulfill) []byte {
	content := &bytes.Buffer{}
	content.Write(f.Fulfillment[:])
	writeLengthPrefixed(content, f.Data)
	return frame(typeFulfill, content.Bytes())
}

func decodeFulfill(r *bytes.Reader) (*Fulfill, error) {
	var ful [ConditionLength]byte
	if _, err := readFull(r, ful[:]); err != nil {
		return nil, err
	}
	data, err := readLengthPrefixed(r)
	if err != nil {
		return nil, err
	}
	return &Fulfill{Fulfillment: ful, Data: data}, nil
}

func encodeReject(j *Reject) []byte {
	content := &bytes.Buffer{}
	content.Write(j.Code[:])
	writeLengthPrefixed(content, j.TriggeredBy)
	writeLengthPrefixed(content, j.Message)
	writeLengthPrefixed(content, j.Data)
	return frame(typeReject, content.Bytes())
}

func decodeReject(r *bytes.Reader) (*Reject, error) {
	var code [3]byte
	if _, err := readFull(r, code[:]); err != nil {
		return nil, err
	}
	triggeredBy, err := readLengthPrefixed(r)
	if err != nil {
		return nil, err
	}
	message, err := readLengthPrefixed(r)
	if err != nil {
		return nil, err
	}
	data, err := readLengthPrefixed(r)
	if err != nil {
		return nil, err
	}
	return &Reject{
		Code:        code,
		TriggeredBy: triggeredBy,
		Message:     message,
		Data:        data,
	}, nil
}

func frame(typ byte, content []byte) []byte {
	buf := &bytes.Buffer{}
	buf.WriteByte(typ)
	writeLength(buf, len(content))
	buf.Write(content)
	return buf.Bytes()
}
