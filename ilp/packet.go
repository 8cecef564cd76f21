package ilp

import "time"

// ConditionLength is the fixed size of an execution condition or
// fulfillment preimage: a SHA-256 digest.
const ConditionLength = 32

// Prepare is a conditional transfer request (spec §3).
type Prepare struct {
	Amount              uint64
	ExpiresAt           time.Time
	ExecutionCondition  [ConditionLength]byte
	Destination         []byte
	Data                []byte
}

// Fulfill is a successful Prepare outcome, carrying the preimage of the
// Prepare's execution condition.
type Fulfill struct {
	Fulfillment [ConditionLength]byte
	Data        []byte
}

// Reject is an unsuccessful Prepare outcome.
type Reject struct {
	Code        ErrorCode
	Message     []byte
	TriggeredBy []byte
	Data        []byte
}

// RejectBuilder mirrors the Rust source's RejectBuilder. Build copies its
// four fields into a new Reject and fills in no defaults; relay-minted
// Rejects set TriggeredBy to the relay's own address and Data to an
// empty slice at the call site.
type RejectBuilder struct {
	Code        ErrorCode
	Message     []byte
	TriggeredBy []byte
	Data        []byte
}

func (b RejectBuilder) Build() *Reject {
	return &Reject{
		Code:        b.Code,
		Message:     b.Message,
		TriggeredBy: b.TriggeredBy,
		Data:        b.Data,
	}
}
