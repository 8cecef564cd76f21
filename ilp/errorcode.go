package ilp

// ErrorCode is a 3-character ILP error code, per the taxonomy in the
// Interledger error-handling RFCs: the first letter signals who should
// act on the error (F final, T temporary, R relative-to-sender).
type ErrorCode [3]byte

func (c ErrorCode) String() string { return string(c[:]) }

// Error codes used by the relay core (spec §7).
var (
	CodeBadRequest           = newCode("F00")
	CodeUnreachable          = newCode("F02")
	CodeTransferTimedOut     = newCode("R00")
	CodeInsufficientTimeout  = newCode("R02")
	CodeInternalError        = newCode("T00")
	CodePeerUnreachable      = newCode("T01")
)

func newCode(s string) ErrorCode {
	var c ErrorCode
	copy(c[:], s)
	return c
}
