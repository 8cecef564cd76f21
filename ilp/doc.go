// Package ilp implements the Interledger Prepare/Fulfill/Reject packet
// types and their binary (OER-framed) wire codec (spec §3, §4.7).
//
// The relay core depends only on the field accessors on Prepare, Fulfill,
// and Reject, and on the two codec entry points, Encode and Decode.
package ilp
