package common

import (
	"bytes"

	"boscoin.io/tokenvote/lib/errors"
)

const Bytes32Length = 32

// FormatBytes32String encodes `s` into a fixed-width, zero padded 32 byte
// identifier. Longer strings are rejected, never truncated.
func FormatBytes32String(s string) (b [Bytes32Length]byte, err error) {
	if len(s) > Bytes32Length {
		err = errors.ProposalNameTooLong.Clone().
			SetData("name", s).
			SetData("length", len(s))
		return
	}
	if bytes.IndexByte([]byte(s), 0) >= 0 {
		err = errors.InvalidProposalName.Clone().SetData("name", s)
		return
	}

	copy(b[:], s)

	return
}

// ParseBytes32String is the inverse of `FormatBytes32String`.
func ParseBytes32String(b [Bytes32Length]byte) string {
	return string(bytes.TrimRight(b[:], "\x00"))
}
