package emu

import (
	"crypto/sha1"
	"encoding/hex"
)

// VideoDigest accumulates a running hash over a sequence of frame buffers,
// giving a compact fingerprint of an emulation run for regression
// comparisons. SHA-1 is fine here, this is not a cryptographic use.
type VideoDigest struct {
	digest [sha1.Size]byte
}

// Write folds one frame into the digest. The previous digest value is
// hashed together with the frame data, so the result depends on the whole
// sequence, not just the last frame.
func (d *VideoDigest) Write(frame []uint8) {
	h := sha1.New()
	h.Write(d.digest[:])
	h.Write(frame)
	h.Sum(d.digest[:0])
}

// Hash returns the hex form of the current digest.
func (d *VideoDigest) Hash() string {
	return hex.EncodeToString(d.digest[:])
}
