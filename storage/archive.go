// Package storage defines the content-addressed archive that converted
// outputs can be filed into.
package storage

import "github.com/ipfs/go-cid"

// Archive is a content-addressed store of converted outputs.
//
// Contract:
// - Put MUST be idempotent and return the CID of the bytes written.
// - Stored outputs MUST be immutable.
// - Get MUST return ErrNotFound when the CID is absent.
type Archive interface {
	Put(output []byte) (cid.Cid, error)
	Get(id cid.Cid) ([]byte, error)
	Has(id cid.Cid) bool
}
