package localfs

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	"github.com/ipfs/go-cid"

	"xdao.co/hexdec/cidutil"
	"xdao.co/hexdec/storage"
)

// Ext is appended to every archived file name so outputs stay readable as text.
const Ext = ".txt"

// Archive files converted outputs under a directory, one read-only file per
// CID, sharded by the last two characters of the CID string.
type Archive struct {
	root string
}

// New opens an archive rooted at root, creating the directory if needed.
func New(root string) (*Archive, error) {
	if root == "" {
		return nil, errors.New("localfs: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Archive{root: root}, nil
}

// Root returns the archive directory.
func (a *Archive) Root() string { return a.root }

func (a *Archive) Put(output []byte) (cid.Cid, error) {
	id, err := cidutil.CIDv1RawSHA256CID(output)
	if err != nil {
		return cid.Undef, err
	}
	if !id.Defined() {
		return cid.Undef, storage.ErrInvalidCID
	}

	path := a.Path(id)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return cid.Undef, err
	}

	// Objects only appear under their final name once fully written.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".put-*")
	if err != nil {
		return cid.Undef, err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(output); err != nil {
		_ = tmp.Close()
		return cid.Undef, err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return cid.Undef, err
	}
	if err := tmp.Close(); err != nil {
		return cid.Undef, err
	}
	if err := os.Chmod(tmpName, 0o444); err != nil {
		return cid.Undef, err
	}

	if _, err := os.Stat(path); err == nil {
		existing, rerr := a.Get(id)
		if rerr != nil || !bytes.Equal(existing, output) {
			return cid.Undef, storage.ErrImmutable
		}
		return id, nil
	}
	if err := os.Rename(tmpName, path); err != nil {
		return cid.Undef, err
	}
	return id, nil
}

func (a *Archive) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, storage.ErrInvalidCID
	}
	b, err := os.ReadFile(a.Path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	got, err := cidutil.CIDv1RawSHA256CID(b)
	if err != nil {
		return nil, err
	}
	if got != id {
		return nil, storage.ErrCIDMismatch
	}
	return b, nil
}

func (a *Archive) Has(id cid.Cid) bool {
	if !id.Defined() {
		return false
	}
	_, err := os.Stat(a.Path(id))
	return err == nil
}

// Path returns the file an output with the given CID is (or would be) stored at.
func (a *Archive) Path(id cid.Cid) string {
	s := id.String()
	if len(s) < 2 {
		return filepath.Join(a.root, s+Ext)
	}
	return filepath.Join(a.root, s[len(s)-2:], s+Ext)
}
