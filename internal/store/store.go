// Package store persists a channel's (root, index, next root) between CLI
// invocations. It has nothing to do with the cryptographic core: mam.Create
// and mam.Parse never import it. It exists because a command-line reader
// or writer needs somewhere durable to keep its place in a channel between
// runs, the same way the teacher's fsContainer keeps a signer's sequence
// number and cached subtrees on disk.
package store

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	"github.com/bwesterb/byteswriter"
	"github.com/cespare/xxhash"
	"github.com/edsrzf/mmap-go"
	"github.com/hashicorp/go-multierror"
	"github.com/nightlyone/lockfile"
)

// hashTrits is the trit width of a root or next-root hash, serialized as
// one byte per trit (values -1, 0, 1) for simplicity on disk.
const hashTrits = 243

// recordSize is the fixed size of a channel state file: two hashes, an
// 8-byte index, and an 8-byte xxhash checksum over everything before it.
const recordSize = hashTrits + hashTrits + 8 + 8

const magic = "mamstate"

// State is the durable record a CLI keeps between a channel's messages.
type State struct {
	Root     [hashTrits]int8
	Index    uint64
	NextRoot [hashTrits]int8
}

// Store guards a single state file with a lockfile, the same way
// fsContainer guards a private key file.
type Store struct {
	path  string
	flock lockfile.Lockfile
}

// Open acquires an exclusive lock on path+".lock" and returns a Store ready
// for Load/Save. Callers must call Close when done.
func Open(path string) (*Store, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, wrapErrorf(err, "store: resolving %s", path)
	}

	flock, err := lockfile.New(abs + ".lock")
	if err != nil {
		return nil, wrapErrorf(err, "store: creating lockfile for %s", abs)
	}
	if err := flock.TryLock(); err != nil {
		return nil, wrapErrorf(err, "store: %s is locked", abs)
	}

	return &Store{path: abs, flock: flock}, nil
}

// Load reads the channel state from disk via a read-only mmap, verifying
// the trailing xxhash checksum. If the file does not exist yet, Load
// returns the zero State and no error: a fresh channel has no prior state.
func (s *Store) Load() (State, error) {
	var st State

	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return st, nil
	}
	if err != nil {
		return st, wrapErrorf(err, "store: opening %s", s.path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return st, wrapErrorf(err, "store: stat %s", s.path)
	}
	if info.Size() != int64(len(magic)+recordSize) {
		return st, errorf("store: %s has unexpected size %d", s.path, info.Size())
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return st, wrapErrorf(err, "store: mmap %s", s.path)
	}
	defer m.Unmap()

	if string(m[:len(magic)]) != magic {
		return st, errorf("store: %s has invalid magic", s.path)
	}
	body := m[len(magic) : len(magic)+recordSize]
	payload := body[:recordSize-8]
	wantSum := binary.BigEndian.Uint64(body[recordSize-8:])
	if xxhash.Sum64(payload) != wantSum {
		return st, errorf("store: %s failed checksum verification", s.path)
	}

	for i := 0; i < hashTrits; i++ {
		st.Root[i] = int8(payload[i]) - 1
	}
	st.Index = binary.BigEndian.Uint64(payload[hashTrits : hashTrits+8])
	for i := 0; i < hashTrits; i++ {
		st.NextRoot[i] = int8(payload[hashTrits+8+i]) - 1
	}
	return st, nil
}

// Save atomically replaces the state file: assemble the fixed-layout
// record in memory, write it to a temp file, fsync, rename, fsync the
// parent directory, mirroring fsContainer.writeKeyFile.
func (s *Store) Save(st State) error {
	buf := make([]byte, len(magic)+recordSize)
	w := byteswriter.NewWriter(buf)

	if _, err := w.Write([]byte(magic)); err != nil {
		return wrapErrorf(err, "store: assembling magic")
	}
	for i := 0; i < hashTrits; i++ {
		if _, err := w.Write([]byte{byte(st.Root[i] + 1)}); err != nil {
			return wrapErrorf(err, "store: assembling root")
		}
	}
	if err := binary.Write(w, binary.BigEndian, st.Index); err != nil {
		return wrapErrorf(err, "store: assembling index")
	}
	for i := 0; i < hashTrits; i++ {
		if _, err := w.Write([]byte{byte(st.NextRoot[i] + 1)}); err != nil {
			return wrapErrorf(err, "store: assembling next root")
		}
	}

	payload := buf[len(magic) : len(magic)+recordSize-8]
	sum := xxhash.Sum64(payload)
	binary.BigEndian.PutUint64(buf[len(buf)-8:], sum)

	tmpPath := s.path + ".tmp"
	tmpFile, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return wrapErrorf(err, "store: creating temp file for %s", s.path)
	}

	if _, err := tmpFile.Write(buf); err != nil {
		tmpFile.Close()
		return wrapErrorf(err, "store: writing temp file")
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return wrapErrorf(err, "store: syncing temp file")
	}
	if err := tmpFile.Close(); err != nil {
		return wrapErrorf(err, "store: closing temp file")
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return wrapErrorf(err, "store: replacing %s", s.path)
	}

	dir, err := os.Open(filepath.Dir(s.path))
	if err != nil {
		return wrapErrorf(err, "store: opening parent directory of %s", s.path)
	}
	defer dir.Close()
	if err := dir.Sync(); err != nil {
		return wrapErrorf(err, "store: syncing parent directory of %s", s.path)
	}

	return nil
}

// Close releases the lock acquired by Open, aggregating every teardown
// error the way fsContainer.Close does.
func (s *Store) Close() error {
	var err error
	if unlockErr := s.flock.Unlock(); unlockErr != nil {
		err = multierror.Append(err, wrapErrorf(unlockErr, "store: releasing lock on %s", s.path))
	}
	if err != nil {
		return err
	}
	return nil
}

var _ io.Closer = (*Store)(nil)
