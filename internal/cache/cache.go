// Package cache persists a compiled grammar (the BNF source it was read
// from, its start symbol, and the k the caller built it at) to a binary
// cache file, so a CLI user doesn't have to re-tokenize and re-parse a
// large grammar file on every run. Grounded on the rezi/uuid pairing
// dekarrin-tunaq's sqlite DAO layer uses to persist serialized state
// (server/dao/sqlite/sessions.go, sqlite.go): rezi.EncBinary/DecBinary for
// the wire format, a uuid.UUID build tag to detect a stale cache.
package cache

import (
	"encoding/binary"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
)

// Snapshot is the cached, rezi-serializable form of a compiled grammar. It
// does not hold the built LR state graph itself (that graph is cheap and
// deterministic to rebuild from the grammar source and k; see DESIGN.md)
// but it does let a caller skip re-reading and re-tokenizing the BNF file
// and detect whether a cache file still matches the source it names.
type Snapshot struct {
	BuildID uuid.UUID
	Source  string
	Start   string
	K       int
	Engine  string
}

// NewSnapshot tags a fresh build ID onto a grammar's source text, start
// symbol, k, and engine name.
func NewSnapshot(source, start string, k int, engine string) (Snapshot, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return Snapshot{}, fmt.Errorf("cache: generate build id: %w", err)
	}
	return Snapshot{BuildID: id, Source: source, Start: start, K: k, Engine: engine}, nil
}

// Save writes snap to path in rezi's binary format.
func Save(path string, snap Snapshot) error {
	enc := rezi.EncBinary(snap)
	return os.WriteFile(path, enc, 0644)
}

// Load reads a Snapshot previously written by Save. It returns an error if
// the file is missing, unreadable, or not a well-formed rezi encoding.
func Load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("cache: read %s: %w", path, err)
	}

	var snap Snapshot
	n, err := rezi.DecBinary(data, &snap)
	if err != nil {
		return Snapshot{}, fmt.Errorf("cache: decode %s: %w", path, err)
	}
	if n != len(data) {
		return Snapshot{}, fmt.Errorf("cache: %s has %d trailing byte(s) after decoding", path, len(data)-n)
	}

	return snap, nil
}

// Stale reports whether snap no longer matches the given source text, start
// symbol, k, or engine - i.e. whether the caller should recompile rather
// than trust the cache.
func (snap Snapshot) Stale(source, start string, k int, engine string) bool {
	return snap.Source != source || snap.Start != start || snap.K != k || snap.Engine != engine
}

// MarshalBinary implements encoding.BinaryMarshaler so rezi.EncBinary can
// serialize a Snapshot. Fields are appended in declaration order, each
// length-prefixed so UnmarshalBinary can read them back without ambiguity -
// the same per-field, length-prefixed style dekarrin-tunaq's tunascript
// package uses for its own AST node binary encoding.
func (snap Snapshot) MarshalBinary() ([]byte, error) {
	idBytes, err := snap.BuildID.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("cache: encode build id: %w", err)
	}

	var data []byte
	data = append(data, idBytes...)
	data = append(data, encBinaryString(snap.Source)...)
	data = append(data, encBinaryString(snap.Start)...)
	data = append(data, encBinaryInt(snap.K)...)
	data = append(data, encBinaryString(snap.Engine)...)

	return data, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler, reading back a
// Snapshot in the exact field order MarshalBinary wrote it in.
func (snap *Snapshot) UnmarshalBinary(data []byte) error {
	if len(data) < 16 {
		return fmt.Errorf("cache: snapshot data too short for build id")
	}
	if err := snap.BuildID.UnmarshalBinary(data[:16]); err != nil {
		return fmt.Errorf("cache: decode build id: %w", err)
	}
	data = data[16:]

	var n int
	var err error

	snap.Source, n, err = decBinaryString(data)
	if err != nil {
		return fmt.Errorf("cache: decode source: %w", err)
	}
	data = data[n:]

	snap.Start, n, err = decBinaryString(data)
	if err != nil {
		return fmt.Errorf("cache: decode start: %w", err)
	}
	data = data[n:]

	snap.K, n, err = decBinaryInt(data)
	if err != nil {
		return fmt.Errorf("cache: decode k: %w", err)
	}
	data = data[n:]

	snap.Engine, _, err = decBinaryString(data)
	if err != nil {
		return fmt.Errorf("cache: decode engine: %w", err)
	}

	return nil
}

// encBinaryString length-prefixes s with its rune count, then appends its
// UTF-8 bytes one rune at a time.
func encBinaryString(s string) []byte {
	enc := make([]byte, 0, len(s)+4)

	chCount := 0
	for _, ch := range s {
		buf := make([]byte, utf8.UTFMax)
		n := utf8.EncodeRune(buf, ch)
		enc = append(enc, buf[:n]...)
		chCount++
	}

	return append(encBinaryInt(chCount), enc...)
}

// decBinaryString reads back a string written by encBinaryString, returning
// the value and the number of bytes consumed from data.
func decBinaryString(data []byte) (string, int, error) {
	runeCount, prefixLen, err := decBinaryInt(data)
	if err != nil {
		return "", 0, fmt.Errorf("decoding string rune count: %w", err)
	}
	if runeCount < 0 {
		return "", 0, fmt.Errorf("string rune count < 0")
	}
	data = data[prefixLen:]

	readBytes := prefixLen
	var sb strings.Builder

	for i := 0; i < runeCount; i++ {
		ch, n := utf8.DecodeRune(data)
		if ch == utf8.RuneError {
			if n == 0 {
				return "", 0, fmt.Errorf("unexpected end of data in string")
			}
			return "", 0, fmt.Errorf("invalid UTF-8 encoding in string")
		}
		sb.WriteRune(ch)
		readBytes += n
		data = data[n:]
	}

	return sb.String(), readBytes, nil
}

// encBinaryInt length-prefixes i's varint encoding with its own byte length,
// so decBinaryInt knows exactly how many bytes to consume.
func encBinaryInt(i int) []byte {
	buf := make([]byte, binary.MaxVarintLen64)
	n := binary.PutVarint(buf, int64(i))

	enc := make([]byte, 0, n+1)
	enc = append(enc, byte(n))
	enc = append(enc, buf[:n]...)
	return enc
}

// decBinaryInt reads back an int written by encBinaryInt, returning the
// value and the number of bytes consumed from data.
func decBinaryInt(data []byte) (int, int, error) {
	if len(data) < 1 {
		return 0, 0, fmt.Errorf("unexpected end of data")
	}
	n := int(data[0])
	if len(data) < 1+n {
		return 0, 0, fmt.Errorf("unexpected end of data")
	}

	val, read := binary.Varint(data[1 : 1+n])
	if read <= 0 {
		return 0, 0, fmt.Errorf("malformed varint")
	}

	return int(val), 1 + n, nil
}
