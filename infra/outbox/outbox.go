// Package outbox is the durable hand-off between the scanners and the
// publisher. Candidates are proposals, not fills: they move NEW -> SENT ->
// ACKED and are never interpreted as settlement. Persisting them keeps a
// restarted filler from re-proposing what it already submitted.
package outbox

import (
	"bytes"
	"encoding/binary"
	"errors"
	"time"

	"github.com/cockroachdb/pebble"
)

type State uint8

const (
	StateNew State = iota
	StateSent
	StateAcked
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateSent:
		return "SENT"
	case StateAcked:
		return "ACKED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Record is one stored candidate. Payload is opaque to the outbox.
type Record struct {
	ID          string
	State       State
	Retries     uint32
	LastAttempt int64
	Payload     []byte
}

// encoding: [state:1][retries:4][lastAttempt:8][payload]
func encodeRecord(r Record) []byte {
	buf := make([]byte, 1+4+8+len(r.Payload))
	buf[0] = byte(r.State)
	binary.BigEndian.PutUint32(buf[1:5], r.Retries)
	binary.BigEndian.PutUint64(buf[5:13], uint64(r.LastAttempt))
	copy(buf[13:], r.Payload)
	return buf
}

func decodeRecord(id string, b []byte) (Record, error) {
	if len(b) < 13 {
		return Record{}, errors.New("outbox: short record")
	}
	return Record{
		ID:          id,
		State:       State(b[0]),
		Retries:     binary.BigEndian.Uint32(b[1:5]),
		LastAttempt: int64(binary.BigEndian.Uint64(b[5:13])),
		Payload:     append([]byte(nil), b[13:]...),
	}, nil
}

type Outbox struct {
	db *pebble.DB
}

func Open(dir string) (*Outbox, error) {
	db, err := pebble.Open(dir, &pebble.Options{
		DisableWAL: false, // candidates must survive a crash
	})
	if err != nil {
		return nil, err
	}
	return &Outbox{db: db}, nil
}

func (o *Outbox) Close() error {
	return o.db.Close()
}

// PutNew inserts a fresh candidate. An existing record under the same ID is
// left untouched, making candidate insertion idempotent per scan.
func (o *Outbox) PutNew(id string, payload []byte) error {
	key := keyFor(id)
	if _, closer, err := o.db.Get(key); err == nil {
		_ = closer.Close()
		return nil
	} else if !errors.Is(err, pebble.ErrNotFound) {
		return err
	}
	rec := Record{ID: id, State: StateNew, Payload: payload}
	return o.db.Set(key, encodeRecord(rec), pebble.Sync)
}

// UpdateState advances a candidate's state after a send attempt.
func (o *Outbox) UpdateState(id string, state State, retries uint32) error {
	key := keyFor(id)
	val, closer, err := o.db.Get(key)
	if err != nil {
		return err
	}
	rec, err := decodeRecord(id, val)
	_ = closer.Close()
	if err != nil {
		return err
	}
	rec.State = state
	rec.Retries = retries
	rec.LastAttempt = time.Now().UnixNano()
	return o.db.Set(key, encodeRecord(rec), pebble.Sync)
}

// Delete removes an acked (or abandoned) candidate.
func (o *Outbox) Delete(id string) error {
	return o.db.Delete(keyFor(id), pebble.Sync)
}

// Get returns the current record for a candidate.
func (o *Outbox) Get(id string) (Record, error) {
	val, closer, err := o.db.Get(keyFor(id))
	if err != nil {
		return Record{}, err
	}
	defer closer.Close()
	return decodeRecord(id, val)
}

// ScanByState iterates all candidates in the given state, in key order.
func (o *Outbox) ScanByState(state State, fn func(Record) error) error {
	iter, err := o.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(prefix),
		UpperBound: []byte(prefix + "~"),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		rec, err := decodeRecord(parseKey(iter.Key()), iter.Value())
		if err != nil {
			return err
		}
		if rec.State != state {
			continue
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return iter.Error()
}

const prefix = "candidate/"

func keyFor(id string) []byte {
	return []byte(prefix + id)
}

func parseKey(k []byte) string {
	return string(bytes.TrimPrefix(k, []byte(prefix)))
}
