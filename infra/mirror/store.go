// Package mirror persists the latest known state of every open order so the
// book can be rebuilt after a restart without replaying the full event
// history. It is a cache of ledger state, never a source of truth.
package mirror

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"

	"fenrir/api/pb"
)

const (
	orderPrefix = "order/"
	lastSeqKey  = "meta/last_seq"
)

type Store struct {
	db *pebble.DB
}

func Open(dir string) (*Store, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put upserts one order's latest state.
func (s *Store) Put(o *pb.Order) error {
	val, err := pb.Marshal(o)
	if err != nil {
		return fmt.Errorf("mirror: encode order: %w", err)
	}
	return s.db.Set(keyFor(o.User, o.OrderId), val, pebble.NoSync)
}

// Delete drops an order; deleting an absent order is a no-op.
func (s *Store) Delete(user string, orderID uint32) error {
	return s.db.Delete(keyFor(user, orderID), pebble.NoSync)
}

// ForEach visits every mirrored order.
func (s *Store) ForEach(fn func(*pb.Order) error) error {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(orderPrefix),
		UpperBound: []byte(orderPrefix + "~"),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		var o pb.Order
		if err := pb.Unmarshal(iter.Value(), &o); err != nil {
			return fmt.Errorf("mirror: decode order at %q: %w", iter.Key(), err)
		}
		if err := fn(&o); err != nil {
			return err
		}
	}
	return iter.Error()
}

// SetLastSeq records the event sequence the mirror is consistent with; it
// is fsynced so replay after restart starts from a safe point.
func (s *Store) SetLastSeq(seq uint64) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, seq)
	return s.db.Set([]byte(lastSeqKey), buf, pebble.Sync)
}

// LastSeq returns the recorded sequence, zero when none was written yet.
func (s *Store) LastSeq() (uint64, error) {
	val, closer, err := s.db.Get([]byte(lastSeqKey))
	if errors.Is(err, pebble.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	defer closer.Close()
	if len(val) != 8 {
		return 0, errors.New("mirror: malformed last_seq")
	}
	return binary.BigEndian.Uint64(val), nil
}

func keyFor(user string, orderID uint32) []byte {
	return []byte(fmt.Sprintf("%s%s/%010d", orderPrefix, user, orderID))
}
