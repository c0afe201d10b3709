package journal

import "time"

type RecordType uint8

const (
	RecordPlace RecordType = iota
	RecordCancel
	RecordUpdate
	RecordTrigger
)

// Record is one journaled order event. Data carries the protobuf-encoded
// event payload; the journal itself does not interpret it.
type Record struct {
	Type RecordType
	Seq  uint64
	Time int64
	Data []byte
}

func NewRecord(t RecordType, seq uint64, data []byte) *Record {
	return &Record{
		Type: t,
		Seq:  seq,
		Time: time.Now().UnixNano(),
		Data: data,
	}
}
