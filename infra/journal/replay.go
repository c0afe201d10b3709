package journal

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

var ErrCorruptRecord = errors.New("journal: corrupt record")

type ReplayHandler func(*Record) error

// Replay reads every segment in order and hands each record to fn. Records
// below fromSeq are skipped (they are covered by the mirror snapshot). The
// sequence must be strictly increasing; a truncated tail record terminates
// replay cleanly, anything else is an error.
func Replay(dir string, fromSeq uint64, fn ReplayHandler) (lastSeq uint64, err error) {
	files, err := segmentFiles(dir)
	if err != nil {
		return 0, err
	}

	lastSeq = fromSeq
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return lastSeq, err
		}

		for {
			rec, err := readRecord(f)
			if err == io.EOF {
				break
			}
			if errors.Is(err, io.ErrUnexpectedEOF) {
				// Torn tail write from a crash; everything before it
				// already replayed.
				break
			}
			if err != nil {
				_ = f.Close()
				return lastSeq, err
			}

			if rec.Seq <= fromSeq {
				continue
			}
			if rec.Seq <= lastSeq {
				_ = f.Close()
				return lastSeq, fmt.Errorf("journal: non-monotonic seq %d after %d", rec.Seq, lastSeq)
			}
			lastSeq = rec.Seq

			if err := fn(rec); err != nil {
				_ = f.Close()
				return lastSeq, err
			}
		}
		_ = f.Close()
	}
	return lastSeq, nil
}

func readRecord(r io.Reader) (*Record, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}

	l := binary.BigEndian.Uint32(header[17:21])
	body := make([]byte, l+4)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}

	payload := body[:l]
	crc := binary.BigEndian.Uint32(body[l:])
	if !checksumValid(append(header, payload...), crc) {
		return nil, ErrCorruptRecord
	}

	return &Record{
		Type: RecordType(header[0]),
		Seq:  binary.BigEndian.Uint64(header[1:9]),
		Time: int64(binary.BigEndian.Uint64(header[9:17])),
		Data: payload,
	}, nil
}

// maxSeqInSegment scans a segment and returns the highest sequence found.
// Used only for snapshot-based truncation.
func maxSeqInSegment(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var maxSeq uint64
	for {
		header := make([]byte, headerSize)
		if _, err := io.ReadFull(f, header); err != nil {
			if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
				return maxSeq, nil
			}
			return maxSeq, err
		}

		if seq := binary.BigEndian.Uint64(header[1:9]); seq > maxSeq {
			maxSeq = seq
		}

		payloadLen := binary.BigEndian.Uint32(header[17:21])
		if _, err := f.Seek(int64(payloadLen+4), io.SeekCurrent); err != nil {
			return maxSeq, err
		}
	}
}
