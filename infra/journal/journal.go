package journal

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

const headerSize = 1 + 8 + 8 + 4

// Config controls where segments live and when they rotate.
type Config struct {
	Dir         string
	SegmentSize int64
}

// Journal is a segmented append-only log of order events. Together with the
// mirror snapshot it lets the book be rebuilt after a restart; it is not a
// ledger of record.
type Journal struct {
	dir      string
	segSize  int64
	current  *segment
	segIndex int
}

func Open(cfg Config) (*Journal, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, err
	}

	index, err := lastSegmentIndex(cfg.Dir)
	if err != nil {
		return nil, err
	}
	seg, err := openSegment(cfg.Dir, index)
	if err != nil {
		return nil, err
	}

	if cfg.SegmentSize <= 0 {
		cfg.SegmentSize = 4 << 20
	}
	return &Journal{
		dir:      cfg.Dir,
		segSize:  cfg.SegmentSize,
		current:  seg,
		segIndex: index,
	}, nil
}

// Append frames and writes one record:
// [type:1][seq:8][time:8][len:4][payload][crc:4].
func (j *Journal) Append(r *Record) error {
	payloadLen := uint32(len(r.Data))
	buf := make([]byte, headerSize+int(payloadLen)+4)

	buf[0] = byte(r.Type)
	binary.BigEndian.PutUint64(buf[1:9], r.Seq)
	binary.BigEndian.PutUint64(buf[9:17], uint64(r.Time))
	binary.BigEndian.PutUint32(buf[17:21], payloadLen)
	copy(buf[headerSize:], r.Data)

	crc := checksum(buf[:headerSize+int(payloadLen)])
	binary.BigEndian.PutUint32(buf[headerSize+int(payloadLen):], crc)

	if err := j.current.append(buf); err != nil {
		return err
	}
	if j.current.offset >= j.segSize {
		return j.rotate()
	}
	return nil
}

func (j *Journal) Sync() error {
	return j.current.sync()
}

func (j *Journal) Close() error {
	return j.current.close()
}

func (j *Journal) rotate() error {
	_ = j.current.close()
	j.segIndex++

	seg, err := openSegment(j.dir, j.segIndex)
	if err != nil {
		return err
	}
	j.current = seg
	return nil
}

// TruncateBefore removes whole segments whose records are all covered by a
// mirror snapshot at seq. The current segment is never removed.
func (j *Journal) TruncateBefore(seq uint64) error {
	files, err := segmentFiles(j.dir)
	if err != nil {
		return err
	}
	for _, path := range files[:max(len(files)-1, 0)] {
		maxSeq, err := maxSeqInSegment(path)
		if err != nil {
			continue
		}
		if maxSeq <= seq {
			_ = os.Remove(path)
		}
	}
	return nil
}

func segmentFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "segment-*.wal"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func lastSegmentIndex(dir string) (int, error) {
	files, err := segmentFiles(dir)
	if err != nil || len(files) == 0 {
		return 0, err
	}
	var index int
	if _, err := fmt.Sscanf(filepath.Base(files[len(files)-1]), "segment-%06d.wal", &index); err != nil {
		return 0, err
	}
	return index, nil
}
