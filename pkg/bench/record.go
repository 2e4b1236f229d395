package bench

import (
	"encoding/csv"
	"io"
	"strconv"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// Search statistics of a single arena move
type Record struct {
	Game      int
	Ply       int
	Worker    int
	Contender string
	Move      string
	Fitness   string
	Depth     uint32
	Steps     uint64
	ElapsedMs int64
	Completed bool
}

var recordHeader = []string{
	"game", "ply", "worker", "contender", "move", "fitness", "depth", "steps", "elapsed_ms", "completed",
}

func (r Record) row() []string {
	return []string{
		strconv.Itoa(r.Game),
		strconv.Itoa(r.Ply),
		strconv.Itoa(r.Worker),
		r.Contender,
		r.Move,
		r.Fitness,
		strconv.FormatUint(uint64(r.Depth), 10),
		strconv.FormatUint(r.Steps, 10),
		strconv.FormatInt(r.ElapsedMs, 10),
		strconv.FormatBool(r.Completed),
	}
}

func parseRecord(row []string) (Record, error) {
	if len(row) != len(recordHeader) {
		return Record{}, errors.Errorf("record has %d fields, expected %d", len(row), len(recordHeader))
	}

	var (
		r   = Record{Contender: row[3], Move: row[4], Fitness: row[5]}
		err error
		u   uint64
	)
	if r.Game, err = strconv.Atoi(row[0]); err != nil {
		return r, errors.Wrap(err, "game")
	}
	if r.Ply, err = strconv.Atoi(row[1]); err != nil {
		return r, errors.Wrap(err, "ply")
	}
	if r.Worker, err = strconv.Atoi(row[2]); err != nil {
		return r, errors.Wrap(err, "worker")
	}
	if u, err = strconv.ParseUint(row[6], 10, 32); err != nil {
		return r, errors.Wrap(err, "depth")
	}
	r.Depth = uint32(u)
	if r.Steps, err = strconv.ParseUint(row[7], 10, 64); err != nil {
		return r, errors.Wrap(err, "steps")
	}
	if r.ElapsedMs, err = strconv.ParseInt(row[8], 10, 64); err != nil {
		return r, errors.Wrap(err, "elapsed_ms")
	}
	if r.Completed, err = strconv.ParseBool(row[9]); err != nil {
		return r, errors.Wrap(err, "completed")
	}
	return r, nil
}

// CSV writer of the arena records, optionally zstd compressed. Safe for concurrent use.
type RecordWriter struct {
	mu      sync.Mutex
	csv     *csv.Writer
	encoder *zstd.Encoder
}

func NewRecordWriter(w io.Writer, compress bool) (*RecordWriter, error) {
	rw := &RecordWriter{}
	if compress {
		encoder, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, errors.Wrap(err, "create zstd encoder")
		}
		rw.encoder = encoder
		w = encoder
	}

	rw.csv = csv.NewWriter(w)
	if err := rw.csv.Write(recordHeader); err != nil {
		return nil, errors.Wrap(err, "write header")
	}
	return rw, nil
}

func (rw *RecordWriter) Write(r Record) error {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	return errors.Wrap(rw.csv.Write(r.row()), "write record")
}

// Flush the buffered records, and finish the zstd frame. The underlying writer is not closed.
func (rw *RecordWriter) Close() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	rw.csv.Flush()
	if err := rw.csv.Error(); err != nil {
		return errors.Wrap(err, "flush records")
	}
	if rw.encoder != nil {
		return errors.Wrap(rw.encoder.Close(), "close zstd encoder")
	}
	return nil
}

// Reads back what a RecordWriter wrote
func ReadRecords(r io.Reader, compressed bool) ([]Record, error) {
	if compressed {
		decoder, err := zstd.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "create zstd decoder")
		}
		defer decoder.Close()
		r = decoder
	}

	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read records")
	}
	if len(rows) == 0 {
		return nil, errors.New("missing header")
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		record, err := parseRecord(row)
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", i+1)
		}
		records = append(records, record)
	}
	return records, nil
}
