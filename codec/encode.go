// Package codec reads and writes the per-category stamp file
//
// Layout, all fields little-endian u32:
//
//	version | count | record[count]
//	record = id | title_len | title (title_len bytes, NUL included) | kind | difficulty | earned
package codec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/lixenwraith/cpstamp/core"
	"github.com/lixenwraith/cpstamp/parameter"
)

var order = binary.LittleEndian

// fixed per-record bytes excluding the title payload
const recordOverhead = 5 * 4

// Encode writes the header and every record in list order
// Titles are validated up front so a failing encode writes nothing
func Encode(w io.Writer, records []core.Record) (int64, error) {
	for i := range records {
		if err := checkTitle(records[i].Title); err != nil {
			return 0, fmt.Errorf("record %d (id %d): %w", i, records[i].ID, err)
		}
	}

	bw := bufio.NewWriter(w)
	cw := &countingWriter{w: bw}

	writeU32(cw, parameter.StampFileVersion)
	writeU32(cw, uint32(len(records)))
	for i := range records {
		encodeRecord(cw, &records[i])
	}

	if cw.err == nil {
		cw.err = bw.Flush()
	}
	return cw.n, cw.err
}

// EncodeRecord writes a single record without header
func EncodeRecord(w io.Writer, r core.Record) error {
	if err := checkTitle(r.Title); err != nil {
		return err
	}
	cw := &countingWriter{w: w}
	encodeRecord(cw, &r)
	return cw.err
}

// EncodedSize returns the exact byte length Encode produces for records
func EncodedSize(records []core.Record) int64 {
	size := int64(8)
	for i := range records {
		size += recordOverhead + int64(len(records[i].Title)) + 1
	}
	return size
}

func encodeRecord(cw *countingWriter, r *core.Record) {
	writeU32(cw, r.ID)
	writeU32(cw, uint32(len(r.Title)+1))
	cw.Write([]byte(r.Title))
	cw.Write([]byte{0})
	writeU32(cw, uint32(r.Kind))
	writeU32(cw, uint32(r.Difficulty))
	var earned uint32
	if r.Earned {
		earned = 1
	}
	writeU32(cw, earned)
}

func checkTitle(title string) error {
	if len(title)+1 > parameter.MaxEncodedTitle {
		return ErrTitleTooLong
	}
	return nil
}

func writeU32(cw *countingWriter, v uint32) {
	var buf [4]byte
	order.PutUint32(buf[:], v)
	cw.Write(buf[:])
}

// countingWriter latches the first error so field writes need no per-call checks
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	if cw.err != nil {
		return 0, cw.err
	}
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	cw.err = err
	return n, err
}
