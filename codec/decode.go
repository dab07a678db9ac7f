package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/lixenwraith/cpstamp/core"
	"github.com/lixenwraith/cpstamp/parameter"
)

// Decode reads a category file
//
// A stream that ends inside the header is a new file: no records, no error
// Any other header read failure is ErrRead, so the caller never mistakes an unreadable file for a new one
// A header with a foreign version yields ErrCorruptFile and no records
// Any failure inside the record list stops decoding and returns the records decoded so far
// alongside ErrTruncated or ErrMalformedRecord; a failing record is never returned
func Decode(r io.Reader) ([]core.Record, error) {
	version, err := readU32(r)
	if err != nil {
		return nil, headerErr(err)
	}
	if version != parameter.StampFileVersion {
		return nil, fmt.Errorf("%w: %d", ErrCorruptFile, version)
	}

	count, err := readU32(r)
	if err != nil {
		return nil, headerErr(err)
	}

	records := make([]core.Record, 0, min(count, parameter.DecodePreallocLimit))
	for i := uint32(0); i < count; i++ {
		rec, err := DecodeRecord(r)
		if err != nil {
			return records, fmt.Errorf("record %d of %d: %w", i, count, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// DecodeRecord reads one record, validating every constrained field
func DecodeRecord(r io.Reader) (core.Record, error) {
	var rec core.Record

	id, err := readU32(r)
	if err != nil {
		return core.Record{}, ErrTruncated
	}

	titleLen, err := readU32(r)
	if err != nil {
		return core.Record{}, ErrTruncated
	}
	if titleLen == 0 || titleLen > parameter.MaxEncodedTitle {
		return core.Record{}, fmt.Errorf("%w: title length %d", ErrMalformedRecord, titleLen)
	}

	title := make([]byte, titleLen)
	if _, err := io.ReadFull(r, title); err != nil {
		return core.Record{}, ErrTruncated
	}
	if i := bytes.IndexByte(title, 0); i >= 0 {
		title = title[:i]
	}

	kind, err := readU32(r)
	if err != nil {
		return core.Record{}, ErrTruncated
	}
	if !core.Kind(kind).Valid() {
		return core.Record{}, fmt.Errorf("%w: kind %d", ErrMalformedRecord, kind)
	}

	difficulty, err := readU32(r)
	if err != nil {
		return core.Record{}, ErrTruncated
	}
	if !core.Difficulty(difficulty).Valid() {
		return core.Record{}, fmt.Errorf("%w: difficulty %d", ErrMalformedRecord, difficulty)
	}

	earned, err := readU32(r)
	if err != nil {
		return core.Record{}, ErrTruncated
	}

	rec.ID = id
	rec.Title = string(title)
	rec.Kind = core.Kind(kind)
	rec.Difficulty = core.Difficulty(difficulty)
	rec.Earned = earned != 0
	return rec, nil
}

// IsRecoverable reports whether err came from a damaged file rather than an I/O failure
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrCorruptFile) || errors.Is(err, ErrTruncated) || errors.Is(err, ErrMalformedRecord)
}

// headerErr maps a short header to an empty file and anything else to ErrRead
func headerErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrRead, err)
}

func readU32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return order.Uint32(buf[:]), nil
}
