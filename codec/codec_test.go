package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/cpstamp/core"
)

func sampleRecords() []core.Record {
	return []core.Record{
		{ID: 1, Title: "First Steps", Kind: core.KindGame, Difficulty: core.DifficultyEasy},
		{ID: 2, Title: "Puffle Rescue", Kind: core.KindGame, Difficulty: core.DifficultyExtreme, Earned: true},
		{ID: 40, Title: "Party Goer", Kind: core.KindEvent, Difficulty: core.DifficultyNormal, Earned: true},
		{ID: 7, Title: "", Kind: core.KindPin, Difficulty: core.DifficultyHard},
		{ID: 0xFFFFFFFF, Title: strings.Repeat("x", core.MaxTitleBytes), Kind: core.KindActivity},
	}
}

func encodeBytes(t *testing.T, records []core.Record) []byte {
	t.Helper()
	var buf bytes.Buffer
	n, err := Encode(&buf, records)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)
	return buf.Bytes()
}

func TestRoundTrip(t *testing.T) {
	records := sampleRecords()
	data := encodeBytes(t, records)

	got, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestRoundTripEmpty(t *testing.T) {
	data := encodeBytes(t, nil)
	assert.Len(t, data, 8)

	got, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEncodedSizeMatchesEncode(t *testing.T) {
	records := sampleRecords()
	data := encodeBytes(t, records)
	assert.Equal(t, int64(len(data)), EncodedSize(records))
}

func TestWireLayout(t *testing.T) {
	data := encodeBytes(t, []core.Record{{ID: 5, Title: "ab", Kind: core.KindGame, Difficulty: core.DifficultyHard, Earned: true}})

	want := []uint32{0, 1, 5, 3}
	for i, v := range want {
		assert.Equal(t, v, binary.LittleEndian.Uint32(data[i*4:]), "field %d", i)
	}
	assert.Equal(t, []byte{'a', 'b', 0}, data[16:19])
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(data[19:]))
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(data[23:]))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(data[27:]))
	assert.Len(t, data, 31)
}

func TestDecodeEmptyStreamIsNewFile(t *testing.T) {
	got, err := Decode(bytes.NewReader(nil))
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecodeHeaderReadFailure(t *testing.T) {
	diskErr := errors.New("input/output error")

	got, err := Decode(io.MultiReader(bytes.NewReader([]byte{0, 0}), &errReader{diskErr}))
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrRead)
	assert.ErrorIs(t, err, diskErr)
	assert.False(t, IsRecoverable(err))

	// Failing on the count word is the same
	_, err = Decode(io.MultiReader(bytes.NewReader([]byte{0, 0, 0, 0}), &errReader{diskErr}))
	assert.ErrorIs(t, err, ErrRead)
}

type errReader struct{ err error }

func (r *errReader) Read([]byte) (int, error) { return 0, r.err }

func TestDecodeVersionOnly(t *testing.T) {
	got, err := Decode(bytes.NewReader([]byte{0, 0, 0, 0}))
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecodeRejectsForeignVersion(t *testing.T) {
	data := encodeBytes(t, sampleRecords())
	binary.LittleEndian.PutUint32(data, 3)

	got, err := Decode(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrCorruptFile)
	assert.Empty(t, got)
	assert.True(t, IsRecoverable(err))
}

func TestDecodeTruncatedAtEveryPrefix(t *testing.T) {
	records := sampleRecords()
	data := encodeBytes(t, records)

	for cut := 0; cut < len(data); cut++ {
		got, err := Decode(bytes.NewReader(data[:cut]))
		require.LessOrEqual(t, len(got), len(records), "cut %d", cut)
		for i := range got {
			assert.Equal(t, records[i], got[i], "cut %d must yield a prefix", cut)
		}
		if cut >= 8 {
			assert.ErrorIs(t, err, ErrTruncated, "cut %d", cut)
		} else {
			assert.NoError(t, err, "cut %d", cut)
		}
	}
}

func TestDecodeStopsAtMalformedRecord(t *testing.T) {
	records := sampleRecords()[:3]

	tests := []struct {
		name  string
		patch func(rec []byte)
	}{
		{"kind out of range", func(rec []byte) {
			titleLen := binary.LittleEndian.Uint32(rec[4:])
			binary.LittleEndian.PutUint32(rec[8+titleLen:], 4)
		}},
		{"difficulty out of range", func(rec []byte) {
			titleLen := binary.LittleEndian.Uint32(rec[4:])
			binary.LittleEndian.PutUint32(rec[12+titleLen:], 99)
		}},
		{"title too long", func(rec []byte) {
			binary.LittleEndian.PutUint32(rec[4:], 256)
		}},
		{"title length zero", func(rec []byte) {
			binary.LittleEndian.PutUint32(rec[4:], 0)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := encodeBytes(t, records)
			// Damage the second record; the first must survive
			second := 8 + int(EncodedSize(records[:1])-8)
			tt.patch(data[second:])

			got, err := Decode(bytes.NewReader(data))
			assert.ErrorIs(t, err, ErrMalformedRecord)
			assert.Equal(t, records[:1], got)
		})
	}
}

func TestDecodeHugeCountDoesNotPreallocate(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0, 0, 0, 0})
	buf.Write([]byte{0xFF, 0xFF, 0xFF, 0xFF})

	got, err := Decode(&buf)
	assert.ErrorIs(t, err, ErrTruncated)
	assert.Empty(t, got)
	assert.LessOrEqual(t, cap(got), 64)
}

func TestDecodeTitleWithoutTerminator(t *testing.T) {
	var buf bytes.Buffer
	put := func(v uint32) { _ = binary.Write(&buf, binary.LittleEndian, v) }
	put(0)
	put(1)
	put(9)
	put(3)
	buf.WriteString("abc")
	put(uint32(core.KindPin))
	put(uint32(core.DifficultyEasy))
	put(7)

	got, err := Decode(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, core.Record{ID: 9, Title: "abc", Kind: core.KindPin, Earned: true}, got[0])
}

func TestEncodeRejectsLongTitle(t *testing.T) {
	var buf bytes.Buffer
	_, err := Encode(&buf, []core.Record{
		{ID: 1, Title: "ok"},
		{ID: 2, Title: strings.Repeat("y", core.MaxTitleBytes+1)},
	})
	assert.ErrorIs(t, err, ErrTitleTooLong)
	assert.Zero(t, buf.Len())

	err = EncodeRecord(&buf, core.Record{Title: strings.Repeat("y", 300)})
	assert.ErrorIs(t, err, ErrTitleTooLong)
}

func TestEncodeDecodeSingleRecord(t *testing.T) {
	rec := core.Record{ID: 12, Title: "Pin Collector", Kind: core.KindPin, Earned: true}

	var buf bytes.Buffer
	require.NoError(t, EncodeRecord(&buf, rec))

	got, err := DecodeRecord(&buf)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}
