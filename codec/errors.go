package codec

import "errors"

// Sentinel errors
// Apart from ErrRead none of these are fatal to the caller: the registry logs them and keeps whatever decoded
var (
	ErrRead            = errors.New("stamp file: read failed")
	ErrCorruptFile     = errors.New("stamp file: unsupported version")
	ErrTruncated       = errors.New("stamp file: truncated record")
	ErrMalformedRecord = errors.New("stamp file: malformed record")
	ErrTitleTooLong    = errors.New("stamp title exceeds encoded length limit")
)
