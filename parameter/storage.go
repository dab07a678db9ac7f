package parameter

// Category File Layout
const (
	// StampDirName is created under the user data directory on first use
	StampDirName = ".cpstamps"

	// StampFileVersion is the only accepted header version
	StampFileVersion = 0

	// StampFileMode for newly created category files
	StampFileMode = 0o644

	// StampDirMode for the stamp directory and missing ancestors
	StampDirMode = 0o755

	// MaxEncodedTitle bounds title_len on the wire, NUL included
	MaxEncodedTitle = 255

	// DecodePreallocLimit caps slice preallocation from an untrusted count field
	DecodePreallocLimit = 64
)

// Earn Queue
const (
	// EarnQueueCapacity is the ring slot count; one slot stays empty so at most 9 are pending
	EarnQueueCapacity = 10
)
