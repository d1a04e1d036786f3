package imageturbo

import "errors"

// Sentinel errors returned by the operation surface. Callers match
// them with errors.Is; the wrapped message carries the detail.
var (
	// ErrDecode indicates the input buffer's header was unreadable or
	// its payload corrupt.
	ErrDecode = errors.New("imageturbo: decode failed")

	// ErrUnsupportedFormat indicates the operation is not valid for
	// the detected input format, such as an EXIF write on a PNG.
	ErrUnsupportedFormat = errors.New("imageturbo: unsupported format")

	// ErrInvalidOption indicates a malformed or out-of-range option,
	// such as a bad aspect-ratio string or a zero target dimension.
	ErrInvalidOption = errors.New("imageturbo: invalid option")

	// ErrInvalidHash indicates a hash string or blob that could not be
	// decoded back into a hash value.
	ErrInvalidHash = errors.New("imageturbo: invalid hash")

	// ErrProcessing wraps a failure inside an encode, resize or
	// hashing step after options were validated.
	ErrProcessing = errors.New("imageturbo: processing failed")

	// ErrTask indicates an asynchronous call could not be admitted to
	// the worker pool.
	ErrTask = errors.New("imageturbo: task failed")
)
