package exifmeta

import (
	"fmt"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	exifundefined "github.com/dsoprea/go-exif/v3/undefined"
)

// Fields holds the writable EXIF tags. Empty strings and a zero
// Orientation mean "leave the existing value untouched".
type Fields struct {
	ImageDescription string
	Artist           string
	Copyright        string
	Software         string
	DateTime         string
	DateTimeOriginal string
	UserComment      string
	Make             string
	Model            string
	Orientation      int
}

// Empty reports whether no field is set.
func (f Fields) Empty() bool {
	return f == Fields{}
}

// newRootBuilder creates an empty EXIF builder with the standard tag
// mapping.
func newRootBuilder() (*exif.IfdBuilder, error) {
	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		return nil, fmt.Errorf("exifmeta: ifd mapping: %w", err)
	}
	ti := exif.NewTagIndex()
	ib := exif.NewIfdBuilder(im, ti, exifcommon.IfdStandardIfdIdentity, exifcommon.EncodeDefaultByteOrder)
	return ib, nil
}

// builderFromRaw reconstructs a builder from an existing raw EXIF blob
// so that a write preserves tags it does not touch.
func builderFromRaw(raw []byte) (*exif.IfdBuilder, error) {
	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		return nil, fmt.Errorf("exifmeta: ifd mapping: %w", err)
	}
	ti := exif.NewTagIndex()
	_, index, err := exif.Collect(im, ti, raw)
	if err != nil {
		return nil, fmt.Errorf("exifmeta: parse existing exif: %w", err)
	}
	return exif.NewIfdBuilderFromExistingChain(index.RootIfd), nil
}

// apply sets every present field on the builder. IFD0 carries the
// descriptive tags; DateTimeOriginal and UserComment live in the Exif
// sub-IFD.
func apply(rootIb *exif.IfdBuilder, f Fields) error {
	ifd0, err := exif.GetOrCreateIbFromRootIb(rootIb, "IFD0")
	if err != nil {
		return fmt.Errorf("exifmeta: ifd0 builder: %w", err)
	}

	ifd0Tags := []struct {
		name  string
		value string
	}{
		{"ImageDescription", f.ImageDescription},
		{"Artist", f.Artist},
		{"Copyright", f.Copyright},
		{"Software", f.Software},
		{"DateTime", f.DateTime},
		{"Make", f.Make},
		{"Model", f.Model},
	}
	for _, tag := range ifd0Tags {
		if tag.value == "" {
			continue
		}
		if err := ifd0.SetStandardWithName(tag.name, tag.value); err != nil {
			return fmt.Errorf("exifmeta: set %s: %w", tag.name, err)
		}
	}

	if f.Orientation != 0 {
		if f.Orientation < 1 || f.Orientation > 8 {
			return fmt.Errorf("exifmeta: orientation %d outside 1..8", f.Orientation)
		}
		if err := ifd0.SetStandardWithName("Orientation", []uint16{uint16(f.Orientation)}); err != nil {
			return fmt.Errorf("exifmeta: set Orientation: %w", err)
		}
	}

	if f.DateTimeOriginal == "" && f.UserComment == "" {
		return nil
	}

	exifIb, err := exif.GetOrCreateIbFromRootIb(rootIb, "IFD0/Exif")
	if err != nil {
		return fmt.Errorf("exifmeta: exif sub-ifd builder: %w", err)
	}
	if f.DateTimeOriginal != "" {
		if err := exifIb.SetStandardWithName("DateTimeOriginal", f.DateTimeOriginal); err != nil {
			return fmt.Errorf("exifmeta: set DateTimeOriginal: %w", err)
		}
	}
	if f.UserComment != "" {
		comment := exifundefined.Tag9286UserComment{
			EncodingType:  exifundefined.TagUndefinedType_9286_UserComment_Encoding_ASCII,
			EncodingBytes: []byte(f.UserComment),
		}
		if err := exifIb.SetStandardWithName("UserComment", comment); err != nil {
			return fmt.Errorf("exifmeta: set UserComment: %w", err)
		}
	}
	return nil
}
