package content

import (
	"bytes"
	"encoding/binary"
	"math"
)

// DefaultDPI is reported when an image carries no resolution metadata.
const DefaultDPI = 72

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// ImageDPI reads the resolution recorded in a PNG pHYs chunk or a JPEG JFIF
// header. Unknown formats and missing metadata yield (72, 72).
func ImageDPI(data []byte) (int, int) {
	switch {
	case bytes.HasPrefix(data, pngSignature):
		if x, y, ok := pngDPI(data); ok {
			return x, y
		}
	case len(data) > 2 && data[0] == 0xFF && data[1] == 0xD8:
		if x, y, ok := jpegDPI(data); ok {
			return x, y
		}
	}
	return DefaultDPI, DefaultDPI
}

func pngDPI(data []byte) (int, int, bool) {
	for i := len(pngSignature); i+8 <= len(data); {
		length := int(binary.BigEndian.Uint32(data[i:]))
		kind := string(data[i+4 : i+8])
		body := i + 8
		if body+length > len(data) {
			return 0, 0, false
		}

		switch kind {
		case "pHYs":
			if length < 9 {
				return 0, 0, false
			}
			// unit 1 is pixels per meter; unit 0 is aspect ratio only
			if data[body+8] != 1 {
				return 0, 0, false
			}
			x := float64(binary.BigEndian.Uint32(data[body:]))
			y := float64(binary.BigEndian.Uint32(data[body+4:]))
			return int(math.Round(x * 0.0254)), int(math.Round(y * 0.0254)), true
		case "IDAT", "IEND":
			return 0, 0, false
		}

		i = body + length + 4
	}
	return 0, 0, false
}

func jpegDPI(data []byte) (int, int, bool) {
	for i := 2; i+4 <= len(data); {
		if data[i] != 0xFF {
			return 0, 0, false
		}
		marker := data[i+1]
		if marker == 0xD8 || marker == 0x01 || (marker >= 0xD0 && marker <= 0xD7) {
			i += 2
			continue
		}
		if marker == 0xDA || marker == 0xD9 {
			return 0, 0, false
		}

		length := int(binary.BigEndian.Uint16(data[i+2:]))
		seg := i + 4
		end := i + 2 + length
		if length < 2 || end > len(data) {
			return 0, 0, false
		}

		if marker == 0xE0 && end-seg >= 12 && string(data[seg:seg+5]) == "JFIF\x00" {
			unit := data[seg+7]
			x := float64(binary.BigEndian.Uint16(data[seg+8:]))
			y := float64(binary.BigEndian.Uint16(data[seg+10:]))
			switch unit {
			case 1:
				return int(x), int(y), true
			case 2:
				return int(math.Round(x * 2.54)), int(math.Round(y * 2.54)), true
			}
			return 0, 0, false
		}

		i = end
	}
	return 0, 0, false
}
