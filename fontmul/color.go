package fontmul

// color5to8 expands a 5-bit channel to 8 bits as the UO client hue tables do.
var color5to8 = [32]uint32{
	0x00, 0x08, 0x10, 0x18, 0x20, 0x29, 0x31, 0x39,
	0x41, 0x4A, 0x52, 0x5A, 0x62, 0x6A, 0x73, 0x7B,
	0x83, 0x8B, 0x94, 0x9C, 0xA4, 0xAC, 0xB4, 0xBD,
	0xC5, 0xCD, 0xD5, 0xDE, 0xE6, 0xEE, 0xF6, 0xFF,
}

// Color16To32 converts an RGB555 colour to 0x00BBGGRR. OR the result with
// 0xFF000000 for an opaque pixel.
func Color16To32(c uint16) uint32 {
	return color5to8[(c>>10)&0x1F] |
		color5to8[(c>>5)&0x1F]<<8 |
		color5to8[c&0x1F]<<16
}
