package fontrender

// pickMask is a packed bitset of a sprite's non-transparent pixels.
type pickMask struct {
	w, h int
	bits []uint64
}

// Picker answers "is this pixel of that sprite opaque" for pointer
// hit-testing.
type Picker struct {
	masks map[uint32]*pickMask
}

func NewPicker() *Picker {
	return &Picker{masks: make(map[uint32]*pickMask)}
}

// Set records the opaque pixels of a w x h sprite under key.
func (p *Picker) Set(key uint32, w, h int, pix []uint32) {
	if w <= 0 || h <= 0 || len(pix) < w*h {
		return
	}
	m := &pickMask{w: w, h: h, bits: make([]uint64, (w*h+63)/64)}
	for i, v := range pix[:w*h] {
		if v != 0 {
			m.bits[i>>6] |= 1 << uint(i&63)
		}
	}
	p.masks[key] = m
}

// Get reports whether x, y hits an opaque pixel of the sprite stored
// under key. Unknown keys and coordinates outside the sprite miss.
func (p *Picker) Get(key uint32, x, y int) bool {
	m := p.masks[key]
	if m == nil || x < 0 || y < 0 || x >= m.w || y >= m.h {
		return false
	}
	i := y*m.w + x
	return m.bits[i>>6]&(1<<uint(i&63)) != 0
}

// Has reports whether a mask exists for key.
func (p *Picker) Has(key uint32) bool {
	_, ok := p.masks[key]
	return ok
}
