package fontrender

import "sync"

const maxPooledPixels = 64 * 64

var pixelPool = sync.Pool{
	New: func() any {
		return make([]uint32, 0, maxPooledPixels)
	},
}

// getPixels returns a zeroed scratch buffer of n pixels.
func getPixels(n int) []uint32 {
	buf := pixelPool.Get().([]uint32)
	if cap(buf) < n {
		return make([]uint32, n)
	}
	buf = buf[:n]
	clear(buf)
	return buf
}

func putPixels(buf []uint32) {
	if cap(buf) > maxPooledPixels {
		return
	}
	pixelPool.Put(buf[:0])
}
