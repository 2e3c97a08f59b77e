package transcoder

import "sync"

const (
	// Pool limits to prevent memory bloat
	poolMaxScratch  = 64 << 10 // max pooled bytes
	poolInitScratch = 256
	poolMaxUnits    = 32 << 10 // max pooled units
	poolInitUnits   = 128
)

// byte scratch for little-endian staging before a single Memory.Write
var scratchPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 0, poolInitScratch)
		return &buf
	},
}

func getScratch() *[]byte {
	return scratchPool.Get().(*[]byte)
}

func putScratch(buf *[]byte) {
	if buf == nil || cap(*buf) > poolMaxScratch {
		return // reject oversized
	}
	*buf = (*buf)[:0]
	scratchPool.Put(buf)
}

// unit scratch for lifted content before decoding
var unitsPool = sync.Pool{
	New: func() any {
		buf := make([]uint16, 0, poolInitUnits)
		return &buf
	},
}

func getUnits() *[]uint16 {
	return unitsPool.Get().(*[]uint16)
}

func putUnits(buf *[]uint16) {
	if buf == nil || cap(*buf) > poolMaxUnits {
		return
	}
	*buf = (*buf)[:0]
	unitsPool.Put(buf)
}
