package adaptive

import (
	"crypto/rand"
	"io"
)

const randomPoolSize = 4096

// randomPool buffers bytes from crypto/rand so nonce generation does not
// hit the system source on every call.
var randomPool struct {
	buf [randomPoolSize]byte
	off int
}

func init() {
	randomPool.off = randomPoolSize
}

// readRandom fills b from the shared pool.
func readRandom(b []byte) error {
	release := acquire(LockRandom, LockWrite)
	defer release()

	for len(b) > 0 {
		if randomPool.off == randomPoolSize {
			if _, err := io.ReadFull(rand.Reader, randomPool.buf[:]); err != nil {
				return err
			}
			randomPool.off = 0
		}
		n := copy(b, randomPool.buf[randomPool.off:])
		for i := randomPool.off; i < randomPool.off+n; i++ {
			randomPool.buf[i] = 0
		}
		randomPool.off += n
		b = b[n:]
	}
	return nil
}
