package adaptive

// Stats counts cipher operations since process start.
type Stats struct {
	Encryptions uint64 `json:"encryptions"`
	Decryptions uint64 `json:"decryptions"`
	Failures    uint64 `json:"failures"`
}

var stats Stats

func countOp(encrypt bool, failed bool) {
	release := acquire(LockStats, LockWrite)
	defer release()

	if encrypt {
		stats.Encryptions++
	} else {
		stats.Decryptions++
	}
	if failed {
		stats.Failures++
	}
}

// ReadStats returns a copy of the operation counters.
func ReadStats() Stats {
	release := acquire(LockStats, LockRead)
	defer release()
	return stats
}
