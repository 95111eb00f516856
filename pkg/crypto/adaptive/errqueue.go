package adaptive

// errorQueues holds the most recent errors per thread id.
var errorQueues = make(map[uint64][]error)

const maxQueuedErrors = 16

func pushError(err error) {
	release := acquire(LockErrorQueue, LockWrite)
	defer release()

	id := threadID()
	q := append(errorQueues[id], err)
	if len(q) > maxQueuedErrors {
		q = q[len(q)-maxQueuedErrors:]
	}
	errorQueues[id] = q
}

// LastError returns the most recent error recorded on the calling thread,
// or nil.
func LastError() error {
	release := acquire(LockErrorQueue, LockRead)
	defer release()

	q := errorQueues[threadID()]
	if len(q) == 0 {
		return nil
	}
	return q[len(q)-1]
}

// ClearErrors drops the calling thread's recorded errors.
func ClearErrors() {
	release := acquire(LockErrorQueue, LockWrite)
	defer release()

	id := threadID()
	if q, ok := errorQueues[id]; ok {
		errorQueues[id] = q[:0]
	}
}

// RemoveThreadState releases the calling thread's error queue. Threads
// call it before exiting.
func RemoveThreadState() {
	release := acquire(LockErrorQueue, LockWrite)
	defer release()

	delete(errorQueues, threadID())
}

// threadStates returns the number of threads holding an error queue.
func threadStates() int {
	release := acquire(LockErrorQueue, LockRead)
	defer release()

	return len(errorQueues)
}
