package utility

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// TraceID tags a single event on its way through the pipeline. Ids are
// k-ordered, the millisecond timestamp sits in the high bits so later events
// compare greater within one process.
type TraceID = uint64

const (
	nodeBits     = 10
	sequenceBits = 13

	maxNode     = 1<<nodeBits - 1
	maxSequence = 1<<sequenceBits - 1

	nodeShift      = sequenceBits
	timestampShift = nodeBits + sequenceBits
)

var (
	sequence atomic.Uint64
	nodeID   = uint64(uuid.New().ID()) & maxNode
	epoch    = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
)

func CreateTraceID() TraceID {
	timestamp := uint64(time.Now().UnixMilli() - epoch)
	seq := sequence.Add(1) & maxSequence

	if seq == 0 {
		// Sequence space for this millisecond is spent, wait out the tick.
		time.Sleep(time.Millisecond)
		timestamp = uint64(time.Now().UnixMilli() - epoch)
	}

	return timestamp<<timestampShift | nodeID<<nodeShift | seq
}

func ParseTraceID(id TraceID) (timestamp time.Time, node uint64, seq uint64) {
	seq = id & maxSequence
	node = id >> nodeShift & maxNode
	timestamp = time.UnixMilli(epoch + int64(id>>timestampShift))
	return
}
