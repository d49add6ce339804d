package positions

// lotQueue is an array-backed FIFO of open lots. The head index advances as
// lots are fully consumed; the backing slice is compacted once the dead prefix
// outgrows the live part.
type lotQueue struct {
	lots []OpenLot
	head int
}

func (q *lotQueue) push(lot OpenLot) {
	q.lots = append(q.lots, lot)
}

func (q *lotQueue) len() int {
	return len(q.lots) - q.head
}

// front returns the oldest open lot. The queue must not be empty.
func (q *lotQueue) front() *OpenLot {
	return &q.lots[q.head]
}

func (q *lotQueue) pop() {
	q.lots[q.head] = OpenLot{}
	q.head++
	if q.head == len(q.lots) {
		q.lots = q.lots[:0]
		q.head = 0
		return
	}
	if q.head > 32 && q.head*2 > len(q.lots) {
		n := copy(q.lots, q.lots[q.head:])
		q.lots = q.lots[:n]
		q.head = 0
	}
}

// open returns the live lots, oldest first.
func (q *lotQueue) open() []OpenLot {
	return q.lots[q.head:]
}
