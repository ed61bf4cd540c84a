package matching

import "github.com/hilljasont-svg/Tradejournal/src/eventmodels"

const compactThreshold = 64

// LotQueue holds the open lots of one direction, oldest at the head.
type LotQueue struct {
	lots []*Lot
	head int
}

func NewLotQueue() *LotQueue {
	return &LotQueue{}
}

func (q *LotQueue) Enqueue(lot *Lot) {
	q.lots = append(q.lots, lot)
}

func (q *LotQueue) PeekHead() *Lot {
	if q.head >= len(q.lots) {
		return nil
	}

	return q.lots[q.head]
}

func (q *LotQueue) IsEmpty() bool {
	return q.head >= len(q.lots)
}

func (q *LotQueue) Len() int {
	return len(q.lots) - q.head
}

func (q *LotQueue) Remaining() int {
	total := 0
	for _, lot := range q.lots[q.head:] {
		total += lot.Remaining
	}

	return total
}

// Lots returns the open lots head to tail. The slice is a copy; the lots are not.
func (q *LotQueue) Lots() []*Lot {
	out := make([]*Lot, q.Len())
	copy(out, q.lots[q.head:])
	return out
}

// Consume takes up to quantity units from the head of the queue. A head lot
// with no more than the outstanding amount is removed whole; otherwise it is
// decremented and consumption stops. Pairs are returned head to tail.
func (q *LotQueue) Consume(quantity int) []Consumption {
	var taken []Consumption

	for quantity > 0 && !q.IsEmpty() {
		lot := q.lots[q.head]

		if lot.Remaining <= quantity {
			taken = append(taken, Consumption{Lot: lot, Quantity: lot.Remaining})
			quantity -= lot.Remaining
			lot.Remaining = 0
			q.lots[q.head] = nil
			q.head++
			continue
		}

		taken = append(taken, Consumption{Lot: lot, Quantity: quantity})
		lot.Remaining -= quantity
		quantity = 0
	}

	q.compact()
	return taken
}

func (q *LotQueue) compact() {
	if q.head == len(q.lots) {
		q.lots = q.lots[:0]
		q.head = 0
		return
	}

	if q.head >= compactThreshold && q.head*2 >= len(q.lots) {
		n := copy(q.lots, q.lots[q.head:])
		clear(q.lots[n:])
		q.lots = q.lots[:n]
		q.head = 0
	}
}

// Book is the pair of lot queues for one symbol. At most one side is non-empty
// because executions always drain the opposite side before opening lots.
type Book struct {
	Longs  *LotQueue
	Shorts *LotQueue
}

func NewBook() *Book {
	return &Book{
		Longs:  NewLotQueue(),
		Shorts: NewLotQueue(),
	}
}

// Queue returns the queue holding lots opened by side.
func (b *Book) Queue(side eventmodels.ExecutionSide) *LotQueue {
	if side == eventmodels.ExecutionSideSell {
		return b.Shorts
	}

	return b.Longs
}

func (b *Book) Enqueue(side eventmodels.ExecutionSide, lot *Lot) {
	b.Queue(side).Enqueue(lot)
}

func (b *Book) OpenLots() []*Lot {
	return append(b.Longs.Lots(), b.Shorts.Lots()...)
}
