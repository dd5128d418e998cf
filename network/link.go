package network

import (
	"math/rand/v2"
	"slices"

	"github.com/leap-fish/necs/esync"
)

// LinkConfig describes the conditions of a simulated link.
type LinkConfig struct {
	LatencyMillis float64
	JitterMillis  float64
	Loss          float64
	Seed          uint64
}

// LinkStats counts what happened to packets sent over a Link.
type LinkStats struct {
	Sent      int
	Dropped   int
	Delivered int
	Reordered int // delivered after a packet with a higher sequence
}

type inflight struct {
	arriveAt float64
	order    int
	packet   Packet
}

// Link is a deterministic stand-in for the network between an authority
// and a client: packets are delayed by latency plus uniform jitter and
// dropped with a fixed probability. Jitter can reorder packets.
type Link struct {
	cfg     LinkConfig
	rng     *rand.Rand
	now     float64
	sent    int
	queue   []inflight
	stats   LinkStats
	lastSeq map[esync.NetworkId]uint32
}

func NewLink(cfg LinkConfig) *Link {
	l := &Link{cfg: cfg}
	l.Reset()
	return l
}

// Reset drops every packet in flight, zeroes the stats and clock and
// reseeds the link, keeping its current conditions.
func (l *Link) Reset() {
	l.rng = rand.New(rand.NewPCG(l.cfg.Seed, l.cfg.Seed^0x9e3779b97f4a7c15))
	l.now = 0
	l.sent = 0
	l.queue = l.queue[:0]
	l.stats = LinkStats{}
	l.lastSeq = make(map[esync.NetworkId]uint32)
}

// SetConditions changes latency, jitter and loss for packets sent from now on.
func (l *Link) SetConditions(latencyMillis, jitterMillis, loss float64) {
	l.cfg.LatencyMillis = latencyMillis
	l.cfg.JitterMillis = jitterMillis
	l.cfg.Loss = loss
}

func (l *Link) Config() LinkConfig {
	return l.cfg
}

// Send queues p for delivery relative to the link's current time.
func (l *Link) Send(p Packet) {
	l.stats.Sent++
	if l.cfg.Loss > 0 && l.rng.Float64() < l.cfg.Loss {
		l.stats.Dropped++
		return
	}

	delay := l.cfg.LatencyMillis
	if l.cfg.JitterMillis > 0 {
		delay += (l.rng.Float64()*2 - 1) * l.cfg.JitterMillis
	}
	if delay < 0 {
		delay = 0
	}

	l.queue = append(l.queue, inflight{arriveAt: l.now + delay, order: l.sent, packet: p})
	l.sent++
}

// Advance moves the link clock forward by dt milliseconds and returns the
// packets that arrived, in arrival order.
func (l *Link) Advance(dt float64) []Packet {
	if dt > 0 {
		l.now += dt
	}
	if len(l.queue) == 0 {
		return nil
	}

	slices.SortStableFunc(l.queue, func(a, b inflight) int {
		switch {
		case a.arriveAt < b.arriveAt:
			return -1
		case a.arriveAt > b.arriveAt:
			return 1
		}
		return a.order - b.order
	})

	n := 0
	for n < len(l.queue) && l.queue[n].arriveAt <= l.now {
		n++
	}
	if n == 0 {
		return nil
	}

	out := make([]Packet, n)
	for i := range n {
		p := l.queue[i].packet
		if p.Seq < l.lastSeq[p.ID] {
			l.stats.Reordered++
		} else {
			l.lastSeq[p.ID] = p.Seq
		}
		out[i] = p
	}
	l.stats.Delivered += n
	l.queue = slices.Delete(l.queue, 0, n)
	return out
}

// Pending returns the number of packets in flight.
func (l *Link) Pending() int {
	return len(l.queue)
}

func (l *Link) Stats() LinkStats {
	return l.stats
}
