package settlement

import (
	"context"
	"sync/atomic"

	"github.com/zjrosen/artcollab/internal/domain"
	"github.com/zjrosen/artcollab/internal/log"
	"github.com/zjrosen/artcollab/internal/pubsub"
)

// Dispatcher watches the event bus and hands every OwnershipTransferRequested
// to its Settler, one at a time, in publication order.
type Dispatcher struct {
	bus     *pubsub.Broker[any]
	settler Settler

	settled atomic.Int64
	failed  atomic.Int64
}

// NewDispatcher creates a dispatcher. A nil settler means LogSettler.
func NewDispatcher(bus *pubsub.Broker[any], settler Settler) *Dispatcher {
	if settler == nil {
		settler = LogSettler{}
	}
	return &Dispatcher{bus: bus, settler: settler}
}

// Start subscribes immediately and processes events in a goroutine until ctx
// ends or the bus closes. The returned channel closes when processing stops.
// Subscribing before returning means no event published after Start is missed.
func (d *Dispatcher) Start(ctx context.Context) <-chan struct{} {
	sub := d.bus.Subscribe(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		d.loop(ctx, sub)
	}()
	return done
}

// Run processes events until ctx ends or the bus closes.
func (d *Dispatcher) Run(ctx context.Context) {
	<-d.Start(ctx)
}

func (d *Dispatcher) loop(ctx context.Context, sub <-chan pubsub.Event[any]) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			req, ok := ev.Payload.(domain.OwnershipTransferRequested)
			if !ok {
				continue
			}
			d.dispatch(ctx, req)
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, req domain.OwnershipTransferRequested) {
	if err := d.settler.Settle(ctx, req); err != nil {
		d.failed.Add(1)
		log.ErrorErr(log.CatSettle, "settlement failed", err, "nft_id", req.NftID, "to", req.NewOwner)
		return
	}
	d.settled.Add(1)
}

// Settled returns how many requests the settler accepted.
func (d *Dispatcher) Settled() int64 { return d.settled.Load() }

// Failed returns how many requests the settler rejected.
func (d *Dispatcher) Failed() int64 { return d.failed.Load() }
