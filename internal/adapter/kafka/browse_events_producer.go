package kafka

import (
	"context"
	"log/slog"

	"github.com/techcart/storefront/internal/core/domain"
	"github.com/techcart/storefront/internal/core/port"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.EventsTracker = (*BrowseEventsProducer)(nil)

// BrowseEventsProducer publishes browse telemetry keyed by client ID.
type BrowseEventsProducer struct {
	cl      ProducerClient
	encoder Encoder
}

func NewBrowseEventsProducer(
	opts ...ProducerOpt,
) (BrowseEventsProducer, error) {
	const op = "NewBrowseEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return BrowseEventsProducer{}, opErr(err, op)
		}
	}
	return BrowseEventsProducer{options.cl, options.encoder}, nil
}

func (p BrowseEventsProducer) Close() {
	const op = "BrowseEventsProducer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p BrowseEventsProducer) TrackEvent(
	ctx context.Context, evt domain.BrowseEvent,
) error {
	const op = "BrowseEventsProducer.TrackEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, op)
	}

	r, err := p.createRecord(evt)
	if err != nil {
		return opErr(err, op)
	}

	res := p.cl.ProduceSync(ctx, r)
	if err := res.FirstErr(); err != nil {
		return opErr(err, op)
	}
	return nil
}

func (p BrowseEventsProducer) createRecord(
	evt domain.BrowseEvent,
) (*kgo.Record, error) {
	s := browseEventToSchemaV1(evt)
	data, err := p.encoder.Encode(s)
	if err != nil {
		return nil, err
	}

	r := &kgo.Record{
		Key:   []byte(evt.ClientID),
		Value: data,
	}
	return r, nil
}
