package live

import (
	"context"
	"time"
)

// PollStream re-runs fetch on a fixed interval. The first Next returns
// immediately; each later one waits for the next tick.
type PollStream struct {
	ctx    context.Context
	fetch  func(ctx context.Context) (interface{}, error)
	ticker *time.Ticker
	first  bool
}

// NewPollStream polls fetch every interval until ctx ends.
func NewPollStream(ctx context.Context, every time.Duration, fetch func(ctx context.Context) (interface{}, error)) *PollStream {
	return &PollStream{ctx: ctx, fetch: fetch, ticker: time.NewTicker(every), first: true}
}

func (p *PollStream) Next() (interface{}, error) {
	if err := p.ctx.Err(); err != nil {
		return nil, err
	}
	if p.first {
		p.first = false
	} else {
		select {
		case <-p.ctx.Done():
			return nil, p.ctx.Err()
		case <-p.ticker.C:
		}
	}
	return p.fetch(p.ctx)
}

func (p *PollStream) Stop() {
	p.ticker.Stop()
}
