package service

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/dukerupert/storefront/internal/events"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []events.CartEventMessage
	err  error
}

func (p *recordingPublisher) PublishCartEvent(_ context.Context, msg events.CartEventMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, msg)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.msgs))
	for _, m := range p.msgs {
		out = append(out, m.EventType)
	}
	return out
}

type countingInvalidator struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (c *countingInvalidator) InvalidateDashboards(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.err
}

func (c *countingInvalidator) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// fixture wires the services over one in-memory store.
type fixture struct {
	store     *memStore
	publisher *recordingPublisher
	events    *CartEventLog
	carts     CartService
	merges    MergeService
}

func newFixture() *fixture {
	store := newMemStore()
	pub := &recordingPublisher{}
	log := NewCartEventLog(store, pub, testLogger())
	return &fixture{
		store:     store,
		publisher: pub,
		events:    log,
		carts:     NewCartService(store, log, testLogger()),
		merges:    NewMergeService(store, testLogger()),
	}
}
