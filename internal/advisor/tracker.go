package advisor

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// State is the advice slot of the product currently on display
type State struct {
	ProductID string `json:"productId"`
	Advice    string `json:"advice"`
	Loading   bool   `json:"loading"`
}

// Tracker runs one fire-and-forget advice request per displayed product.
// Each request is keyed by product id and a sequence number; a response whose
// key no longer matches the displayed subject is dropped.
type Tracker struct {
	advisor *Advisor
	logger  *zap.Logger

	mu     sync.Mutex
	seq    uint64
	state  State
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTracker creates a tracker that fetches advice through advisor
func NewTracker(advisor *Advisor, logger *zap.Logger) *Tracker {
	return &Tracker{advisor: advisor, logger: logger}
}

// Request makes productID the displayed subject and fetches its advice in the
// background. It returns immediately. Any in-flight request is cancelled.
func (t *Tracker) Request(productID, productName, category string) {
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	t.seq++
	seq := t.seq
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.state = State{ProductID: productID, Loading: true}
	t.wg.Add(1)
	t.mu.Unlock()

	go func() {
		defer t.wg.Done()
		defer cancel()

		advice := t.advisor.StylistAdvice(ctx, productName, category)
		t.apply(seq, productID, advice)
	}()
}

func (t *Tracker) apply(seq uint64, productID, advice string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if seq != t.seq || t.state.ProductID != productID {
		t.logger.Debug("Dropping stale stylist advice",
			zap.String("product_id", productID),
			zap.String("displayed_product_id", t.state.ProductID),
		)
		return
	}

	t.state.Advice = advice
	t.state.Loading = false
}

// Current returns the advice state of the displayed product
func (t *Tracker) Current() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Close cancels any in-flight request and waits for its goroutine to finish
func (t *Tracker) Close() {
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	t.mu.Unlock()

	t.wg.Wait()
}
