package browser

import (
	"context"
	"sync"

	"github.com/alexisbeaulieu97/bookconnect/internal/domain/catalog"
	"github.com/alexisbeaulieu97/bookconnect/internal/ports"
)

// Bridge receives the controller's callbacks while a transition runs inside
// Update and hands them to the model once the transition returns.
type Bridge struct {
	mu           sync.Mutex
	detail       *catalog.Entry
	notices      []ports.Notice
	filterClosed bool
}

var (
	_ ports.DetailDisplay = (*Bridge)(nil)
	_ ports.Notifier      = (*Bridge)(nil)
	_ ports.Overlay       = (*Bridge)(nil)
)

func NewBridge() *Bridge {
	return &Bridge{}
}

// ShowDetail implements ports.DetailDisplay.
func (b *Bridge) ShowDetail(_ context.Context, entry catalog.Entry) {
	b.mu.Lock()
	b.detail = &entry
	b.mu.Unlock()
}

// Notify implements ports.Notifier.
func (b *Bridge) Notify(_ context.Context, notice ports.Notice) {
	b.mu.Lock()
	b.notices = append(b.notices, notice)
	b.mu.Unlock()
}

// CloseFilter implements ports.Overlay.
func (b *Bridge) CloseFilter() {
	b.mu.Lock()
	b.filterClosed = true
	b.mu.Unlock()
}

type pending struct {
	detail       *catalog.Entry
	notices      []ports.Notice
	filterClosed bool
}

func (b *Bridge) drain() pending {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := pending{detail: b.detail, notices: b.notices, filterClosed: b.filterClosed}
	b.detail, b.notices, b.filterClosed = nil, nil, false
	return out
}
