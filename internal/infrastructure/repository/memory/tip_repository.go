package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/footy-tipping/internal/domain/tip"
)

type TipRepository struct {
	mu     sync.RWMutex
	byUser map[string][]tip.Tip
}

func NewTipRepository() *TipRepository {
	return &TipRepository{byUser: make(map[string][]tip.Tip)}
}

func (r *TipRepository) Create(_ context.Context, item tip.Tip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byUser[item.UserName] = append(r.byUser[item.UserName], item)
	return nil
}

// ListByUser returns the user's tips newest first.
func (r *TipRepository) ListByUser(_ context.Context, userName string) ([]tip.Tip, error) {
	r.mu.RLock()
	items := r.byUser[userName]
	out := make([]tip.Tip, 0, len(items))
	out = append(out, items...)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
