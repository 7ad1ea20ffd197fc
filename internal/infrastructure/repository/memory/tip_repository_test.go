package memory

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/footy-tipping/internal/domain/tip"
)

func TestTipRepository_ListByUserNewestFirst(t *testing.T) {
	t.Parallel()

	repo := NewTipRepository()
	base := time.Date(2025, 8, 20, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		if err := repo.Create(context.Background(), tip.Tip{
			ID:            id,
			UserName:      "sam",
			EncryptedData: "blob-" + id,
			CreatedAt:     base.Add(time.Duration(i) * time.Hour),
		}); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}
	_ = repo.Create(context.Background(), tip.Tip{ID: "z", UserName: "alex", CreatedAt: base})

	items, err := repo.ListByUser(context.Background(), "sam")
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(items) != 3 || items[0].ID != "c" || items[2].ID != "a" {
		t.Fatalf("unexpected order: %+v", items)
	}

	none, _ := repo.ListByUser(context.Background(), "nobody")
	if len(none) != 0 {
		t.Fatalf("expected no tips, got %+v", none)
	}
}
