package postgres

import (
	"testing"
	"time"

	"github.com/riskibarqy/footy-tipping/internal/domain/tip"
)

func TestInsertTipQuery(t *testing.T) {
	createdAt := time.Date(2025, time.August, 20, 9, 0, 0, 0, time.UTC)
	query, args, err := insertTipQuery(tip.Tip{ID: "t1", UserName: "Sam", EncryptedData: "cipher", CreatedAt: createdAt})
	if err != nil {
		t.Fatalf("insertTipQuery: %v", err)
	}

	want := "INSERT INTO tips (public_id, user_name, encrypted_data, created_at) VALUES ($1, $2, $3, $4)"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 4 || args[0] != "t1" || args[1] != "Sam" || args[3] != createdAt {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestTipsByUserQuery(t *testing.T) {
	query, args, err := tipsByUserQuery("Sam")
	if err != nil {
		t.Fatalf("tipsByUserQuery: %v", err)
	}

	want := "SELECT id, public_id, user_name, encrypted_data, created_at, deleted_at FROM tips " +
		"WHERE user_name = $1 AND deleted_at IS NULL ORDER BY created_at DESC, id DESC LIMIT 200"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 1 || args[0] != "Sam" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestTipFromRow(t *testing.T) {
	got := tipFromRow(tipTableModel{ID: 7, PublicID: "t7", UserName: "Sam", EncryptedData: "cipher"})
	if got.ID != "t7" || got.UserName != "Sam" || got.EncryptedData != "cipher" {
		t.Fatalf("unexpected tip: %+v", got)
	}
}
