package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/footy-tipping/internal/domain/tip"
	qb "github.com/riskibarqy/footy-tipping/internal/platform/querybuilder"
)

const (
	tipsTable    = "tips"
	tipListLimit = 200
)

type TipRepository struct {
	db *sqlx.DB
}

func NewTipRepository(db *sqlx.DB) *TipRepository {
	return &TipRepository{db: db}
}

func (r *TipRepository) Create(ctx context.Context, item tip.Tip) error {
	query, args, err := insertTipQuery(item)
	if err != nil {
		return fmt.Errorf("build insert tip query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert tip: %w", err)
	}
	return nil
}

func (r *TipRepository) ListByUser(ctx context.Context, userName string) ([]tip.Tip, error) {
	query, args, err := tipsByUserQuery(userName)
	if err != nil {
		return nil, fmt.Errorf("build select tips by user query: %w", err)
	}

	var rows []tipTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select tips by user: %w", err)
	}

	out := make([]tip.Tip, 0, len(rows))
	for _, row := range rows {
		out = append(out, tipFromRow(row))
	}
	return out, nil
}

func insertTipQuery(item tip.Tip) (string, []any, error) {
	return qb.InsertModel(tipsTable, tipInsertModel{
		PublicID:      item.ID,
		UserName:      item.UserName,
		EncryptedData: item.EncryptedData,
		CreatedAt:     item.CreatedAt,
	}, "")
}

func tipsByUserQuery(userName string) (string, []any, error) {
	return qb.Select("id", "public_id", "user_name", "encrypted_data", "created_at", "deleted_at").
		From(tipsTable).
		Where(
			qb.Eq("user_name", userName),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at DESC", "id DESC").
		Limit(tipListLimit).
		ToSQL()
}

func tipFromRow(row tipTableModel) tip.Tip {
	return tip.Tip{
		ID:            row.PublicID,
		UserName:      row.UserName,
		EncryptedData: row.EncryptedData,
		CreatedAt:     row.CreatedAt,
	}
}
