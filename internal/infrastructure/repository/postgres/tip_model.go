package postgres

import "time"

type tipTableModel struct {
	ID            int64      `db:"id"`
	PublicID      string     `db:"public_id"`
	UserName      string     `db:"user_name"`
	EncryptedData string     `db:"encrypted_data"`
	CreatedAt     time.Time  `db:"created_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

type tipInsertModel struct {
	PublicID      string    `db:"public_id"`
	UserName      string    `db:"user_name"`
	EncryptedData string    `db:"encrypted_data"`
	CreatedAt     time.Time `db:"created_at"`
}
