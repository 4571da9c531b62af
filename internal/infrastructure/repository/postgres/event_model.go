package postgres

import "time"

type eventTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	City      string    `db:"city"`
	Status    string    `db:"status"`
	StartsAt  time.Time `db:"starts_at"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
