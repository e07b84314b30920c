package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/samandarerkinov/torthouse/internal/domain"
)

type cartRepository struct {
	db *sql.DB
}

// NewCartRepository создаёт PostgreSQL-реализацию CartRepository.
func NewCartRepository(store *Store) domain.CartRepository {
	return &cartRepository{db: store.DB()}
}

func (r *cartRepository) Get(userID string) (domain.Cart, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var lines []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT lines FROM carts WHERE user_id = $1
	`, userID).Scan(&lines)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewCart(userID), nil
		}
		return domain.Cart{}, fmt.Errorf("select cart: %w", err)
	}

	decoded, err := decodeLines(lines)
	if err != nil {
		return domain.Cart{}, err
	}
	return domain.Cart{UserID: userID, Lines: decoded}, nil
}

func (r *cartRepository) Save(cart domain.Cart) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	lines, err := encodeLines(cart.Lines)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO carts (user_id, lines) VALUES ($1,$2)
		ON CONFLICT (user_id) DO UPDATE SET lines = EXCLUDED.lines
	`, cart.UserID, lines)
	if err != nil {
		return fmt.Errorf("upsert cart: %w", err)
	}
	return nil
}

var _ domain.CartRepository = (*cartRepository)(nil)
