package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/samandarerkinov/torthouse/internal/domain"
)

const opTimeout = 5 * time.Second

type userRepository struct {
	db *sql.DB
}

// NewUserRepository создаёт PostgreSQL-реализацию UserRepository.
func NewUserRepository(store *Store) domain.UserRepository {
	return &userRepository{db: store.DB()}
}

func (r *userRepository) Get(userID string) (domain.UserProfile, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var (
		profile  domain.UserProfile
		lang     string
		orderIDs []byte
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, lang, name, phone, address, selected_branch, order_ids
		FROM users
		WHERE user_id = $1
	`, userID).Scan(
		&profile.ID, &lang, &profile.Name, &profile.Phone,
		&profile.Address, &profile.SelectedBranch, &orderIDs,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Первый контакт: пустой профиль, ещё не сохранённый.
			return domain.UserProfile{ID: userID}, nil
		}
		return domain.UserProfile{}, fmt.Errorf("select user: %w", err)
	}
	profile.Lang = domain.Lang(lang)

	ids, err := decodeOrderIDs(orderIDs)
	if err != nil {
		return domain.UserProfile{}, err
	}
	profile.OrderIDs = ids

	return profile, nil
}

func (r *userRepository) Save(profile domain.UserProfile) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	orderIDs, err := encodeOrderIDs(profile.OrderIDs)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO users (user_id, lang, name, phone, address, selected_branch, order_ids)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (user_id) DO UPDATE SET
			lang = EXCLUDED.lang,
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address,
			selected_branch = EXCLUDED.selected_branch,
			order_ids = EXCLUDED.order_ids
	`,
		profile.ID, string(profile.Lang), profile.Name, profile.Phone,
		profile.Address, profile.SelectedBranch, orderIDs,
	)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

var _ domain.UserRepository = (*userRepository)(nil)
