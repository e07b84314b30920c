package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/samandarerkinov/torthouse/internal/domain"
)

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository создаёт PostgreSQL-реализацию SessionRepository.
// Состояние диалога переживает перезапуск процесса: пользователь продолжает
// оформление с того же вопроса.
func NewSessionRepository(store *Store) domain.SessionRepository {
	return &sessionRepository{db: store.DB()}
}

func (r *sessionRepository) Get(userID string) (domain.Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var (
		session  domain.Session
		state    string
		flow     string
		lat, lon sql.NullFloat64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, state, flow, name, phone, address, lat, lon,
		       custom_text, pending_product, pending_qty, updated_at
		FROM sessions
		WHERE user_id = $1
	`, userID).Scan(
		&session.UserID, &state, &flow, &session.Name, &session.Phone,
		&session.Address, &lat, &lon, &session.CustomText,
		&session.PendingProductID, &session.PendingQty, &session.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewSession(userID), nil
		}
		return domain.Session{}, fmt.Errorf("select session: %w", err)
	}

	session.State = domain.ConversationState(state)
	if !domain.ValidState(session.State) {
		// Неизвестное состояние из старой версии схемы: сбрасываем диалог,
		// а не гадаем, что оно значило.
		return domain.NewSession(userID), nil
	}
	session.Flow = domain.DeliveryType(flow)
	if lat.Valid && lon.Valid {
		session.Location = &domain.Location{Lat: lat.Float64, Lon: lon.Float64}
	}
	return session, nil
}

func (r *sessionRepository) Save(session domain.Session) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var lat, lon sql.NullFloat64
	if session.Location != nil {
		lat = sql.NullFloat64{Float64: session.Location.Lat, Valid: true}
		lon = sql.NullFloat64{Float64: session.Location.Lon, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (user_id, state, flow, name, phone, address, lat, lon,
		                      custom_text, pending_product, pending_qty, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (user_id) DO UPDATE SET
			state = EXCLUDED.state,
			flow = EXCLUDED.flow,
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address,
			lat = EXCLUDED.lat,
			lon = EXCLUDED.lon,
			custom_text = EXCLUDED.custom_text,
			pending_product = EXCLUDED.pending_product,
			pending_qty = EXCLUDED.pending_qty,
			updated_at = EXCLUDED.updated_at
	`,
		session.UserID, string(session.State), string(session.Flow),
		session.Name, session.Phone, session.Address, lat, lon,
		session.CustomText, session.PendingProductID, session.PendingQty,
		session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Delete(userID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

var _ domain.SessionRepository = (*sessionRepository)(nil)
