package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cardgame-api/internal/game/common"

	"github.com/google/uuid"
)

// Journaled deck actions.
const (
	ActionDraw            = "draw"
	ActionDrawEmpty       = "draw_empty"
	ActionShuffle         = "shuffle"
	ActionRestart         = "restart"
	ActionPutCard         = "putcard"
	ActionPutCardRejected = "putcard_rejected"
)

type DeckEvent struct {
	ID        string       `json:"id"`
	Action    string       `json:"action"`
	Card      *common.Card `json:"card,omitempty"`
	DeckSize  int          `json:"deck_size"`
	CreatedAt time.Time    `json:"created_at"`
}

// NewDeckEvent stamps a fresh event with a random ID.
func NewDeckEvent(action string, card *common.Card, deckSize int) DeckEvent {
	return DeckEvent{
		ID:        uuid.NewString(),
		Action:    action,
		Card:      card,
		DeckSize:  deckSize,
		CreatedAt: time.Now().UTC(),
	}
}

func InsertDeckEvent(ctx context.Context, db *sql.DB, e DeckEvent) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	var suit, face sql.NullString
	if e.Card != nil {
		suit = sql.NullString{String: e.Card.Suit.String(), Valid: true}
		face = sql.NullString{String: e.Card.Face.String(), Valid: true}
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO deck_events(id, action, card_suit, card_face, deck_size, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Action, suit, face, e.DeckSize, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert deck event: %w", err)
	}
	return nil
}

func GetDeckEvent(ctx context.Context, db *sql.DB, id string) (*DeckEvent, error) {
	row := db.QueryRowContext(ctx,
		`SELECT id, action, card_suit, card_face, deck_size, created_at FROM deck_events WHERE id = ?`, id,
	)
	e, err := scanDeckEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// ListDeckEvents returns the newest events first.
func ListDeckEvents(ctx context.Context, db *sql.DB, limit int) ([]DeckEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := db.QueryContext(ctx,
		`SELECT id, action, card_suit, card_face, deck_size, created_at
		 FROM deck_events ORDER BY seq DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list deck events: %w", err)
	}
	defer rows.Close()

	out := []DeckEvent{}
	for rows.Next() {
		e, err := scanDeckEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeckEvent(r rowScanner) (*DeckEvent, error) {
	var e DeckEvent
	var suit, face sql.NullString
	if err := r.Scan(&e.ID, &e.Action, &suit, &face, &e.DeckSize, &e.CreatedAt); err != nil {
		return nil, err
	}
	if suit.Valid && face.Valid {
		s, err := common.ParseSuit(suit.String)
		if err != nil {
			return nil, fmt.Errorf("deck event %s: %w", e.ID, err)
		}
		f, err := common.ParseFace(face.String)
		if err != nil {
			return nil, fmt.Errorf("deck event %s: %w", e.ID, err)
		}
		e.Card = &common.Card{Suit: s, Face: f}
	}
	return &e, nil
}
