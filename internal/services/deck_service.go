package services

import (
	"context"
	"database/sql"
	"log"

	"cardgame-api/internal/game/common"
	"cardgame-api/internal/game/deck"
	"cardgame-api/internal/models"
	"cardgame-api/internal/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Publisher delivers a deck event to live subscribers.
type Publisher interface {
	Broadcast(room, typ string, payload any)
}

// DeckService runs deck operations, records each one in the journal and
// publishes it to the event feed.
type DeckService struct {
	deck      *deck.State
	db        *sql.DB
	publisher Publisher
	room      string
}

// NewDeckService wires a deck to its journal and feed. db and publisher may
// be nil, which disables that side effect.
func NewDeckService(d *deck.State, db *sql.DB, publisher Publisher, room string) *DeckService {
	return &DeckService{deck: d, db: db, publisher: publisher, room: room}
}

// Draw returns models.ErrDeckEmpty when there is nothing to draw.
func (s *DeckService) Draw(ctx context.Context) (common.Card, error) {
	ctx, span := tracing.StartSpan(ctx, "deck.Draw")
	defer span.End()

	card, ok := s.deck.Draw()
	size := s.deck.Len()
	span.SetAttributes(attribute.Int("deck.size", size), attribute.Bool("deck.empty", !ok))
	if !ok {
		s.record(ctx, models.NewDeckEvent(models.ActionDrawEmpty, nil, size))
		return common.Card{}, models.ErrDeckEmpty
	}
	span.SetAttributes(attribute.String("deck.card", card.String()))
	s.record(ctx, models.NewDeckEvent(models.ActionDraw, &card, size))
	return card, nil
}

func (s *DeckService) Shuffle(ctx context.Context) {
	ctx, span := tracing.StartSpan(ctx, "deck.Shuffle")
	defer span.End()

	s.deck.Shuffle()
	size := s.deck.Len()
	span.SetAttributes(attribute.Int("deck.size", size))
	s.record(ctx, models.NewDeckEvent(models.ActionShuffle, nil, size))
}

func (s *DeckService) Restart(ctx context.Context) {
	ctx, span := tracing.StartSpan(ctx, "deck.Restart")
	defer span.End()

	s.deck.Reset()
	size := s.deck.Len()
	span.SetAttributes(attribute.Int("deck.size", size))
	s.record(ctx, models.NewDeckEvent(models.ActionRestart, nil, size))
}

func (s *DeckService) Show(ctx context.Context) []common.Card {
	_, span := tracing.StartSpan(ctx, "deck.Show")
	defer span.End()

	cards := s.deck.ShowDeck()
	span.SetAttributes(attribute.Int("deck.size", len(cards)))
	return cards
}

// PutCard returns models.ErrCardExists when an equal card is already in the deck.
func (s *DeckService) PutCard(ctx context.Context, suit common.Suit, face common.Face) (common.Card, error) {
	ctx, span := tracing.StartSpan(ctx, "deck.PutCard")
	defer span.End()

	card, ok := s.deck.PutCard(suit, face)
	size := s.deck.Len()
	span.SetAttributes(
		attribute.String("deck.card", card.String()),
		attribute.Int("deck.size", size),
		attribute.Bool("deck.rejected", !ok),
	)
	if !ok {
		s.record(ctx, models.NewDeckEvent(models.ActionPutCardRejected, &card, size))
		return card, models.ErrCardExists
	}
	s.record(ctx, models.NewDeckEvent(models.ActionPutCard, &card, size))
	return card, nil
}

// History lists journaled events, newest first.
func (s *DeckService) History(ctx context.Context, limit int) ([]models.DeckEvent, error) {
	ctx, span := tracing.StartSpan(ctx, "deck.History")
	defer span.End()

	if s.db == nil {
		return []models.DeckEvent{}, nil
	}
	events, err := models.ListDeckEvents(ctx, s.db, limit)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return events, nil
}

// record journals and publishes e. Failures are logged only: the deck has
// already changed by the time we get here.
func (s *DeckService) record(ctx context.Context, e models.DeckEvent) {
	if s.db != nil {
		if err := models.InsertDeckEvent(ctx, s.db, e); err != nil {
			trace.SpanFromContext(ctx).RecordError(err)
			log.Printf("deck journal error: action=%s event_id=%s err=%v", e.Action, e.ID, err)
		}
	}
	if s.publisher != nil {
		s.publisher.Broadcast(s.room, "deck."+e.Action, e)
	}
}
