// Package deck holds the single live deck served by the API.
package deck

import (
	"sync"

	"cardgame-api/internal/game/common"
)

// State owns the live deck and the reference deck it is reset from.
// All methods are safe for concurrent use.
type State struct {
	mu        sync.Mutex
	cards     []common.Card
	reference []common.Card
	shuffle   func([]common.Card)
}

type Option func(*State)

// WithShuffler replaces the in-place shuffle used by Shuffle.
func WithShuffler(fn func([]common.Card)) Option {
	return func(s *State) {
		if fn != nil {
			s.shuffle = fn
		}
	}
}

func New(opts ...Option) *State {
	s := &State{
		reference: common.NewStandardDeck(),
		shuffle:   common.Shuffle,
	}
	for _, o := range opts {
		o(s)
	}
	s.cards = cloneCards(s.reference)
	return s
}

// Draw removes and returns the top card. ok is false when the deck is empty.
func (s *State) Draw() (card common.Card, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cards) == 0 {
		return common.Card{}, false
	}
	card = s.cards[0]
	copy(s.cards, s.cards[1:])
	s.cards = s.cards[:len(s.cards)-1]
	return card, true
}

func (s *State) Shuffle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shuffle(s.cards)
}

// Reset restores the ordered 52-card deck, discarding draws, shuffles and inserts.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards = cloneCards(s.reference)
}

// ShowDeck returns a copy of the live deck, top first.
func (s *State) ShowDeck() []common.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneCards(s.cards)
}

// PutCard appends the card to the bottom of the deck unless an equal card is
// already present, in which case the deck is left as is and ok is false.
func (s *State) PutCard(suit common.Suit, face common.Face) (card common.Card, ok bool) {
	card = common.Card{Suit: suit, Face: face}
	s.mu.Lock()
	defer s.mu.Unlock()
	if common.ContainsCard(s.cards, card) {
		return card, false
	}
	s.cards = append(s.cards, card)
	return card, true
}

func (s *State) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cards)
}

// Reference returns a copy of the ordered deck used by Reset.
func (s *State) Reference() []common.Card {
	return cloneCards(s.reference)
}

func cloneCards(in []common.Card) []common.Card {
	out := make([]common.Card, len(in))
	copy(out, in)
	return out
}
