package common

import (
	"crypto/rand"
	"math/big"
	"time"
)

// NewStandardDeck returns the 52 cards in reference order: every face of
// Hearts, then Diamonds, Clubs and Spades.
func NewStandardDeck() []Card {
	deck := make([]Card, 0, len(Suits)*len(Faces))
	for _, s := range Suits {
		for _, f := range Faces {
			deck = append(deck, Card{Suit: s, Face: f})
		}
	}
	return deck
}

func Shuffle(cards []Card) {
	// Crypto-secure Fisher–Yates shuffle.
	// If crypto/rand fails, we fall back to a time-seeded shuffle as a last resort.
	for i := len(cards) - 1; i > 0; i-- {
		nBig, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			fallbackShuffle(cards)
			return
		}
		j := int(nBig.Int64())
		cards[i], cards[j] = cards[j], cards[i]
	}
}

func fallbackShuffle(cards []Card) {
	seed := time.Now().UnixNano()
	for i := len(cards) - 1; i > 0; i-- {
		seed = (seed*6364136223846793005 + 1) & 0x7fffffffffffffff
		j := int(seed % int64(i+1))
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// ContainsCard reports whether c is present in cards.
func ContainsCard(cards []Card, c Card) bool {
	for _, x := range cards {
		if x == c {
			return true
		}
	}
	return false
}
