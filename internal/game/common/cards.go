package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSuit = errors.New("invalid suit")
	ErrInvalidFace = errors.New("invalid face")
)

type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// Suits lists every suit in deck construction order.
var Suits = [...]Suit{Hearts, Diamonds, Clubs, Spades}

type Face int

const (
	Ace Face = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Faces lists every face in deck construction order.
var Faces = [...]Face{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

func (s Suit) String() string {
	switch s {
	case Hearts:
		return "Hearts"
	case Diamonds:
		return "Diamonds"
	case Clubs:
		return "Clubs"
	case Spades:
		return "Spades"
	default:
		return fmt.Sprintf("Suit(%d)", int(s))
	}
}

func (f Face) String() string {
	switch f {
	case Ace:
		return "Ace"
	case Two:
		return "Two"
	case Three:
		return "Three"
	case Four:
		return "Four"
	case Five:
		return "Five"
	case Six:
		return "Six"
	case Seven:
		return "Seven"
	case Eight:
		return "Eight"
	case Nine:
		return "Nine"
	case Ten:
		return "Ten"
	case Jack:
		return "Jack"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return fmt.Sprintf("Face(%d)", int(f))
	}
}

func (s Suit) Valid() bool { return s >= Hearts && s <= Spades }
func (f Face) Valid() bool { return f >= Ace && f <= King }

// ParseSuit matches a suit name case-insensitively.
func ParseSuit(v string) (Suit, error) {
	v = strings.TrimSpace(v)
	for _, s := range Suits {
		if strings.EqualFold(v, s.String()) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSuit, v)
}

// ParseFace matches a face name case-insensitively.
func ParseFace(v string) (Face, error) {
	v = strings.TrimSpace(v)
	for _, f := range Faces {
		if strings.EqualFold(v, f.String()) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFace, v)
}

func (s Suit) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSuit, int(s))
	}
	return json.Marshal(s.String())
}

func (s *Suit) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSuit, string(b))
	}
	v, err := ParseSuit(name)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (f Face) MarshalJSON() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFace, int(f))
	}
	return json.Marshal(f.String())
}

func (f *Face) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidFace, string(b))
	}
	v, err := ParseFace(name)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

type Card struct {
	Suit Suit `json:"suit"`
	Face Face `json:"face"`
}

func (c Card) String() string {
	return c.Face.String() + " of " + c.Suit.String()
}
