package models

import (
	"errors"

	"cardgame-api/internal/game/common"
)

var (
	ErrInvalidQuery = errors.New("invalid query")
	ErrInvalidSuit  = common.ErrInvalidSuit
	ErrInvalidFace  = common.ErrInvalidFace
	ErrDeckEmpty    = errors.New("no cards left in the deck")
	ErrCardExists   = errors.New("card already exists in the deck")
)
