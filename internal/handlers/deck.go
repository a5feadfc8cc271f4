package handlers

import (
	"fmt"
	"net/http"

	"cardgame-api/internal/game/common"
	"cardgame-api/internal/models"
	"cardgame-api/internal/services"

	"github.com/gin-gonic/gin"
)

type putCardRequest struct {
	Suit string `form:"suit" binding:"required"`
	Face string `form:"face" binding:"required"`
}

type historyRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}

func DrawCardHandler(svc *services.DeckService) gin.HandlerFunc {
	return func(c *gin.Context) {
		card, err := svc.Draw(c.Request.Context())
		if err != nil {
			writeAPIError(c, err)
			return
		}
		c.JSON(http.StatusOK, card)
	}
}

func ShuffleHandler(svc *services.DeckService) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc.Shuffle(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"message": "Deck shuffled successfully"})
	}
}

func RestartHandler(svc *services.DeckService) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc.Restart(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"message": "Game restarted with a fresh deck"})
	}
}

func ShowDeckHandler(svc *services.DeckService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cards := svc.Show(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"count": len(cards), "cards": cards})
	}
}

// PutCardHandler reads suit and face from the query string. Both are
// validated here so the deck only ever sees well-formed cards.
func PutCardHandler(svc *services.DeckService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req putCardRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			writeAPIError(c, fmt.Errorf("%w: %v", models.ErrInvalidQuery, err))
			return
		}
		suit, err := common.ParseSuit(req.Suit)
		if err != nil {
			writeAPIError(c, err)
			return
		}
		face, err := common.ParseFace(req.Face)
		if err != nil {
			writeAPIError(c, err)
			return
		}

		card, err := svc.PutCard(c.Request.Context(), suit, face)
		if err != nil {
			writeAPIError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": card.String() + " added to the deck"})
	}
}

func HistoryHandler(svc *services.DeckService, defaultLimit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req historyRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			writeAPIError(c, fmt.Errorf("%w: %v", models.ErrInvalidQuery, err))
			return
		}
		limit := req.Limit
		if limit == 0 {
			limit = defaultLimit
		}
		events, err := svc.History(c.Request.Context(), limit)
		if err != nil {
			writeAPIError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(events), "events": events})
	}
}
