package handlers

import (
	"cardgame-api/internal/services"

	"github.com/gin-gonic/gin"
)

// RegisterDeckRoutes wires the deck endpoints under rg.
func RegisterDeckRoutes(rg *gin.RouterGroup, svc *services.DeckService, historyLimit int) {
	g := rg.Group("/cardgame")
	g.GET("/drawcard", DrawCardHandler(svc))
	g.POST("/shuffle", ShuffleHandler(svc))
	g.POST("/restart", RestartHandler(svc))
	g.GET("/show", ShowDeckHandler(svc))
	g.POST("/putcard", PutCardHandler(svc))
	g.GET("/history", HistoryHandler(svc, historyLimit))
}
