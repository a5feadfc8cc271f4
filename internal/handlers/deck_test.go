package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cardgame-api/internal/database"
	"cardgame-api/internal/game/common"
	"cardgame-api/internal/game/deck"
	"cardgame-api/internal/models"
	"cardgame-api/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type showResponse struct {
	Count int           `json:"count"`
	Cards []common.Card `json:"cards"`
}

type historyResponse struct {
	Count  int                `json:"count"`
	Events []models.DeckEvent `json:"events"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := database.OpenAndMigrate(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	r := gin.New()
	RegisterDeckRoutes(r.Group("/api"), services.NewDeckService(deck.New(), db, nil, ""), 50)
	return r
}

func do(t *testing.T, r http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestDrawCard(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/cardgame/drawcard")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"suit":"Hearts","face":"Ace"}`, w.Body.String())

	show := decode[showResponse](t, do(t, r, http.MethodGet, "/api/cardgame/show"))
	assert.Equal(t, 51, show.Count)
	assert.Equal(t, common.Card{Suit: common.Hearts, Face: common.Two}, show.Cards[0])
}

func TestDrawCardEmptyDeck(t *testing.T) {
	r := newTestRouter(t)
	for i := 0; i < 52; i++ {
		require.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/api/cardgame/drawcard").Code)
	}

	w := do(t, r, http.MethodGet, "/api/cardgame/drawcard")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"no cards left in the deck"}`, w.Body.String())

	show := decode[showResponse](t, do(t, r, http.MethodGet, "/api/cardgame/show"))
	assert.Equal(t, 0, show.Count)
	assert.Empty(t, show.Cards)
}

func TestShuffleAndRestart(t *testing.T) {
	r := newTestRouter(t)
	do(t, r, http.MethodGet, "/api/cardgame/drawcard")

	w := do(t, r, http.MethodPost, "/api/cardgame/shuffle")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Deck shuffled successfully"}`, w.Body.String())

	show := decode[showResponse](t, do(t, r, http.MethodGet, "/api/cardgame/show"))
	assert.Equal(t, 51, show.Count)
	assert.ElementsMatch(t, common.NewStandardDeck()[1:], show.Cards)

	w = do(t, r, http.MethodPost, "/api/cardgame/restart")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Game restarted with a fresh deck"}`, w.Body.String())

	show = decode[showResponse](t, do(t, r, http.MethodGet, "/api/cardgame/show"))
	assert.Equal(t, 52, show.Count)
	assert.Equal(t, common.NewStandardDeck(), show.Cards)
}

func TestPutCardScenario(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/cardgame/putcard?suit=Hearts&face=Ace")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"card already exists in the deck"}`, w.Body.String())

	do(t, r, http.MethodGet, "/api/cardgame/drawcard")

	w = do(t, r, http.MethodPost, "/api/cardgame/putcard?suit=hearts&face=ACE")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Ace of Hearts added to the deck"}`, w.Body.String())

	show := decode[showResponse](t, do(t, r, http.MethodGet, "/api/cardgame/show"))
	require.Equal(t, 52, show.Count)
	assert.Equal(t, common.Card{Suit: common.Hearts, Face: common.Ace}, show.Cards[51])

	w = do(t, r, http.MethodPost, "/api/cardgame/putcard?suit=Hearts&face=Ace")
	assert.Equal(t, http.StatusConflict, w.Code)

	do(t, r, http.MethodPost, "/api/cardgame/restart")
	show = decode[showResponse](t, do(t, r, http.MethodGet, "/api/cardgame/show"))
	assert.Equal(t, common.NewStandardDeck(), show.Cards)
}

func TestPutCardRejectsMalformedInput(t *testing.T) {
	r := newTestRouter(t)
	do(t, r, http.MethodGet, "/api/cardgame/drawcard")

	for _, tc := range []struct {
		query, want string
	}{
		{"", `{"error":"invalid query"}`},
		{"?suit=Hearts", `{"error":"invalid query"}`},
		{"?suit=Cups&face=Ace", `{"error":"invalid suit"}`},
		{"?suit=Hearts&face=1", `{"error":"invalid face"}`},
	} {
		w := do(t, r, http.MethodPost, "/api/cardgame/putcard"+tc.query)
		assert.Equal(t, http.StatusBadRequest, w.Code, tc.query)
		assert.JSONEq(t, tc.want, w.Body.String(), tc.query)
	}

	show := decode[showResponse](t, do(t, r, http.MethodGet, "/api/cardgame/show"))
	assert.Equal(t, 51, show.Count)
}

func TestHistory(t *testing.T) {
	r := newTestRouter(t)
	do(t, r, http.MethodGet, "/api/cardgame/drawcard")
	do(t, r, http.MethodPost, "/api/cardgame/shuffle")
	do(t, r, http.MethodPost, "/api/cardgame/putcard?suit=Spades&face=Queen")

	w := do(t, r, http.MethodGet, "/api/cardgame/history")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[historyResponse](t, w)
	require.Equal(t, 3, resp.Count)
	assert.Equal(t, models.ActionPutCardRejected, resp.Events[0].Action)
	assert.Equal(t, models.ActionShuffle, resp.Events[1].Action)
	assert.Equal(t, models.ActionDraw, resp.Events[2].Action)
	require.NotNil(t, resp.Events[2].Card)
	assert.Equal(t, common.Card{Suit: common.Hearts, Face: common.Ace}, *resp.Events[2].Card)

	w = do(t, r, http.MethodGet, "/api/cardgame/history?limit=1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)

	for _, q := range []string{"?limit=abc", "?limit=-1", "?limit=501"} {
		w = do(t, r, http.MethodGet, "/api/cardgame/history"+q)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestWriteAPIErrorHidesInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	writeAPIError(c, assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestRequestIDFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "-", requestIDFromContext(c))

	c.Set("requestID", "req-1")
	assert.Equal(t, "req-1", requestIDFromContext(c))
}
