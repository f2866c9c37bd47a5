package mux

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"literature-server/pkg/record"
)

type fakeLister struct {
	lock  sync.Mutex
	games []*record.Game
	err   error
	start int64
	rows  int
}

func (f *fakeLister) Recent(_ context.Context, start int64, rows int) ([]*record.Game, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.start = start
	f.rows = rows
	return f.games, f.err
}

func TestGetGames(t *testing.T) {
	a := assert.New(t)
	lister := &fakeLister{
		games: []*record.Game{{UUID: "abc", Winner: 1}},
	}
	ts, _ := newTestServer(t, lister)

	var games []*record.Game
	assertGet(t, ts, "/games?start=5&rows=10", &games, 200)
	if a.Len(games, 1) {
		a.Equal("abc", games[0].UUID)
		a.Equal(1, games[0].Winner)
	}

	lister.lock.Lock()
	a.Equal(int64(5), lister.start)
	a.Equal(10, lister.rows)
	lister.err = errors.New("connection refused")
	lister.lock.Unlock()

	var errObj errorResponse
	assertGet(t, ts, "/games?rows=1000", &errObj, 400)
	a.Equal("rows cannot be greater than 100", errObj.Message)

	assertGet(t, ts, "/games", &errObj, 500)
	a.Equal("Internal Server Error", errObj.Message)
}

func Test_parseGamesPage(t *testing.T) {
	req := func(queryString string) *http.Request {
		req, _ := http.NewRequest(http.MethodGet, "https://example.domain/games"+queryString, nil)
		return req
	}

	page, err := parseGamesPage(req(""))
	assert.NoError(t, err)
	assert.Equal(t, gamesPage{start: 0, rows: gamesPerPage}, page)

	page, err = parseGamesPage(req("?start=10&rows=50"))
	assert.NoError(t, err)
	assert.Equal(t, gamesPage{start: 10, rows: 50}, page)

	_, err = parseGamesPage(req("?start=abc"))
	assert.EqualError(t, err, `invalid start: "abc"`)

	_, err = parseGamesPage(req("?rows=many"))
	assert.EqualError(t, err, `invalid rows: "many"`)

	_, err = parseGamesPage(req("?start=-1&rows=25"))
	assert.EqualError(t, err, "start cannot be less than zero")

	_, err = parseGamesPage(req("?start=0&rows=0"))
	assert.EqualError(t, err, "rows must be greater than zero")

	_, err = parseGamesPage(req(fmt.Sprintf("?rows=%d", maxGamesPerPage+1)))
	assert.EqualError(t, err, fmt.Sprintf("rows cannot be greater than %d", maxGamesPerPage))
}

func TestGetGames_noDatabase(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	var games []*record.Game
	assertGet(t, ts, "/games", &games, 200)
	assert.NotNil(t, games)
	assert.Empty(t, games)
}

func TestGetState(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	var state map[string]interface{}
	assertGet(t, ts, "/state", &state, 200)
	assert.Equal(t, float64(-1), state["playerInTurn"])
	assert.Equal(t, false, state["running"])
	assert.Equal(t, []interface{}{}, state["log"])
	assert.NotContains(t, state, "hands")
}
