package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aigames/config"

	"github.com/stretchr/testify/require"
)

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, path, nil)
	} else {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) sessionResponse {
	t.Helper()
	var resp sessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func create(t *testing.T, s *Server, body any) sessionResponse {
	t.Helper()
	w := do(t, s, http.MethodPost, "/sessions", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode(t, w)
}

func TestCreateAndPlay(t *testing.T) {
	s := New(config.Default())
	created := create(t, s, nil)
	require.NotEmpty(t, created.ID)
	require.Equal(t, config.TicTacToe, created.Game)
	require.Equal(t, "negamax", created.Strategy)
	require.Equal(t, "in_progress", created.Status)
	require.Len(t, created.Moves, 9)

	w := do(t, s, http.MethodPost, "/sessions/"+created.ID+"/moves", obj{"move": "0,0"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	played := decode(t, w)
	require.Equal(t, "X", played.Board[0][0])
	require.NotEmpty(t, played.CpuMove)
	require.Len(t, played.Moves, 7)

	w = do(t, s, http.MethodGet, "/sessions/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, played.Board, decode(t, w).Board)
}

type obj map[string]any

func TestMoveErrors(t *testing.T) {
	s := New(config.Default())
	id := create(t, s, nil).ID
	path := "/sessions/" + id + "/moves"

	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, path, obj{"move": "1,1"}).Code)

	tests := []struct {
		name string
		body any
		code int
	}{
		{"occupied cell", obj{"move": "1,1"}, http.StatusBadRequest},
		{"malformed move", obj{"move": "middle"}, http.StatusBadRequest},
		{"missing move", obj{}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, path, tt.body)
			require.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}

	w := do(t, s, http.MethodPost, "/sessions/nope/moves", obj{"move": "1,1"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestFinishedGameRejectsMoves(t *testing.T) {
	s := New(config.Default())
	resp := create(t, s, nil)
	path := "/sessions/" + resp.ID + "/moves"

	for resp.Status == "in_progress" {
		w := do(t, s, http.MethodPost, path, obj{"move": resp.Moves[0]})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp = decode(t, w)
	}
	require.Contains(t, []string{"cpu_won", "draw"}, resp.Status)
	require.NotEmpty(t, resp.Message)
	require.Empty(t, resp.Moves)

	w := do(t, s, http.MethodPost, path, obj{"move": "0,0"})
	require.Equal(t, http.StatusConflict, w.Code)

	w = do(t, s, http.MethodPost, "/sessions/"+resp.ID+"/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	reset := decode(t, w)
	require.Equal(t, "in_progress", reset.Status)
	require.Len(t, reset.Moves, 9)
}

func TestSwapStrategy(t *testing.T) {
	s := New(config.Default())
	id := create(t, s, nil).ID
	path := "/sessions/" + id + "/strategy"

	w := do(t, s, http.MethodPut, path, obj{"kind": "matchbox", "seed": 3})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "matchbox", decode(t, w).Strategy)

	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/sessions/"+id+"/moves", obj{"move": "0,0"}).Code)
	w = do(t, s, http.MethodPut, path, obj{"kind": "negamax"})
	require.Equal(t, http.StatusConflict, w.Code, "Strategy cannot change mid-game")

	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/sessions/"+id+"/reset", nil).Code)
	w = do(t, s, http.MethodPut, path, obj{"kind": "negamax", "depth": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "negamax", decode(t, w).Strategy)

	w = do(t, s, http.MethodPut, path, obj{"kind": "negamax", "depth": -1})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateWithEmptyChunkedBody(t *testing.T) {
	s := New(config.Default())
	req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(""))
	req.ContentLength = -1
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Equal(t, config.TicTacToe, decode(t, w).Game)
}

func TestCreateValidation(t *testing.T) {
	s := New(config.Default())
	require.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/sessions", obj{"game": "go"}).Code)
	require.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/sessions", obj{"strategy": obj{"kind": "oracle"}}).Code)
}

func TestChessSession(t *testing.T) {
	s := New(config.Default())
	resp := create(t, s, obj{"game": "chess", "strategy": obj{"depth": 1}})
	require.Equal(t, config.Chess, resp.Game)
	require.Len(t, resp.Moves, 20)
	require.Len(t, resp.Board, 8)

	w := do(t, s, http.MethodPost, "/sessions/"+resp.ID+"/moves", obj{"move": "e2e4"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	played := decode(t, w)
	require.Equal(t, "P", played.Board[4][4])
	require.NotEmpty(t, played.CpuMove)
}

func TestDelete(t *testing.T) {
	s := New(config.Default())
	id := create(t, s, nil).ID

	require.Equal(t, http.StatusNoContent, do(t, s, http.MethodDelete, "/sessions/"+id, nil).Code)
	require.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/sessions/"+id, nil).Code)
	require.Equal(t, http.StatusNotFound, do(t, s, http.MethodDelete, "/sessions/"+id, nil).Code)
}
