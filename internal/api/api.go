// Package api exposes the contract entry points and read-only queries as a
// JSON HTTP surface for the devnet node. The acting identity is the
// request's sender binding; on the devnet that is the X-Sender header, a
// real deployment would derive it from the transaction signature.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/iceboxup/tic-tac-toe/chain"
	"github.com/iceboxup/tic-tac-toe/contract"
	"github.com/iceboxup/tic-tac-toe/sdk"
	"github.com/iceboxup/tic-tac-toe/token"
)

type Handler struct {
	net  *chain.Chain
	game *contract.Contract
	tok  *token.Token
	log  *zap.Logger
}

func New(net *chain.Chain, game *contract.Contract, tok *token.Token, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{net: net, game: game, tok: tok, log: log}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/games", h.CreateGame)
	r.Post("/games/{id}/join", h.JoinGame)
	r.Post("/games/{id}/moves", h.Play)
	r.Post("/games/{id}/withdraw", h.Withdraw)
	r.Get("/games/count", h.GameCount)
	r.Get("/games/{id}", h.GetGame)
	r.Get("/events", h.Events)

	// Devnet conveniences.
	r.Post("/faucet", h.Faucet)
	r.Post("/token/mint", h.TokenMint)
	r.Post("/token/approve", h.TokenApprove)
	r.Get("/balances/{address}", h.Balances)

	return r
}

// ---------- Entry points ----------

type createGameRequest struct {
	Asset  string `json:"asset"` // "native" (or empty) or a token address
	Amount uint64 `json:"amount"`
	Value  uint64 `json:"value"` // attached native value
}

type createGameResponse struct {
	ID uint64 `json:"id"`
}

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	sender, ok := h.sender(w, r)
	if !ok {
		return
	}
	payload, err := decode[createGameRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var id uint64
	err = h.net.Submit(sender, payload.Value, func() error {
		var err error
		id, err = h.game.CreateGame(parseAsset(payload.Asset), payload.Amount)
		return err
	})
	if err != nil {
		h.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createGameResponse{ID: id})
}

type joinGameRequest struct {
	Value uint64 `json:"value"`
}

func (h *Handler) JoinGame(w http.ResponseWriter, r *http.Request) {
	sender, ok := h.sender(w, r)
	if !ok {
		return
	}
	id, err := gameID(r)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	payload, err := decode[joinGameRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.net.Submit(sender, payload.Value, func() error {
		return h.game.JoinGame(id)
	}); err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeGame(w, id)
}

type moveRequest struct {
	X uint8 `json:"x"`
	Y uint8 `json:"y"`
}

func (h *Handler) Play(w http.ResponseWriter, r *http.Request) {
	sender, ok := h.sender(w, r)
	if !ok {
		return
	}
	id, err := gameID(r)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	payload, err := decode[moveRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.net.Submit(sender, 0, func() error {
		return h.game.Play(id, payload.X, payload.Y)
	}); err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeGame(w, id)
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	sender, ok := h.sender(w, r)
	if !ok {
		return
	}
	id, err := gameID(r)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	if err := h.net.Submit(sender, 0, func() error {
		return h.game.Withdraw(id)
	}); err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeGame(w, id)
}

// ---------- Queries ----------

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	id, err := gameID(r)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeGame(w, id)
}

func (h *Handler) GameCount(w http.ResponseWriter, _ *http.Request) {
	var n uint64
	h.net.View(func() { n = h.game.GameCount() })
	writeJSON(w, http.StatusOK, map[string]uint64{"count": n})
}

func (h *Handler) Events(w http.ResponseWriter, _ *http.Request) {
	logs := h.net.Logs()
	out := make([]contract.Event, 0, len(logs))
	for _, l := range logs {
		var e contract.Event
		if err := json.Unmarshal([]byte(l), &e); err != nil {
			continue
		}
		out = append(out, e)
	}
	writeJSON(w, http.StatusOK, out)
}

// ---------- Devnet conveniences ----------

type faucetRequest struct {
	Address string `json:"address"`
	Amount  uint64 `json:"amount"`
}

func (h *Handler) Faucet(w http.ResponseWriter, r *http.Request) {
	payload, err := decode[faucetRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.net.Fund(sdk.Address(payload.Address), payload.Amount)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) TokenMint(w http.ResponseWriter, r *http.Request) {
	payload, err := decode[faucetRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var mintErr error
	h.net.View(func() {
		mintErr = h.tok.Mint(sdk.Address(payload.Address), payload.Amount)
	})
	if mintErr != nil {
		h.writeErr(w, mintErr)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type approveRequest struct {
	Amount uint64 `json:"amount"`
}

// TokenApprove grants the game contract an allowance over the sender's
// tokens, the step a player does before staking tokens.
func (h *Handler) TokenApprove(w http.ResponseWriter, r *http.Request) {
	sender, ok := h.sender(w, r)
	if !ok {
		return
	}
	payload, err := decode[approveRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.net.View(func() {
		h.tok.Approve(sender, chain.ContractAddress, payload.Amount)
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Balances(w http.ResponseWriter, r *http.Request) {
	addr := sdk.Address(chi.URLParam(r, "address"))
	var native, tok uint64
	native = h.net.BalanceOf(addr)
	h.net.View(func() { tok = h.tok.BalanceOf(addr) })
	writeJSON(w, http.StatusOK, map[string]uint64{
		"native": native,
		"token":  tok,
	})
}

// ---------- Helpers ----------

func (h *Handler) sender(w http.ResponseWriter, r *http.Request) (sdk.Address, bool) {
	s := r.Header.Get("X-Sender")
	if s == "" {
		http.Error(w, "missing X-Sender header", http.StatusBadRequest)
		return "", false
	}
	return sdk.Address(s), true
}

func (h *Handler) writeGame(w http.ResponseWriter, id uint64) {
	var (
		g   *contract.Game
		err error
	)
	h.net.View(func() { g, err = h.game.GetGame(id) })
	if err != nil {
		h.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g.View())
}

func gameID(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, contract.ErrInvalidGameID
	}
	return id, nil
}

func parseAsset(s string) sdk.Asset {
	if s == "" || s == "native" {
		return sdk.Native()
	}
	return sdk.Token(sdk.Address(s))
}

// decode unmarshals a JSON request body; an empty body yields the zero
// value so bodyless calls (a native-free join, say) stay valid.
func decode[T any](body io.Reader) (T, error) {
	var v T
	err := json.NewDecoder(body).Decode(&v)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	return v, err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeErr(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, contract.ErrInvalidGameID):
		status = http.StatusNotFound
	case errors.Is(err, contract.ErrInvalidAmount),
		errors.Is(err, contract.ErrInvalidCoordinate),
		errors.Is(err, chain.ErrInsufficientFunds),
		errors.Is(err, token.ErrInsufficientBalance),
		errors.Is(err, token.ErrInsufficientAllowance):
		status = http.StatusBadRequest
	case errors.Is(err, contract.ErrAlreadyStarted),
		errors.Is(err, contract.ErrAlreadyEnded),
		errors.Is(err, contract.ErrNotStarted),
		errors.Is(err, contract.ErrNotYourTurn),
		errors.Is(err, contract.ErrCellOccupied),
		errors.Is(err, contract.ErrYourTurn),
		errors.Is(err, contract.ErrNotWithdrawable),
		errors.Is(err, contract.ErrReentrantCall):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		h.log.Error("call failed", zap.Error(err))
	}
	http.Error(w, err.Error(), status)
}
