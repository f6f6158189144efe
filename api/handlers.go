package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"croulette/models"
	"croulette/roulette"
	"croulette/service"
	"croulette/settings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

const maxSettingsBody = 64 << 10

// PocketInfo describes one wheel pocket
type PocketInfo struct {
	Pocket string `json:"pocket"`
	Color  string `json:"color"`
}

// WheelInfo lists the wheel and the accepted bet codes
type WheelInfo struct {
	Pockets  []PocketInfo `json:"pockets"`
	BetCodes []string     `json:"bet_codes"`
}

// BetOdds is the exact probability and house edge of one bet
type BetOdds struct {
	Bet            string  `json:"bet"`
	WinningPockets int     `json:"winning_pockets"`
	WinProbability float64 `json:"win_probability"`
	Multiplier     int64   `json:"multiplier"`
	ExpectedReturn float64 `json:"expected_return"`
}

// PayoutRequest asks what a bet pays on a pocket
type PayoutRequest struct {
	Bet    string `json:"bet" validate:"required"`
	Pocket string `json:"pocket" validate:"required"`
	Cost   *int64 `json:"cost,omitempty" validate:"omitempty,min=0"`
}

// PayoutResponse is the answer to a PayoutRequest
type PayoutResponse struct {
	Bet        string `json:"bet"`
	Pocket     string `json:"pocket"`
	Multiplier int64  `json:"multiplier"`
	Outcome    string `json:"outcome"`
	Cost       int64  `json:"cost"`
	Payout     int64  `json:"payout"`
}

// StatsResponse is a player's balance and roulette record
type StatsResponse struct {
	Balance     int64             `json:"balance"`
	Stats       *models.SpinStats `json:"stats"`
	RecentSpins []*models.Spin    `json:"recent_spins"`
}

func respond(w http.ResponseWriter, r *http.Request, resp Response) {
	render.Status(r, resp.Status)
	render.JSON(w, r, resp)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respond(w, r, OK(map[string]string{
		"status": "ok",
		"uptime": time.Since(s.started).Truncate(time.Second).String(),
	}))
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	respond(w, r, OK(s.settings.Values()))
}

func (s *Server) validateSettings(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSettingsBody))
	if err != nil {
		respond(w, r, Error("failed to read body", http.StatusBadRequest))
		return
	}

	format := settings.FormatJSON
	if f := r.URL.Query().Get("format"); f != "" {
		format = f
	}

	cfg, err := settings.Parse(body, format)
	if err != nil {
		var loadErr *settings.LoadError
		if errors.As(err, &loadErr) {
			respond(w, r, Response{
				Status: http.StatusUnprocessableEntity,
				Error:  err.Error(),
				Data:   map[string]string{"field": loadErr.Field},
			})
			return
		}
		respond(w, r, Error(err.Error(), http.StatusUnprocessableEntity))
		return
	}

	respond(w, r, OK(cfg.Values()))
}

func (s *Server) getWheel(w http.ResponseWriter, r *http.Request) {
	info := WheelInfo{
		Pockets:  make([]PocketInfo, 0, len(roulette.Wheel)),
		BetCodes: make([]string, 0, len(roulette.BetCodes)),
	}
	for _, p := range roulette.Wheel {
		info.Pockets = append(info.Pockets, PocketInfo{Pocket: p.String(), Color: string(p.Color())})
	}
	for _, code := range roulette.BetCodes {
		info.BetCodes = append(info.BetCodes, string(code))
	}
	respond(w, r, OK(info))
}

func (s *Server) getOdds(w http.ResponseWriter, r *http.Request) {
	bets := roulette.AllBets()
	if code := r.URL.Query().Get("bet"); code != "" {
		bet, err := roulette.ParseBet(code)
		if err != nil {
			respond(w, r, Error("invalid bet", http.StatusBadRequest))
			return
		}
		bets = []roulette.Bet{bet}
	}

	out := make([]BetOdds, 0, len(bets))
	for _, bet := range bets {
		odds := roulette.Analyze(bet)
		out = append(out, BetOdds{
			Bet:            bet.String(),
			WinningPockets: odds.WinningPockets,
			WinProbability: odds.WinProbability,
			Multiplier:     odds.Multiplier,
			ExpectedReturn: odds.ExpectedReturn,
		})
	}
	respond(w, r, OK(out))
}

func (s *Server) payout(w http.ResponseWriter, r *http.Request) {
	var req PayoutRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respond(w, r, Error("failed to decode request", http.StatusBadRequest))
		return
	}

	if err := s.validator.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			respond(w, r, ValidationError(validationErrs))
			return
		}
		respond(w, r, Error("invalid request", http.StatusBadRequest))
		return
	}

	bet, err := roulette.ParseBet(req.Bet)
	if err != nil {
		respond(w, r, Error("invalid bet", http.StatusBadRequest))
		return
	}
	pocket := roulette.Pocket(req.Pocket)
	if !pocket.Valid() {
		respond(w, r, Error("invalid pocket", http.StatusBadRequest))
		return
	}

	cost := s.settings.Cost()
	if req.Cost != nil {
		if *req.Cost > settings.MaxCost {
			respond(w, r, Error("cost is too large", http.StatusBadRequest))
			return
		}
		cost = *req.Cost
	}
	multiplier := bet.Multiplier(pocket)

	respond(w, r, OK(PayoutResponse{
		Bet:        bet.String(),
		Pocket:     pocket.String(),
		Multiplier: multiplier,
		Outcome:    string(roulette.OutcomeFor(multiplier)),
		Cost:       cost,
		Payout:     cost * multiplier,
	}))
}

func (s *Server) playerStats(w http.ResponseWriter, r *http.Request) {
	if s.players == nil {
		respond(w, r, Error("player data unavailable", http.StatusServiceUnavailable))
		return
	}

	scope, err := models.ParseScope(chi.URLParam(r, "platform") + ":" + chi.URLParam(r, "scopeID"))
	if err != nil {
		respond(w, r, Error("invalid scope", http.StatusBadRequest))
		return
	}
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		respond(w, r, Error("invalid user id", http.StatusBadRequest))
		return
	}

	recent := 10
	if v := r.URL.Query().Get("recent"); v != "" {
		recent, err = strconv.Atoi(v)
		if err != nil || recent < 0 || recent > 100 {
			respond(w, r, Error("recent must be between 0 and 100", http.StatusBadRequest))
			return
		}
	}

	summary, err := s.players.Summary(r.Context(), scope, userID, recent)
	if errors.Is(err, service.ErrUserNotFound) {
		respond(w, r, Error("player not found", http.StatusNotFound))
		return
	}
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"scope":  scope.String(),
			"userID": userID,
		}).Error("Failed to load player stats")
		respond(w, r, Error("failed to load player stats", http.StatusInternalServerError))
		return
	}

	respond(w, r, OK(StatsResponse{
		Balance:     summary.User.Balance,
		Stats:       summary.Stats,
		RecentSpins: summary.RecentSpins,
	}))
}
