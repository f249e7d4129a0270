package mux

import (
	"context"
	"net/http"
	"strings"

	"blackjack-server/pkg/economy"
	"blackjack-server/pkg/room"
	"blackjack-server/pkg/store"
	"blackjack-server/pkg/telemetry"

	gmux "github.com/gorilla/mux"
)

// HistoryReader returns the most recent rounds, newest first
type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]telemetry.Outcome, error)
}

// LedgerReader returns the most recent wallet movements, newest first
type LedgerReader interface {
	Ledger(ctx context.Context, limit int) ([]*store.LedgerEntry, error)
}

// TokenValidator returns the wallet id a bearer token was issued for
type TokenValidator interface {
	ValidSubject(token string) (string, error)
}

// Dependencies are the services the HTTP layer reads from
// Dealer and Economy are required; a nil progress service disables its routes.
type Dependencies struct {
	Dealer       *room.Dealer
	Economy      economy.Port
	Stats        *telemetry.Stats
	History      HistoryReader
	Ledger       LedgerReader
	Achievements *telemetry.AchievementTracker
	Quests       *telemetry.QuestBoard

	// Tokens validates the bearer token required to play, nil for none
	Tokens TokenValidator

	// WalletID is the only subject a token is accepted for, empty for any
	WalletID string
}

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	deps    Dependencies

	// store for testing purposes
	authRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string, deps Dependencies) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		deps:    deps,
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodGet).Path("/game").Handler(this.getGame())
		r.Methods(http.MethodGet).Path("/game/logs").Handler(this.getGameLogs())
		r.Methods(http.MethodGet).Path("/wallet").Handler(this.getWallet())
		r.Methods(http.MethodGet).Path("/wallet/ledger").Handler(this.getWalletLedger())
		r.Methods(http.MethodGet).Path("/stats").Handler(this.getStats())
		r.Methods(http.MethodGet).Path("/history").Handler(this.getHistory())
		r.Methods(http.MethodGet).Path("/achievements").Handler(this.getAchievements())
		r.Methods(http.MethodGet).Path("/quests").Handler(this.getQuests())
	}

	// requires the bearer token if one is configured
	{
		r := this.authRouter
		r.Methods(http.MethodPost).Path("/game/action").Handler(this.postGameAction())
		r.Methods(http.MethodGet).Path("/game/ws").Handler(this.getGameWS())
		r.Methods(http.MethodPost).Path("/quests/{id:[a-z_]+}/claim").Handler(this.postQuestClaim())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.deps.Tokens == nil {
			next.ServeHTTP(w, r)
			return
		}

		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		walletID, err := m.deps.Tokens.ValidSubject(token)
		if err != nil || (m.deps.WalletID != "" && walletID != m.deps.WalletID) {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		w.Header().Set("Blackjack-WalletID", walletID)
		next.ServeHTTP(w, r)
	})
}
