// Devnet node: one in-memory chain, the game contract deployed on it, and
// the HTTP API in front. State lives for the life of the process.
package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/iceboxup/tic-tac-toe/chain"
	"github.com/iceboxup/tic-tac-toe/contract"
	"github.com/iceboxup/tic-tac-toe/internal/api"
	"github.com/iceboxup/tic-tac-toe/internal/config"
	"github.com/iceboxup/tic-tac-toe/sdk"
	"github.com/iceboxup/tic-tac-toe/token"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(*configPath, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(configPath string, log *zap.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	net := chain.New(chain.WithLogger(log), chain.WithNow(cfg.GenesisTime))
	tok := token.New(sdk.Address(cfg.Token.Address), cfg.Token.Name, cfg.Token.Symbol)
	net.RegisterToken(tok)

	for _, acct := range cfg.Accounts {
		addr := sdk.Address(acct.Address)
		net.Fund(addr, acct.Native)
		if acct.Tokens > 0 {
			if err := tok.Mint(addr, acct.Tokens); err != nil {
				return err
			}
		}
	}

	game := contract.New(net)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type", "X-Sender"},
	}))
	r.Mount("/v1", api.New(net, game, tok, log).Routes())

	log.Info("listening",
		zap.String("addr", cfg.Addr),
		zap.String("token", cfg.Token.Address),
		zap.Int("genesisAccounts", len(cfg.Accounts)))
	return http.ListenAndServe(cfg.Addr, r)
}
