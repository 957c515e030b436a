package main

import (
	"errors"
	"log"
	"net/http"

	"libris/internal/adapter/web"
	"libris/internal/app"
	"libris/internal/config"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = st.close() }()

		authSvc := app.NewAuthService(st.users, st.sessions)
		catalogSvc := app.NewCatalogService(st.books, cfg.AddBookPolicy, cfg.InventoryMode)

		h := web.New(authSvc, catalogSvc, []byte(cfg.SessionSecret)).Handler()
		log.Printf("listening on %s (store=%s policy=%s mode=%s)",
			cfg.Addr, cfg.Store, cfg.AddBookPolicy, cfg.InventoryMode)
		if err := http.ListenAndServe(cfg.Addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
