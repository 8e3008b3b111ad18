package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"courier/config"
	feddiscovery "courier/internal/federation/discovery"
	fedhttp "courier/internal/federation/delivery/http"
	"courier/internal/federation/transport"
	"courier/internal/identity/keystore"
	identityrepo "courier/internal/identity/repository"
	"courier/internal/identity/truststore"
	msghttp "courier/internal/message/delivery/http"
	messagerepo "courier/internal/message/repository"
	"courier/internal/message/usecase"
	"courier/internal/metrics"
	"courier/internal/notify"
	"courier/internal/server"
	"courier/pkg/logger"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

var configName string

func main() {
	root := &cobra.Command{
		Use:   "courierd",
		Short: "Federated end-to-end-encrypted messaging backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
	root.PersistentFlags().StringVarP(&configName, "config", "c", "config", "config file name (without extension)")

	root.AddCommand(&cobra.Command{
		Use:   "keygen",
		Short: "Generate or print this instance's federation signing identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return keygen()
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve() error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	connector := pgdriver.NewConnector(pgdriver.WithDSN(cfg.Bun.DSN))
	sqlDB := sql.OpenDB(connector)
	db := bun.NewDB(sqlDB, pgdialect.New())
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}

	m := metrics.New(nil)
	keys := keystore.NewKeystore(cfg.Federation.KeyFile, log)
	trust := truststore.NewTrustStore()
	client := transport.NewClient(cfg, log)
	resolver := feddiscovery.NewResolver(cfg, client, trust, log, m, nil)
	publisher := feddiscovery.NewPublisher(cfg, keys)
	hub := notify.NewHub()

	users := identityrepo.NewUserRepository(db, *log)
	messages := messagerepo.NewMessageRepository(db, *log, m)

	messageUC := usecase.NewMessageUsecase(messages, users, client, resolver, keys, hub, cfg, *log, m)

	fedHandlers := fedhttp.NewHandlers(publisher, keys, messageUC, users, cfg.Federation.Host, log)
	msgHandlers := msghttp.NewHandlers(messageUC, hub, log)

	srv := server.New(cfg, log, server.Deps{
		Federation:  fedHandlers,
		Messages:    msgHandlers,
		KeyResolver: resolver,
		AuthWrap:    msghttp.Authenticate(users, cfg.Auth.TokenHashSecret, log),
		Metrics:     m,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("courierd starting", "host", cfg.Federation.Host, "port", cfg.Server.Port)
	return srv.Run(ctx)
}

func keygen() error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	keys := keystore.NewKeystore(cfg.Federation.KeyFile, log)
	id, err := keys.Identity()
	if err != nil {
		return err
	}
	fmt.Printf("kid:        %s\npublic key: %s\ncreated:    %s\nfile:       %s\n",
		id.Kid, id.PublicKeyBase64, id.CreatedAt, cfg.Federation.KeyFile)
	return nil
}

func bootstrap() (*config.Config, *logger.Logger, error) {
	v, err := config.LoadConfig(configName)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.NewLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
