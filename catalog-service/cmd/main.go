package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/amasacademy/portal/catalog-service/internal/config"
	"github.com/amasacademy/portal/catalog-service/internal/domain/models"
	"github.com/amasacademy/portal/catalog-service/internal/logger"
	"github.com/amasacademy/portal/catalog-service/internal/server"
	"github.com/amasacademy/portal/catalog-service/internal/storage"
)

// seed keeps local runs useful when the portal comes up on an empty shop.
var seed = []models.Product{
	{
		Name: "Uniforme AMAS", Desc: "Uniforme oficial de la academia", Price: 180,
		Category: "uniformes", Image: "https://cdn.amasacademy.com/img/uniforme.jpg",
		Variants: []models.Variant{
			{Label: "talla-s"}, {Label: "talla-m"}, {Label: "talla-l", PriceDelta: 10},
		},
		Available: true,
	},
	{
		Name: "Guantes de combate", Desc: "Guantes acolchados para sparring", Price: 95,
		Category: "protecciones", Image: "https://cdn.amasacademy.com/img/guantes.jpg",
		Variants:  []models.Variant{{Label: "rojo"}, {Label: "negro"}},
		Available: true,
	},
}

func main() {
	cfg, err := config.ReadConfig()
	if err != nil {
		log.Fatal(err)
	}
	log := logger.Get(cfg.Debug)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
		<-c

		log.Debug().Msg("ctx cancel; catch os signal")
		cancel()
	}()

	log.Debug().Any("cfg", cfg).Send()
	var stor server.Storage

	if err = storage.Migrations(cfg.DBDsn, cfg.MigratePath); err != nil {
		log.Error().Err(err).Msg("migrations failed")
	}
	stor, err = storage.NewDB(ctx, cfg.DBDsn)
	if err != nil {
		log.Error().Err(err).Msg("connecting to data base failed")
		stor = storage.New()
	}
	if err := stor.SaveProducts(seed); err != nil {
		log.Error().Err(err).Msg("seeding products failed")
	}

	serv := server.New(*cfg, stor)
	group, gCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return serv.Run(gCtx)
	})
	group.Go(func() error {
		log.Debug().Msg("error chan listener started")
		defer log.Debug().Msg("error chan listener - end")
		return <-serv.ErrChan
	})
	group.Go(func() error {
		<-gCtx.Done()
		return serv.ShutdownServer()
	})

	if err = group.Wait(); err != nil {
		log.Info().Str("stoping reason", err.Error()).Msg("Server stoped")
		return
	}
	log.Info().Msg("server stoped")
}
