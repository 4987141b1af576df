package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/amasacademy/portal/cart-service/internal/checkout"
	"github.com/amasacademy/portal/cart-service/internal/config"
	"github.com/amasacademy/portal/cart-service/internal/logger"
	"github.com/amasacademy/portal/cart-service/internal/server"
	"github.com/amasacademy/portal/cart-service/internal/service"
	"github.com/amasacademy/portal/cart-service/internal/storage"
	"github.com/amasacademy/portal/cart-service/internal/webhook"
)

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

	var stor storage.Storage
	stor, err = storage.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, time.Duration(cfg.CartTTLHours)*time.Hour)
	if err != nil {
		log.Error().Err(err).Msg("connecting to redis failed, falling back to memory storage")
		stor = storage.New()
	}

	carts := service.New(stor)
	poster := webhook.NewClient(15 * time.Second)
	co := checkout.NewService(stor, poster, cfg.OrderWebhookURL)

	serv := server.New(*cfg, carts, co)
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
