package config

import (
	"cmp"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultAddr     = "localhost"
	defaultPort     = 8084
	defaultHookBase = "https://hooks.amasacademy.com"
)

type Config struct {
	Addr            string
	Debug           bool
	FormWebhookBase string
}

func ReadConfig() (*Config, error) {
	_ = godotenv.Load()

	var host, hookBase string
	var port int
	var debug bool
	flag.StringVar(&host, "addr", defaultAddr, "flag to set the server startup host")
	flag.IntVar(&port, "port", defaultPort, "flag to set the server startup port")
	flag.BoolVar(&debug, "debug", false, "flag to set Debug logger level")
	flag.StringVar(&hookBase, "hook-base", defaultHookBase, "base url for form intake webhooks")
	flag.Parse()

	host = cmp.Or(os.Getenv("SERVER_HOST"), host)
	p := cmp.Or(os.Getenv("SERVER_PORT"), strconv.Itoa(port))
	port, err := strconv.Atoi(p)
	if err != nil {
		return nil, err
	}
	return &Config{
		Addr:            fmt.Sprintf("%s:%d", host, port),
		Debug:           debug,
		FormWebhookBase: cmp.Or(os.Getenv("FORM_WEBHOOK_BASE"), hookBase),
	}, nil
}
