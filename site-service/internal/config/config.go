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
	defaultAddr = "localhost"
	defaultPort = 8080
	defaultRPS  = 20
)

type Config struct {
	Addr  string
	Debug bool
	RPS   int
}

func ReadConfig() (*Config, error) {
	_ = godotenv.Load()

	var host string
	var port, rps int
	var debug bool
	flag.StringVar(&host, "addr", defaultAddr, "flag to set the server startup host")
	flag.IntVar(&port, "port", defaultPort, "flag to set the server startup port")
	flag.BoolVar(&debug, "debug", false, "flag to set Debug logger level")
	flag.IntVar(&rps, "rps", defaultRPS, "requests per second allowed per client ip")
	flag.Parse()

	host = cmp.Or(os.Getenv("SERVER_HOST"), host)
	p := cmp.Or(os.Getenv("SERVER_PORT"), strconv.Itoa(port))
	port, err := strconv.Atoi(p)
	if err != nil {
		return nil, err
	}
	rps, err = strconv.Atoi(cmp.Or(os.Getenv("RATE_LIMIT_RPS"), strconv.Itoa(rps)))
	if err != nil {
		return nil, err
	}
	return &Config{
		Addr:  fmt.Sprintf("%s:%d", host, port),
		Debug: debug,
		RPS:   rps,
	}, nil
}
