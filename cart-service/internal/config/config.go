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
	defaultAddr       = "localhost"
	defaultPort       = 8082
	defaultRedisAddr  = "localhost:6379"
	defaultOrderHook  = "https://hooks.amasacademy.com/webhook/pedidos-tienda"
	defaultJWTSecret  = "VerySecurKey2000Tigre"
	defaultCartTTLHrs = 72
)

type Config struct {
	Addr            string
	Debug           bool
	RedisAddr       string
	RedisPassword   string
	CartTTLHours    int
	OrderWebhookURL string
	JWTSecret       string
}

func ReadConfig() (*Config, error) {
	_ = godotenv.Load()

	var host, redisAddr, orderHook string
	var port int
	var debug bool
	flag.StringVar(&host, "addr", defaultAddr, "flag to set the server startup host")
	flag.IntVar(&port, "port", defaultPort, "flag to set the server startup port")
	flag.BoolVar(&debug, "debug", false, "flag to set Debug logger level")
	flag.StringVar(&redisAddr, "redis", defaultRedisAddr, "redis connection address")
	flag.StringVar(&orderHook, "order-hook", defaultOrderHook, "order intake webhook url")
	flag.Parse()

	host = cmp.Or(os.Getenv("SERVER_HOST"), host)
	p := cmp.Or(os.Getenv("SERVER_PORT"), strconv.Itoa(port))
	port, err := strconv.Atoi(p)
	if err != nil {
		return nil, err
	}
	ttl, err := strconv.Atoi(cmp.Or(os.Getenv("CART_TTL_HOURS"), strconv.Itoa(defaultCartTTLHrs)))
	if err != nil {
		return nil, err
	}
	return &Config{
		Addr:            fmt.Sprintf("%s:%d", host, port),
		Debug:           debug,
		RedisAddr:       cmp.Or(os.Getenv("REDIS_ADDR"), redisAddr),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		CartTTLHours:    ttl,
		OrderWebhookURL: cmp.Or(os.Getenv("ORDER_WEBHOOK_URL"), orderHook),
		JWTSecret:       cmp.Or(os.Getenv("JWT_SECRET"), defaultJWTSecret),
	}, nil
}
