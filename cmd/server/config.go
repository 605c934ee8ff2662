package main

import (
	"github.com/dmitrymomot/formguard/pkg/cookie"
	"github.com/dmitrymomot/formguard/pkg/csrf"
	"github.com/dmitrymomot/formguard/pkg/httpserver"
	"github.com/dmitrymomot/formguard/pkg/redis"
	"github.com/dmitrymomot/formguard/pkg/session"
)

const (
	storeMemory = "memory"
	storeRedis  = "redis"
)

type appConfig struct {
	Env          string `env:"APP_ENV" envDefault:"development"`
	Service      string `env:"APP_SERVICE" envDefault:"formguard"`
	SessionStore string `env:"SESSION_STORE" envDefault:"memory"`
	RedisPrefix  string `env:"SESSION_REDIS_PREFIX" envDefault:"formguard:session:"`
}

type settings struct {
	app     appConfig
	http    httpserver.Config
	redis   redis.Config
	cookie  cookie.Config
	session session.Config
	csrf    csrf.Config
}
