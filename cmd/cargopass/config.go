package main

import (
	"github.com/zkcargopass/cargopass/pkg/clientip"
	"github.com/zkcargopass/cargopass/pkg/cookie"
	"github.com/zkcargopass/cargopass/pkg/httpserver"
	"github.com/zkcargopass/cargopass/pkg/logger"
	"github.com/zkcargopass/cargopass/pkg/pg"
	"github.com/zkcargopass/cargopass/pkg/redis"
	"github.com/zkcargopass/cargopass/pkg/session"
)

// appConfig is the whole process configuration. An empty PG_CONN_URL keeps
// users in memory; an empty REDIS_URL keeps sessions in memory.
type appConfig struct {
	// SessionSecret is the master secret the cookie signing key is derived from.
	SessionSecret string `env:"SESSION_SECRET,required,unset"`
	// PreviousSessionSecret still verifies cookies during a rotation.
	PreviousSessionSecret string `env:"SESSION_SECRET_PREVIOUS,unset"`
	// SignupRole is assigned to new users. It must exist in the role table.
	SignupRole string `env:"SIGNUP_ROLE" envDefault:"USER"`

	Logger   logger.Config
	HTTP     httpserver.Config
	Postgres pg.Config
	Redis    redis.Config
	Session  session.Config
	Cookie   cookie.Config
	ClientIP clientip.Config
}
