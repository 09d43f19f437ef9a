package config

import (
	"errors"
	"strconv"
	"strings"
)

type Server struct {
	Port         int
	AllowOrigins []string
	LimiterRPS   float64
	LimiterBurst int
}

// loadServerConfig falls back to the environment settings when PORT or
// ALLOW_ORIGINS are unset, so the API listens where the front end expects it
// and accepts requests from the front end's own origin.
func loadServerConfig(env Environment) (Server, error) {
	port, err := strconv.Atoi(getEnvOr("PORT", strconv.Itoa(env.ServerPort())))
	if err != nil {
		return Server{}, err
	}

	var origins []string
	for origin := range strings.SplitSeq(getEnvOr("ALLOW_ORIGINS", env.CallbackOrigin()), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return Server{}, errors.New("empty CORS origins configuration")
	}

	rps, err := getFloatEnv("LIMITER_RPS", 20)
	if err != nil {
		return Server{}, err
	}

	burst, err := strconv.Atoi(getEnvOr("LIMITER_BURST", "40"))
	if err != nil {
		return Server{}, err
	}

	return Server{
		Port:         port,
		AllowOrigins: origins,
		LimiterRPS:   rps,
		LimiterBurst: burst,
	}, nil
}
