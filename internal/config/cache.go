package config

import "time"

type Cache struct {
	Host    string
	Port    int
	MenuTTL time.Duration
}

func loadCacheConfig() (Cache, error) {
	host, err := getEnv("VALKEY_HOST")
	if err != nil {
		return Cache{}, err
	}

	port, err := getIntEnv("VALKEY_PORT")
	if err != nil {
		return Cache{}, err
	}

	ttl, err := time.ParseDuration(getEnvOr("MENU_CACHE_TTL", "10m"))
	if err != nil {
		return Cache{}, err
	}

	return Cache{
		Host:    host,
		Port:    port,
		MenuTTL: ttl,
	}, nil
}
