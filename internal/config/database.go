package config

import (
	"net"
	"net/url"
	"strconv"
)

type Database struct {
	Username string
	Password string
	Host     string
	Port     int
	Database string
	Schema   string
}

func loadDatabaseConfig() (Database, error) {
	username, err := getEnv("DB_USERNAME")
	if err != nil {
		return Database{}, err
	}

	password, err := getEnv("DB_PASSWORD")
	if err != nil {
		return Database{}, err
	}

	host, err := getEnv("DB_HOST")
	if err != nil {
		return Database{}, err
	}

	port, err := getIntEnv("DB_PORT")
	if err != nil {
		return Database{}, err
	}

	database, err := getEnv("DB_DATABASE")
	if err != nil {
		return Database{}, err
	}

	schema := getEnvOr("DB_SCHEMA", "public")

	return Database{
		Username: username,
		Password: password,
		Host:     host,
		Port:     port,
		Database: database,
		Schema:   schema,
	}, nil
}

// ConnString returns the postgres URL for the configured database and schema.
func (d Database) ConnString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.Username, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Database,
		RawQuery: url.Values{"sslmode": {"disable"}, "search_path": {d.Schema}}.Encode(),
	}

	return u.String()
}
