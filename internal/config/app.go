package config

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

type App struct {
	Env string
}

func loadAppConfig() (App, error) {
	return App{Env: getEnvOr("APP_ENV", EnvDevelopment)}, nil
}
