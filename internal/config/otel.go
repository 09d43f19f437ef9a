package config

import "fmt"

type Otel struct {
	TracesEndpoint string
	SamplingRatio  float64
}

func loadOtelConfig() (Otel, error) {
	// empty endpoint disables exporting
	env := getEnvOr("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")

	ratio, err := getFloatEnv("OTEL_TRACES_SAMPLER_ARG", 1)
	if err != nil {
		return Otel{}, err
	}
	if ratio < 0 || ratio > 1 {
		return Otel{}, fmt.Errorf("sampling ratio must be within [0, 1], got %v", ratio)
	}

	return Otel{
		TracesEndpoint: env,
		SamplingRatio:  ratio,
	}, nil
}
