package gateway

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/nulzo/summary-gateway/internal/cli"
	"github.com/nulzo/summary-gateway/internal/httpclient"
	"github.com/nulzo/summary-gateway/internal/llm"
	"go.uber.org/zap"
)

// BootstrapProviders builds one adapter per registered provider descriptor.
// Providers without credentials are still built; they fail fast at call time
// so an order naming them keeps its shape.
func BootstrapProviders(settings *Settings, client httpclient.HTTPClient, log *zap.Logger) map[llm.ProviderName]llm.Adapter {
	adapters := make(map[llm.ProviderName]llm.Adapter)
	validate := validator.New()

	for _, name := range llm.Registered() {
		desc, err := llm.Get(name)
		if err != nil {
			log.Error("Unknown provider type", zap.String("provider", string(name)))
			continue
		}

		pCfg := settings.Providers[name]
		if err := validate.Struct(&pCfg); err != nil {
			log.Warn(fmt.Sprintf("%s %s %s",
				cli.WarningSign(),
				cli.Stylize(fmt.Sprintf("%s\t", name), cli.Black),
				cli.Stylize(fmt.Sprintf("%s not set, provider will be skipped at call time", name.CredentialEnv()), cli.Yellow),
			))
		}

		adapter := llm.NewClient(desc, pCfg, client)
		adapters[name] = adapter

		log.Debug("Provider ready",
			zap.String("provider", string(name)),
			zap.String("model", adapter.Model()),
			zap.Int("position", settings.Position(name)),
		)
	}

	for _, name := range settings.Order {
		if _, ok := adapters[name]; !ok {
			log.Warn("Provider order names an unknown provider", zap.String("provider", string(name)))
		}
	}

	return adapters
}
