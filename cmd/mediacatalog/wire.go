//go:build wireinject
// +build wireinject

package main

import (
	"io"

	"github.com/amaumene/mediacatalog/internal/config"
	"github.com/amaumene/mediacatalog/internal/services/audiotag"
	"github.com/google/wire"
)

// InitializeApp wires the application for the given configuration.
// Logs are written to out.
func InitializeApp(cfg *config.Config, out io.Writer) (*App, func(), error) {
	wire.Build(
		provideLogger,
		provideDatabase,
		provideCatalogController,
		provideExporter,
		audiotag.NewReader,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
