package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/despacho/expedientes-api/pkg/logger"
)

func TestNewEstampaServicio(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Level: "info", Servicio: "expedientes-api", Salida: &buf})

	l.Info().Str("ruta", "/health").Msg("arranque")

	out := buf.String()
	assert.Contains(t, out, `"servicio":"expedientes-api"`)
	assert.Contains(t, out, `"ruta":"/health"`)
	assert.Contains(t, out, "arranque")
}

func TestComponenteAgregaCampo(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Level: "info", Salida: &buf}).Componente("pagos")

	l.Warn().Msg("recibo pendiente")

	assert.Contains(t, buf.String(), `"componente":"pagos"`)
}

func TestNivelDisabledSilencia(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Level: "disabled", Salida: &buf})

	l.Error().Msg("no debería salir")

	assert.Empty(t, buf.String())
}
