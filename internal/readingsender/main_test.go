package readingsender

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestMain(m *testing.M) {
	originalLogger := log.Logger
	log.Logger = zerolog.Nop()

	originalMarshalFunc := marshalFunc
	originalUUIDFunc := uuidFunc

	exitCode := m.Run()

	marshalFunc = originalMarshalFunc
	uuidFunc = originalUUIDFunc
	log.Logger = originalLogger

	os.Exit(exitCode)
}
