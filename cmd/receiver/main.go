package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThalysSilva/simulador-dispositivo/internal/clients"
	"github.com/ThalysSilva/simulador-dispositivo/internal/config"
	"github.com/ThalysSilva/simulador-dispositivo/internal/measurement"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = config.LoadDotEnv()

	var (
		receiverPort = config.EnvOr("RECEIVER_PORT", "3000")
		redisHost    = config.EnvOr("REDIS_HOST", "localhost")
		redisPort    = config.EnvOr("REDIS_PORT", "6379")
		logDir       = config.EnvOr("LOG_DIR", ".")
	)

	logFile, _ := clients.InitLog("receptor.log", logDir)
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient := clients.InitRedisClient(redisHost, redisPort)
	defer redisClient.Close()

	measurementService := measurement.NewMeasurementService(redisClient)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	measurement.RegisterRoutes(r, measurement.NewMeasurementHandler(measurementService))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	server := &http.Server{
		Addr:              ":" + receiverPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Msgf("Receptor rodando em :%s e métricas em :%s/metrics", receiverPort, receiverPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Erro ao iniciar o servidor")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Recebido sinal de parada, finalizando...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Erro ao finalizar o servidor")
	}
	log.Info().Msg("Receptor finalizado.")
}
