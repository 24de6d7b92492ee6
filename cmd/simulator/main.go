package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThalysSilva/simulador-dispositivo/internal/clients"
	"github.com/ThalysSilva/simulador-dispositivo/internal/config"
	"github.com/ThalysSilva/simulador-dispositivo/internal/reading"
	"github.com/ThalysSilva/simulador-dispositivo/internal/readingsender"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Default()
	var seed int64

	cmd := &cobra.Command{
		Use:          "simulador",
		Short:        "Simulador de dispositivo que envia medições ao backend WattsApp",
		Example:      "simulador --id 4 --host http://192.168.1.174:3000/api --interval 2",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("seed") {
				cfg.Seed = &seed
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Host, "host", cfg.Host, "URL base da API (ex: http://192.168.1.80:3000/api), padrão $API_BASE")
	flags.IntVar(&cfg.DeviceID, "id", 0, "id_dispositivo a simular")
	flags.Float64Var(&cfg.IntervalSeconds, "interval", cfg.IntervalSeconds, "segundos entre envios")
	flags.Float64Var(&cfg.BaseCurrent, "base-current", cfg.BaseCurrent, "corrente base em A")
	flags.Float64Var(&cfg.BaseVoltage, "base-voltage", cfg.BaseVoltage, "tensão base em V")
	flags.Float64Var(&cfg.AnomalyProbability, "anomaly", cfg.AnomalyProbability, "probabilidade de anomalia por leitura (0-1)")
	flags.Int64Var(&seed, "seed", 0, "semente para reprodutibilidade (opcional)")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout de cada requisição")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "nível de log (debug, info, warn, error)")
	flags.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "diretório onde a pasta log/ será criada")
	flags.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "endereço para expor /metrics (vazio desativa)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	logFile, _ := clients.InitLog("simulador.log", cfg.LogDir, cfg.LogLevel == "debug" || cfg.LogLevel == "trace")
	defer logFile.Close()
	if err := clients.SetLogLevel(cfg.LogLevel); err != nil {
		return err
	}

	generator, err := reading.NewGenerator(reading.GeneratorOptions{
		BaseVoltage:        cfg.BaseVoltage,
		BaseCurrent:        cfg.BaseCurrent,
		AnomalyProbability: cfg.AnomalyProbability,
		Seed:               cfg.Seed,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddr != "" {
		metricsServer := clients.NewMetricsServer(cfg.MetricsAddr)
		go func() {
			log.Info().Str("addr", cfg.MetricsAddr).Msg("Métricas disponíveis em /metrics")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("Erro no servidor de métricas")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()
	}

	log.Info().
		Str("api", cfg.Host).
		Int("id_dispositivo", cfg.DeviceID).
		Float64("interval_s", cfg.IntervalSeconds).
		Float64("base_current_a", cfg.BaseCurrent).
		Float64("anomaly_prob", cfg.AnomalyProbability).
		Msg("Configuração da sessão")

	readingsender.NewReadingSenderService(cfg, generator).Run(ctx)
	return nil
}
