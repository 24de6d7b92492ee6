package readingsender

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ThalysSilva/simulador-dispositivo/internal/clients"
	"github.com/ThalysSilva/simulador-dispositivo/internal/config"
	"github.com/ThalysSilva/simulador-dispositivo/internal/reading"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxResponseBody = 4 << 10

type ReadingSenderService interface {
	// Send envia uma única leitura para o endpoint e registra o resultado no log.
	// Retorna nil para 200/201, *StatusError para outros status e *TransportError
	// quando não há resposta. Nunca faz nova tentativa.
	Send(ctx context.Context, r reading.Reading) error

	// Run gera, envia e aguarda o intervalo até que ctx seja cancelado.
	// Retorna a quantidade de ciclos executados.
	Run(ctx context.Context) int64
}

type readingSenderService struct {
	httpClient clients.HTTPClient
	generator  reading.Generator
	endpoint   string
	deviceID   int
	interval   time.Duration
	logger     zerolog.Logger
}

type ServiceOptions func(*readingSenderService)

func WithCustomHTTPClient(client clients.HTTPClient) ServiceOptions {
	return func(s *readingSenderService) {
		s.httpClient = client
	}
}

func WithLogger(logger zerolog.Logger) ServiceOptions {
	return func(s *readingSenderService) {
		s.logger = logger
	}
}

// measurementPayload é o corpo aceito por POST {host}/mediciones.
type measurementPayload struct {
	DeviceID int     `json:"id_dispositivo"`
	Current  float64 `json:"corriente"`
	Voltage  float64 `json:"voltaje"`
	Power    float64 `json:"potencia"`
}

var marshalFunc = json.Marshal
var uuidFunc = func() string { return uuid.New().String() }

// NewReadingSenderService cria o serviço a partir da configuração da sessão.
// O cliente HTTP padrão usa cfg.Timeout e não reaproveita conexões.
func NewReadingSenderService(cfg config.Config, generator reading.Generator, opts ...ServiceOptions) ReadingSenderService {
	registerMetrics()

	svc := &readingSenderService{
		httpClient: clients.NewHTTPClient(cfg.Timeout),
		generator:  generator,
		endpoint:   cfg.Endpoint(),
		deviceID:   cfg.DeviceID,
		interval:   cfg.Interval(),
		logger:     log.Logger,
	}

	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *readingSenderService) Send(ctx context.Context, r reading.Reading) error {
	start := time.Now()
	defer func() {
		sendDuration.Observe(time.Since(start).Seconds())
	}()

	body, err := marshalFunc(measurementPayload{
		DeviceID: s.deviceID,
		Current:  r.Current,
		Voltage:  r.Voltage,
		Power:    r.Power,
	})
	if err != nil {
		readingsSent.WithLabelValues(outcomeEncode).Inc()
		s.logger.Error().Err(err).Msg("Erro ao codificar medição")
		return fmt.Errorf("erro ao codificar medição: %w", err)
	}

	requestID := uuidFunc()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		readingsSent.WithLabelValues(outcomeTransport).Inc()
		s.logger.Error().Err(err).Str("endpoint", s.endpoint).Msg("Erro ao montar requisição")
		return &TransportError{Endpoint: s.endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		readingsSent.WithLabelValues(outcomeTransport).Inc()
		if errors.Is(ctx.Err(), context.Canceled) {
			s.logger.Debug().Str("request_id", requestID).Msg("Envio interrompido pelo cancelamento")
		} else {
			s.logger.Error().Err(err).
				Str("request_id", requestID).
				Str("endpoint", s.endpoint).
				Msg("Erro ao enviar medição")
		}
		return &TransportError{Endpoint: s.endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))
		readingsSent.WithLabelValues(outcomeSuccess).Inc()
		s.logger.Info().
			Str("request_id", requestID).
			Int("status", resp.StatusCode).
			RawJSON("body", body).
			Msg("Medição enviada com sucesso")
		return nil
	}

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	readingsSent.WithLabelValues(outcomeStatus).Inc()
	s.logger.Warn().
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Str("response", string(respBody)).
		Msg("Endpoint recusou a medição")
	return &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
}

func (s *readingSenderService) Run(ctx context.Context) int64 {
	s.logger.Info().
		Str("endpoint", s.endpoint).
		Int("id_dispositivo", s.deviceID).
		Dur("interval", s.interval).
		Msg("Simulador inicializado")

	var cycles int64
	for ctx.Err() == nil {
		r := s.generator.Generate()
		if r.Anomaly {
			anomaliesGenerated.Inc()
			s.logger.Debug().Float64("factor", r.Factor).Msg("Pico injetado na leitura")
		}

		// O resultado já foi registrado por Send; o laço segue em qualquer caso.
		_ = s.Send(ctx, r)
		cycles++

		if !s.wait(ctx) {
			break
		}
	}

	s.logger.Info().Int64("cycles", cycles).Msg("Simulador detenido")
	return cycles
}

// wait suspende pelo intervalo configurado. Retorna false se ctx for cancelado antes.
func (s *readingSenderService) wait(ctx context.Context) bool {
	if s.interval <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
