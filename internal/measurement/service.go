package measurement

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThalysSilva/simulador-dispositivo/internal/clients"
	"github.com/ThalysSilva/simulador-dispositivo/pkg/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	defaultMaxPerDevice = 1000
	spikeRatio          = 1.8
	storeRetries        = 3
)

type MeasurementService interface {
	// Record valida, grava e devolve a medição com id e data atribuídos.
	Record(ctx context.Context, req MeasurementRequest) (*Measurement, error)
	// ListByDevice devolve as medições do dispositivo, da mais recente para a mais antiga.
	ListByDevice(ctx context.Context, deviceID int) ([]Measurement, error)
}

type measurementService struct {
	redisClient  clients.RedisClient
	logger       zerolog.Logger
	maxPerDevice int64
}

type ServiceOptions func(*measurementService)

func WithLogger(logger zerolog.Logger) ServiceOptions {
	return func(s *measurementService) {
		s.logger = logger
	}
}

// WithMaxPerDevice limita quantas medições são mantidas por dispositivo.
func WithMaxPerDevice(limit int64) ServiceOptions {
	return func(s *measurementService) {
		if limit > 0 {
			s.maxPerDevice = limit
		}
	}
}

var marshalFunc = json.Marshal
var uuidFunc = func() string { return uuid.New().String() }
var nowFunc = time.Now

func NewMeasurementService(redisClient clients.RedisClient, opts ...ServiceOptions) MeasurementService {
	registerMetrics()

	svc := &measurementService{
		redisClient:  redisClient,
		logger:       log.Logger,
		maxPerDevice: defaultMaxPerDevice,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func listKey(deviceID int) string {
	return fmt.Sprintf("mediciones:dispositivo:%d", deviceID)
}

func totalKey(deviceID int) string {
	return fmt.Sprintf("dispositivo:%d:potencia_total", deviceID)
}

func (s *measurementService) Record(ctx context.Context, req MeasurementRequest) (*Measurement, error) {
	m, err := NewMeasurement(req, uuidFunc(), nowFunc())
	if err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		storeDuration.Observe(time.Since(start).Seconds())
	}()

	// A detecção de pico nunca impede a gravação.
	s.detectSpike(ctx, m)

	data, err := marshalFunc(m)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar medição: %w", err)
	}

	key := listKey(m.DeviceID)
	if err := utils.Retry(func() error {
		return s.redisClient.LPush(ctx, key, data).Err()
	}, storeRetries); err != nil {
		return nil, fmt.Errorf("erro ao gravar medição no Redis: %w", err)
	}

	if err := s.redisClient.LTrim(ctx, key, 0, s.maxPerDevice-1).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Erro ao limitar histórico de medições")
	}

	if err := utils.Retry(func() error {
		return s.redisClient.IncrByFloat(ctx, totalKey(m.DeviceID), m.Power).Err()
	}, storeRetries); err != nil {
		return nil, fmt.Errorf("erro ao acumular potência no Redis: %w", err)
	}

	measurementsReceived.Inc()
	s.logger.Info().
		Str("id_medicion", m.ID).
		Int("id_dispositivo", m.DeviceID).
		Float64("potencia", m.Power).
		Msg("Medição registrada")
	return m, nil
}

// detectSpike compara a potência com a última medição gravada do dispositivo.
// Retorna true quando a nova potência é >= 1.8x a anterior.
func (s *measurementService) detectSpike(ctx context.Context, m *Measurement) bool {
	last, err := s.redisClient.LRange(ctx, listKey(m.DeviceID), 0, 0).Result()
	if err != nil {
		s.logger.Warn().Err(err).Int("id_dispositivo", m.DeviceID).Msg("Erro ao consultar medição anterior")
		return false
	}
	if len(last) == 0 {
		return false
	}

	var prev Measurement
	if err := json.Unmarshal([]byte(last[0]), &prev); err != nil {
		s.logger.Warn().Err(err).Int("id_dispositivo", m.DeviceID).Msg("Medição anterior inválida")
		return false
	}
	if prev.Power <= 0 || m.Power/prev.Power < spikeRatio {
		return false
	}

	spikesDetected.Inc()
	s.logger.Warn().
		Int("id_dispositivo", m.DeviceID).
		Float64("potencia", m.Power).
		Float64("previa", prev.Power).
		Msg("Pico de consumo detectado")
	return true
}

func (s *measurementService) ListByDevice(ctx context.Context, deviceID int) ([]Measurement, error) {
	raw, err := s.redisClient.LRange(ctx, listKey(deviceID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("erro ao listar medições no Redis: %w", err)
	}

	measurements := make([]Measurement, 0, len(raw))
	for _, item := range raw {
		var m Measurement
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			s.logger.Warn().Err(err).Int("id_dispositivo", deviceID).Msg("Ignorando medição inválida")
			continue
		}
		measurements = append(measurements, m)
	}
	return measurements, nil
}
