package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	DefaultHost           = "http://127.0.0.1:3000/api"
	DefaultIntervalSecond = 2.0
	DefaultBaseCurrent    = 1.0
	DefaultBaseVoltage    = 120.0
	DefaultTimeout        = 5 * time.Second
	DefaultLogLevel       = "info"
	DefaultLogDir         = "."

	measurementsPath = "/mediciones"
)

var (
	ErrMissingDeviceID    = errors.New("config: id_dispositivo obrigatório")
	ErrInvalidHost        = errors.New("config: host inválido")
	ErrInvalidInterval    = errors.New("config: intervalo não pode ser negativo")
	ErrInvalidBaseCurrent = errors.New("config: corrente base deve ser maior que 0")
	ErrInvalidBaseVoltage = errors.New("config: tensão base deve ser maior que 0")
	ErrInvalidAnomaly     = errors.New("config: probabilidade de anomalia fora de [0, 1]")
	ErrInvalidTimeout     = errors.New("config: timeout deve ser maior que 0")
	ErrInvalidLogLevel    = errors.New("config: nível de log inválido")
)

// Config reúne os parâmetros da sessão do simulador.
// É preenchida uma única vez na inicialização e não muda depois disso.
type Config struct {
	Host               string
	DeviceID           int
	IntervalSeconds    float64
	BaseCurrent        float64
	BaseVoltage        float64
	AnomalyProbability float64
	Seed               *int64
	Timeout            time.Duration
	LogLevel           string
	LogDir             string
	MetricsAddr        string
}

// Default retorna a configuração padrão, com o host lido de API_BASE quando definido.
func Default() Config {
	return Config{
		Host:            EnvOr("API_BASE", DefaultHost),
		IntervalSeconds: DefaultIntervalSecond,
		BaseCurrent:     DefaultBaseCurrent,
		BaseVoltage:     DefaultBaseVoltage,
		Timeout:         DefaultTimeout,
		LogLevel:        EnvOr("LOG_LEVEL", DefaultLogLevel),
		LogDir:          EnvOr("LOG_DIR", DefaultLogDir),
		MetricsAddr:     os.Getenv("METRICS_ADDR"),
	}
}

func (c Config) Validate() error {
	if c.DeviceID == 0 {
		return ErrMissingDeviceID
	}
	u, err := url.Parse(c.Host)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidHost, c.Host)
	}
	if c.IntervalSeconds < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, c.IntervalSeconds)
	}
	if c.BaseCurrent <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidBaseCurrent, c.BaseCurrent)
	}
	if c.BaseVoltage <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidBaseVoltage, c.BaseVoltage)
	}
	if c.AnomalyProbability < 0 || c.AnomalyProbability > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidAnomaly, c.AnomalyProbability)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidTimeout, c.Timeout)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}

// Endpoint é a URL completa de ingestão: {host}/mediciones.
func (c Config) Endpoint() string {
	return strings.TrimRight(c.Host, "/") + measurementsPath
}

func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds * float64(time.Second))
}

// EnvOr devolve a variável de ambiente key ou fallback quando ela está vazia.
func EnvOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// LoadDotEnv carrega os arquivos informados (".env" por padrão) no ambiente
// do processo sem sobrescrever variáveis já definidas. Arquivo ausente não é erro.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: falha ao carregar %s: %w", p, err)
		}
	}
	return nil
}
