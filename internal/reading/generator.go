package reading

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/ThalysSilva/simulador-dispositivo/pkg/utils"
)

const (
	voltageSpread     = 5.0
	minCurrent        = 0.01
	currentLowerRatio = 0.2
	currentUpperRatio = 3.0
	minAnomalyFactor  = 1.5
	maxAnomalyFactor  = 3.0
	powerDecimals     = 2
	voltageDecimals   = 2
	currentDecimals   = 3
)

var (
	ErrInvalidBaseCurrent = errors.New("corrente base deve ser maior que 0")
	ErrInvalidAnomaly     = errors.New("probabilidade de anomalia fora de [0, 1]")
)

type Generator interface {
	// Generate produz uma nova leitura a partir da fonte aleatória do gerador.
	Generate() Reading
}

type GeneratorOptions struct {
	BaseVoltage        float64
	BaseCurrent        float64
	AnomalyProbability float64
	// Seed torna a sequência reproduzível. Nil usa uma semente baseada no relógio.
	Seed *int64
}

type generator struct {
	rng                *rand.Rand
	baseVoltage        float64
	baseCurrent        float64
	anomalyProbability float64
}

// NewGenerator valida as opções e cria um gerador com sua própria fonte aleatória.
func NewGenerator(opts GeneratorOptions) (Generator, error) {
	if opts.BaseCurrent <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseCurrent, opts.BaseCurrent)
	}
	if opts.AnomalyProbability < 0 || opts.AnomalyProbability > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAnomaly, opts.AnomalyProbability)
	}

	seed := time.Now().UnixNano()
	if opts.Seed != nil {
		seed = *opts.Seed
	}

	return &generator{
		rng:                rand.New(rand.NewSource(seed)),
		baseVoltage:        opts.BaseVoltage,
		baseCurrent:        opts.BaseCurrent,
		anomalyProbability: opts.AnomalyProbability,
	}, nil
}

// Generate sorteia tensão e corrente, calcula a potência e, com a
// probabilidade configurada, aplica um pico multiplicando potência e corrente.
// A ordem dos sorteios é fixa: tensão, corrente, teste de anomalia, fator.
func (g *generator) Generate() Reading {
	voltage := g.uniform(g.baseVoltage-voltageSpread, g.baseVoltage+voltageSpread)
	current := g.uniform(math.Max(minCurrent, g.baseCurrent*currentLowerRatio), g.baseCurrent*currentUpperRatio)
	power := utils.Round(voltage*current, powerDecimals)

	var r Reading
	if g.rng.Float64() < g.anomalyProbability {
		factor := g.uniform(minAnomalyFactor, maxAnomalyFactor)
		power = utils.Round(power*factor, powerDecimals)
		current = utils.Round(current*factor, currentDecimals)
		r.Anomaly = true
		r.Factor = factor
	}

	r.Current = utils.Round(current, currentDecimals)
	r.Voltage = utils.Round(voltage, voltageDecimals)
	r.Power = utils.Round(power, powerDecimals)
	return r
}

func (g *generator) uniform(a, b float64) float64 {
	return a + (b-a)*g.rng.Float64()
}
