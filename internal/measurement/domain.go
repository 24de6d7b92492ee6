package measurement

import (
	"errors"
	"time"
)

var ErrMissingFields = errors.New("id_dispositivo, corriente, voltaje y potencia son obligatorios")

// MeasurementRequest é o corpo de POST /api/mediciones.
// Os campos numéricos são ponteiros para distinguir "ausente" de zero.
type MeasurementRequest struct {
	DeviceID int      `json:"id_dispositivo" binding:"required"`
	Current  *float64 `json:"corriente" binding:"required"`
	Voltage  *float64 `json:"voltaje" binding:"required"`
	Power    *float64 `json:"potencia" binding:"required"`
}

type Measurement struct {
	ID        string    `json:"id_medicion"`
	DeviceID  int       `json:"id_dispositivo"`
	Current   float64   `json:"corriente"`
	Voltage   float64   `json:"voltaje"`
	Power     float64   `json:"potencia"`
	Timestamp time.Time `json:"fecha_hora"`
}

// Construtor de Measurement
func NewMeasurement(req MeasurementRequest, id string, at time.Time) (*Measurement, error) {
	if req.DeviceID == 0 || req.Current == nil || req.Voltage == nil || req.Power == nil {
		return nil, ErrMissingFields
	}
	return &Measurement{
		ID:        id,
		DeviceID:  req.DeviceID,
		Current:   *req.Current,
		Voltage:   *req.Voltage,
		Power:     *req.Power,
		Timestamp: at.UTC(),
	}, nil
}
