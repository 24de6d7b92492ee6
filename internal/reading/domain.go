package reading

// Reading é uma medição sintética (corrente, tensão, potência).
// É criada a cada ciclo e descartada após a tentativa de envio.
type Reading struct {
	Current float64 `json:"corriente"`
	Voltage float64 `json:"voltaje"`
	Power   float64 `json:"potencia"`

	// Anomaly e Factor são apenas locais: indicam se um pico foi injetado e com qual multiplicador.
	Anomaly bool    `json:"-"`
	Factor  float64 `json:"-"`
}
