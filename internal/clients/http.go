package clients

import (
	"net/http"
	"time"
)

// NewHTTPClient cria o cliente usado para enviar medições.
// Cada envio abre sua própria conexão: keep-alive fica desabilitado.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			DisableKeepAlives:   true,
			TLSHandshakeTimeout: timeout,
		},
	}
}
