package readingsender

import "fmt"

// TransportError indica que a requisição não obteve resposta
// (timeout, conexão recusada, falha de DNS, cancelamento).
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("falha de transporte ao enviar para %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError indica que o endpoint respondeu com um status diferente de 200/201.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("endpoint respondeu com status %d: %s", e.StatusCode, e.Body)
}
