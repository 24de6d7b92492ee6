package utils

import "fmt"

// Retry executa fn até que ela retorne nil ou que as tentativas acabem.
// O erro final carrega o último erro retornado por fn.
func Retry(fn func() error, retries int) error {
	var lastErr error
	for i := 0; i < retries; i++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("falha após %d tentativas: %w", retries, lastErr)
}
