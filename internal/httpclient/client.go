// Package httpclient реализует единый HTTP-клиент для вызовов нижестоящих сервисов,
// обобщая webapi.BillingClient на произвольный метод, URL и типизированный ответ.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrorEnvelope — структура ошибки, которую нижестоящие сервисы возвращают на 4xx/5xx.
type ErrorEnvelope struct {
	Payload     json.RawMessage `json:"payload,omitempty"`
	Code        string          `json:"code,omitempty"`
	Description string          `json:"description,omitempty"`
}

// StatusError — ошибка HTTP-вызова нижестоящего сервиса с конкретным статусом.
// Network-уровневые сбои (DNS, соединение, таймаут) оборачиваются в StatusError
// с Status == 0 и Envelope == nil, отличая их от ответов сервиса.
type StatusError struct {
	Service  string
	Status   int
	Envelope *ErrorEnvelope
	Err      error
}

func (e *StatusError) Error() string {
	if e.Envelope != nil {
		return fmt.Sprintf("%s ответил %d: %s", e.Service, e.Status, e.Envelope.Description)
	}
	if e.Err != nil {
		return fmt.Sprintf("вызов %s завершился ошибкой: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("%s ответил %d", e.Service, e.Status)
}

func (e *StatusError) Unwrap() error { return e.Err }

// IsNetworkFailure сообщает, был ли вызов выполнен вовсе (нет HTTP-ответа).
func (e *StatusError) IsNetworkFailure() bool { return e.Envelope == nil && e.Status == 0 }

// Client — разделяемый HTTP-клиент поверх одного пула соединений.
type Client struct {
	http *http.Client
}

// New создаёт клиент с заданными параметрами пула и таймаутом по умолчанию.
func New(maxIdleConns, maxIdleConnsPerHost int, idleConnTimeout, defaultTimeout time.Duration) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        maxIdleConns,
				MaxIdleConnsPerHost: maxIdleConnsPerHost,
				IdleConnTimeout:     idleConnTimeout,
			},
		},
	}
}

// Do выполняет запрос method к url с необязательным JSON-телом body, декодирует
// JSON-ответ 2xx в out (может быть nil), возвращает *StatusError на 4xx/5xx или сбой транспорта.
func (c *Client) Do(ctx context.Context, service, method, url string, headers map[string]string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("маршалинг тела запроса к %s: %w", service, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("построение запроса к %s: %w", service, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &StatusError{Service: service, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var env ErrorEnvelope
		_ = json.NewDecoder(resp.Body).Decode(&env)
		return &StatusError{Service: service, Status: resp.StatusCode, Envelope: &env}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("декодирование ответа от %s: %w", service, err)
	}
	return nil
}
