// Package headers строит набор заголовков, передаваемых при каждом вызове
// нижестоящего сервиса, из заголовков входящего запроса координатора.
package headers

import "net/http"

const (
	Authorization   = "Authorization"
	CorrelationID   = "X-Correlation-ID"
	RequestTimeout  = "X-Request-Timeout"
	Currency        = "Currency"
	superAdminToken = "1"
)

// Inbound хранит заголовки, извлечённые из входящего HTTP-запроса.
type Inbound struct {
	Authorization string
	Correlation   string
	Timeout       string
}

// FromRequest извлекает интересующие координатора заголовки из входящего запроса.
func FromRequest(r *http.Request) Inbound {
	return Inbound{
		Authorization: r.Header.Get(Authorization),
		Correlation:   r.Header.Get(CorrelationID),
		Timeout:       r.Header.Get(RequestTimeout),
	}
}

// ForUser возвращает заголовки для вызова от имени конечного пользователя:
// Authorization передаётся как есть.
func (in Inbound) ForUser() map[string]string {
	return in.base()
}

// ForSuperAdmin возвращает заголовки для привилегированного вызова:
// Authorization заменяется на литеральный системный токен.
func (in Inbound) ForSuperAdmin() map[string]string {
	h := in.base()
	h[Authorization] = superAdminToken
	return h
}

// ForStores — как ForUser, плюс обязательный для Stores заголовок Currency.
func (in Inbound) ForStores() map[string]string {
	h := in.ForUser()
	h[Currency] = "STQ"
	return h
}

// ForCustomer возвращает заголовки для вызова от имени конкретного клиента
// customerID, а не вызывающей стороны: Authorization заменяется на его id.
// Используется там, где у координатора нет токена клиента на руках — например,
// при обработке пачки обновлений статуса от Billing.
func (in Inbound) ForCustomer(customerID string) map[string]string {
	h := in.base()
	h[Authorization] = customerID
	return h
}

func (in Inbound) base() map[string]string {
	h := make(map[string]string, 3)
	if in.Authorization != "" {
		h[Authorization] = in.Authorization
	}
	if in.Correlation != "" {
		h[CorrelationID] = in.Correlation
	}
	if in.Timeout != "" {
		h[RequestTimeout] = in.Timeout
	}
	return h
}
