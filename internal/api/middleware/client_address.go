package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
)

const addressKey contextKey = "client_address"

// ClientAddress определяет адрес клиента для ограничения попыток входа.
// Заголовки прокси учитываются только при trustProxy и только если запрос пришёл от доверенного прокси.
// X-Forwarded-For разбирается справа налево: первый адрес не из trustedProxies считается клиентом.
// При пустом trustedProxies доверенным считается только непосредственный собеседник, и клиент это крайний правый адрес.
func ClientAddress(trustProxy bool, trustedProxies []*net.IPNet) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			address := resolveAddress(r, trustProxy, trustedProxies)
			ctx := context.WithValue(r.Context(), addressKey, address)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClientAddress возвращает адрес клиента из контекста
func GetClientAddress(ctx context.Context) string {
	address, _ := ctx.Value(addressKey).(string)
	return address
}

func resolveAddress(r *http.Request, trustProxy bool, trustedProxies []*net.IPNet) string {
	peer := peerAddress(r)
	if !trustProxy {
		return peer
	}

	if len(trustedProxies) > 0 && !isTrusted(net.ParseIP(peer), trustedProxies) {
		return peer
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if client := clientFromForwarded(forwarded, trustedProxies); client != "" {
			return client
		}
		return peer
	}

	if realIP := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); realIP != nil {
		return realIP.String()
	}

	return peer
}

// clientFromForwarded возвращает пустую строку, если цепочка содержит некорректный адрес
// или состоит только из доверенных прокси
func clientFromForwarded(forwarded string, trustedProxies []*net.IPNet) string {
	hops := strings.Split(forwarded, ",")
	for i := len(hops) - 1; i >= 0; i-- {
		ip := net.ParseIP(strings.TrimSpace(hops[i]))
		if ip == nil {
			return ""
		}
		if len(trustedProxies) == 0 || !isTrusted(ip, trustedProxies) {
			return ip.String()
		}
	}
	return ""
}

func isTrusted(ip net.IP, trustedProxies []*net.IPNet) bool {
	if ip == nil {
		return false
	}
	for _, network := range trustedProxies {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

func peerAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.String()
	}
	return host
}
