package middleware

import (
	"net"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/danilovkiri/dk_go_study_helper/internal/config"
)

// TrustedNetHandler sets object structure.
type TrustedNetHandler struct {
	Resolved   bool
	TrustProxy bool
	IP         net.IP
	IPNet      *net.IPNet
}

// NewTrustedNetHandler initializes a new trusted network handler.
// An empty or malformed subnet leaves the handler unresolved, which denies every request.
// Proxy headers are consulted only when cfg.TrustProxy is set.
func NewTrustedNetHandler(cfg *config.Config) *TrustedNetHandler {
	ip, ipnet, err := net.ParseCIDR(cfg.TrustedSubnet)
	if err != nil {
		log.Warn("trusted network was not initialized: ", err)
		return &TrustedNetHandler{
			Resolved:   false,
			TrustProxy: cfg.TrustProxy,
		}
	}
	return &TrustedNetHandler{
		Resolved:   true,
		TrustProxy: cfg.TrustProxy,
		IP:         ip,
		IPNet:      ipnet,
	}
}

// TrustedNetworkHandler provides trusted network handling functionality.
func (tn *TrustedNetHandler) TrustedNetworkHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !tn.Resolved {
			http.Error(w, "Internal subnet access violation", http.StatusForbidden)
			return
		}
		if !tn.trusted(r) {
			log.WithField("remote", r.RemoteAddr).Warn("internal endpoint requested from untrusted address")
			http.Error(w, "Internal subnet access violation", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// trusted checks the peer address first and, behind a trusted proxy, X-Real-IP and then
// the first X-Forwarded-For entry.
func (tn *TrustedNetHandler) trusted(r *http.Request) bool {
	ipStr, _, err := net.SplitHostPort(r.RemoteAddr)
	if ip := net.ParseIP(ipStr); err == nil && ip != nil && tn.IPNet.Contains(ip) {
		return true
	}
	if !tn.TrustProxy {
		return false
	}
	ip := net.ParseIP(r.Header.Get("X-Real-IP"))
	if ip == nil {
		first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
		ip = net.ParseIP(strings.TrimSpace(first))
	}
	return ip != nil && tn.IPNet.Contains(ip)
}
