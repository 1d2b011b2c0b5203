// Package metrics define las métricas Prometheus del servicio. Van en un
// package propio para evitar ciclos de import entre los services y HTTP.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	LoginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "janus_logins_total",
		Help: "Intentos de login por resultado (ok|failed|error)",
	}, []string{"result"})

	TokensIssuedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "janus_tokens_issued_total",
		Help: "Access tokens emitidos",
	})

	TokensRevokedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "janus_tokens_revoked_total",
		Help: "Tokens insertados en el blacklist",
	})

	AuthorizeDecisionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "janus_authorize_decisions_total",
		Help: "Decisiones del resolver RBAC por recurso pedido (allow|deny)",
	}, []string{"decision"})

	BlacklistErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "janus_blacklist_errors_total",
		Help: "Fallas de acceso al store del blacklist (el authorize falla closed)",
	})

	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "janus_http_request_duration_seconds",
		Help:    "Duración de requests HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method", "status"})
)

// Register registra las métricas en el registry dado (default si es nil).
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{
		LoginsTotal,
		TokensIssuedTotal,
		TokensRevokedTotal,
		AuthorizeDecisionsTotal,
		BlacklistErrorsTotal,
		RequestDuration,
	} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
