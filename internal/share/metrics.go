package share

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolve outcomes, used as the outcome label.
const (
	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeInvalid  = "invalid"
	outcomeExpired  = "expired"
	outcomeError    = "error"
)

var (
	intentsIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sharedrop",
		Name:      "intents_issued_total",
		Help:      "Upload intents issued.",
	})
	codeCollisionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sharedrop",
		Name:      "code_collisions_total",
		Help:      "Generated share codes rejected because they were already taken.",
	})
	sharesConfirmedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sharedrop",
		Name:      "shares_confirmed_total",
		Help:      "Share records written by upload confirmation.",
	})
	resolvesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sharedrop",
		Name:      "resolves_total",
		Help:      "Share code lookups by outcome.",
	}, []string{"outcome"})
)
