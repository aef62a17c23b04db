package emu

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultStatus   = "status"
	resultAccepted = "accepted"
	resultIgnored  = "ignored"
	resultRejected = "rejected"
)

var (
	commandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aorura",
		Subsystem: "emu",
		Name:      "commands_total",
		Help:      "Commands handled by the emulator, by result",
	}, []string{"result"})

	transportsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "aorura",
		Subsystem: "emu",
		Name:      "transports",
		Help:      "Transports currently served",
	})
)
