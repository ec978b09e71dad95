package api

import "Neuron/internal/api/handler"

// HandlersGroup 持有所有 HTTP Handler
type HandlersGroup struct {
	MetricHandler  *handler.MetricHandler
	AuthorHandler  *handler.AuthorHandler
	ComputeHandler *handler.ComputeHandler
}
