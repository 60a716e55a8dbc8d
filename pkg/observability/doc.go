/*
Package observability turns dialogue lifecycle hooks into Prometheus metrics and
structured log lines.

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	hooks := observability.Chain(metrics.Hooks(), observability.LogHooks(logger))
	bot, _ := infobot.New(store, infobot.WithLifecycleHooks(hooks))
*/
package observability
