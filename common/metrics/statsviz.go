package metrics

import (
	"net/http"

	"github.com/arl/statsviz"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewMux /debug/statsviz 实时运行时监控，/metrics 调用指标
func NewMux() (*http.ServeMux, error) {
	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		return nil, err
	}
	mux.Handle("/metrics", promhttp.Handler())
	return mux, nil
}

// Serve 可视化实时监控 /debug/statsviz
func Serve(add string) error {
	mux, err := NewMux()
	if err != nil {
		return err
	}
	if err := http.ListenAndServe(add, mux); err != nil {
		return err
	}
	return nil
}
