package httpapi

import "net/http"

func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Data (the dashboard reads these)
	dh := DataHandler{DB: d.DB}
	mux.HandleFunc("/national", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.National,
	}))
	mux.HandleFunc("/firm-age", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.FirmAge,
	}))
	mux.HandleFunc("/states", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.States,
	}))

	// Pipeline
	rh := RefreshHandler{Status: d.RunStatus, Run: d.RunPipeline}
	mux.HandleFunc("/refresh/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.GetStatus,
	}))
	mux.HandleFunc("/refresh/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: rh.RunNow,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}
