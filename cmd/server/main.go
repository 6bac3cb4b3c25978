package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AnuroopSrivastava/Verdictify/internal/analyzer"
	"github.com/AnuroopSrivastava/Verdictify/internal/apperr"
	"github.com/AnuroopSrivastava/Verdictify/internal/config"
	"github.com/AnuroopSrivastava/Verdictify/internal/crawler"
	"github.com/AnuroopSrivastava/Verdictify/internal/ioformats"
	"github.com/AnuroopSrivastava/Verdictify/internal/metrics"
	"github.com/AnuroopSrivastava/Verdictify/pkg/logger"
)

const (
	maxUploadJobs = 500

	writeTimeout = 5 * time.Minute
	// batchBudget leaves room to encode the results before the write deadline.
	batchBudget = writeTimeout - 15*time.Second
)

type analyzeReq struct {
	URL   string `json:"url" validate:"required"`
	Limit Limit  `json:"limit" validate:"gte=0"`
}

type batchReq struct {
	URLs  []string `json:"urls" validate:"required,min=1,max=100,dive,required"`
	Limit Limit    `json:"limit" validate:"gte=0"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New().Errorf("load config: %v", err)
		os.Exit(1)
	}
	l := logger.NewWithLevel(cfg.LogLevel)
	if cfg.Scraper.APIKey == "" {
		l.Warnf("SCRAPER_API_KEY is not set; every analysis will fail until it is")
	}

	metrics.Init()
	client := crawler.NewProxyClient(cfg.Scraper, l)
	svc := analyzer.New(client, cfg.SiteHost, cfg.Tuning, l)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      logRequest(l, newMux(svc, l, cfg.BatchConcurrency, batchBudget)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		l.Infof("server listening on %s", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			l.Errorf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	l.Infof("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	l.Infof("bye")
}

func newMux(svc *analyzer.Service, l *logger.Logger, concurrency int, budget time.Duration) *http.ServeMux {
	validate := validator.New()
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("/metrics", promhttp.Handler())

	// POST /analyze  { "url": "https://www.myntra.com/...", "limit": 50 }
	mux.HandleFunc("/analyze", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Only POST allowed"})
			return
		}
		var req analyzeReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": payloadMessage(err)})
			return
		}
		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": validationMessage(err)})
			return
		}

		report, err := svc.Analyze(r.Context(), req.URL, int(req.Limit))
		if err != nil {
			l.Errorf("analyze %s: %v", req.URL, err)
			writeJSON(w, apperr.HTTPStatus(err), map[string]string{"error": apperr.Message(err)})
			return
		}
		writeJSON(w, http.StatusOK, report)
	})

	// POST /analyze/batch  { "urls": ["https://...", "..."], "limit": 20 }
	mux.HandleFunc("/analyze/batch", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Only POST allowed"})
			return
		}
		var req batchReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": payloadMessage(err)})
			return
		}
		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": validationMessage(err)})
			return
		}

		jobs := make([]ioformats.Job, len(req.URLs))
		for i, u := range req.URLs {
			jobs[i] = ioformats.Job{URL: u, Limit: int(req.Limit)}
		}
		ctx, cancel := context.WithTimeout(r.Context(), budget)
		defer cancel()
		writeJSON(w, http.StatusOK, svc.AnalyzeBatch(ctx, jobs, concurrency))
	})

	// POST /analyze/upload (multipart file=jobs.csv|jobs.ndjson) -> NDJSON
	mux.HandleFunc("/analyze/upload", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Only POST allowed"})
			return
		}
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart parse error"})
			return
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file part 'file' required"})
			return
		}
		defer f.Close()

		// copy to temp file to reuse format reader
		tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(hdr.Filename))
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "temp file error"})
			return
		}
		defer os.Remove(tmp.Name())
		_, err = io.Copy(tmp, f)
		tmp.Close()
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "copy error"})
			return
		}

		jobs, err := ioformats.ReadJobs(tmp.Name())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		if len(jobs) > maxUploadJobs {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("at most %d products per upload", maxUploadJobs)})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), budget)
		defer cancel()
		results := svc.AnalyzeBatch(ctx, jobs, concurrency)
		w.Header().Set("Content-Type", "application/x-ndjson")
		if err := ioformats.WriteNDJSON(w, results); err != nil {
			l.Errorf("write upload results: %v", err)
		}
	})

	return mux
}

func payloadMessage(err error) string {
	if errors.Is(err, errLimitNotNumber) {
		return errLimitNotNumber.Error()
	}
	return "invalid payload"
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid payload"
	}
	switch f := verrs[0].Field(); {
	case f == "URL":
		return "Invalid Myntra URL"
	case f == "Limit":
		return "limit must not be negative"
	case strings.HasPrefix(f, "URLs"):
		return "urls must hold 1 to 100 non-empty entries"
	}
	return "invalid payload"
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func logRequest(l *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		l.Infof("%s %s %d %s id=%s", r.Method, r.URL.Path, rec.status, time.Since(start), id)
	})
}
