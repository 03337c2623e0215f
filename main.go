package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"carpark-cloud/internal/audit"
	"carpark-cloud/internal/auth"
	"carpark-cloud/internal/config"
	"carpark-cloud/internal/eventing"
	facilityapp "carpark-cloud/internal/facility/application"
	facilityevents "carpark-cloud/internal/facility/application/events"
	facility "carpark-cloud/internal/facility/domain"
	facilitymemory "carpark-cloud/internal/facility/infrastructure/memory"
	facilitypg "carpark-cloud/internal/facility/infrastructure/postgres"
	facilityhttp "carpark-cloud/internal/facility/interfaces/http"
	"carpark-cloud/internal/observability/metrics"
	reportingapp "carpark-cloud/internal/reporting/application"
	reportingevents "carpark-cloud/internal/reporting/application/events"
	reportfile "carpark-cloud/internal/reporting/infrastructure/file"
	reportingpg "carpark-cloud/internal/reporting/infrastructure/postgres"
	reportinginterfaces "carpark-cloud/internal/reporting/interfaces"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger := log.New(os.Stdout, "", log.LstdFlags)

	var db *sql.DB
	if cfg.DatabaseURL != "" {
		db, err = sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("db open error: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatalf("db ping error: %v", err)
		}
	}

	metrics.Init()

	ledger, err := facility.NewLedger(cfg.Capacity, cfg.PricingTable())
	if err != nil {
		logger.Fatalf("ledger error: %v", err)
	}
	clock := facility.SystemClock{}
	bus := eventing.NewInMemoryBus()

	var auditLogger audit.Logger = audit.NewLogWriter(logger)
	if db != nil {
		auditLogger = audit.NewRepository(db)
	}

	facilityOpts := []facilityapp.Option{
		facilityapp.WithEventBus(bus),
		facilityapp.WithLogger(logger),
	}
	if db != nil {
		facilityOpts = append(facilityOpts, facilityapp.WithReceiptArchive(facilitypg.NewReceiptArchive(db)))
	} else {
		facilityOpts = append(facilityOpts, facilityapp.WithReceiptArchive(facilitymemory.NewReceiptArchive()))
	}
	facilityService, err := facilityapp.NewService(ledger, clock, facilityOpts...)
	if err != nil {
		logger.Fatalf("facility service error: %v", err)
	}

	fileSink, err := reportfile.NewSink(cfg.ReportFile)
	if err != nil {
		logger.Fatalf("report sink error: %v", err)
	}
	reportOpts := []reportingapp.Option{
		reportingapp.WithSink(fileSink),
		reportingapp.WithEventBus(bus),
	}
	if db != nil {
		reportOpts = append(reportOpts, reportingapp.WithSink(reportingpg.NewReportArchive(db)))
	}
	reportService, err := reportingapp.NewReportService(facilityService, reportingapp.NewRenderer(cfg.Currency), clock, reportOpts...)
	if err != nil {
		logger.Fatalf("report service error: %v", err)
	}

	eventing.Subscribe(bus, func(ctx context.Context, evt facilityevents.VehicleAdmitted) error {
		logger.Printf("vehicle admitted: no=%s type=%s slot=%d", evt.VehicleID, evt.Class, evt.SlotID)
		return nil
	})
	eventing.Subscribe(bus, func(ctx context.Context, evt facilityevents.ReceiptIssued) error {
		logger.Printf("receipt issued: no=%s slot=%d hours=%.2f amount=%.2f",
			evt.Receipt.VehicleID, evt.Receipt.SlotID, evt.Receipt.Hours, evt.Receipt.Amount)
		return nil
	})
	eventing.Subscribe(bus, func(ctx context.Context, evt reportingevents.ReportGenerated) error {
		logger.Printf("daily report generated: vehicles=%d revenue=%.2f", evt.Report.Vehicles, evt.Report.Revenue)
		return nil
	})

	facilityHandler, err := facilityhttp.NewHandler(facilityService, auditLogger)
	if err != nil {
		logger.Fatalf("facility handler error: %v", err)
	}
	reportHandler, err := reportinginterfaces.NewReportHandler(reportService, cfg.Currency, auditLogger)
	if err != nil {
		logger.Fatalf("report handler error: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/vehicles/entry", facilityHandler)
	mux.Handle("/api/v1/slots/release", facilityHandler)
	mux.Handle("/api/v1/status", facilityHandler)
	mux.Handle("/api/v1/reports", reportHandler)
	mux.Handle("/api/v1/reports/daily", reportHandler)
	mux.Handle("/api/v1/reports/daily/export.pdf", reportHandler)
	mux.Handle("/api/v1/reports/daily/export.xlsx", reportHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	handler := http.Handler(mux)
	if cfg.JWTSecret != "" {
		policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
		handler = auth.NewMiddleware([]byte(cfg.JWTSecret), policy).Wrap(handler)
	} else {
		logger.Printf("warning: AUTH_JWT_SECRET not set, api is unauthenticated")
	}

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(handler, logger)}
	logger.Printf("carpark http listening on %s (capacity=%d)", cfg.HTTPAddr, cfg.Capacity)
	logger.Fatal(server.ListenAndServe())
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
