// Command cdis-gatewayd runs a gateway built from a TOML node
// specification: it wires internal/gwconfig -> internal/gateway.Builder
// -> Graph.Run, drains the graph's Event channel into an
// internal/gwstats.Collector, records every decoded PDU leaving the
// externally-exposed outgoing channel to a recorder.Recorder,
// and serves the stats dashboard plus recorder admin routes over HTTP.
// Structured the way the teacher's own main.go and cmd/lidar/lidar.go
// wire their HTTP server, signal handling, and admin routes together.
package main

import (
	"context"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dis-interop/cdis-gateway/internal/dis"
	"github.com/dis-interop/cdis-gateway/internal/gateway"
	"github.com/dis-interop/cdis-gateway/internal/gwconfig"
	"github.com/dis-interop/cdis-gateway/internal/gwstats"
	"github.com/dis-interop/cdis-gateway/internal/version"
	"github.com/dis-interop/cdis-gateway/recorder"
)

var (
	specPath    = flag.String("spec", "gateway.toml", "Path to the gateway TOML specification")
	listen      = flag.String("listen", ":8090", "HTTP listen address for the stats dashboard and recorder admin routes")
	grpcListen  = flag.String("grpc-listen", ":9090", "gRPC listen address for the health service")
	recordDB    = flag.String("record-db", "", "Path to the recorder SQLite database (disabled if empty)")
	direction   = flag.String("record-direction", string(recorder.DirectionInbound), "Direction label recorded for PDUs seen on the gateway's external outgoing channel")
	showVersion = flag.Bool("version", false, "Print version information and exit")
)

// healthServiceName is the grpc_health_v1 service name health checks
// address to ask about the gateway's own runtime, as opposed to the
// empty string (overall server health).
const healthServiceName = "cdis_gatewayd.Gateway"

func main() {
	flag.Parse()

	if *showVersion {
		log.Printf("cdis-gatewayd %s (commit %s, built %s)", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	runID := uuid.NewString()
	log.Printf("cdis-gatewayd starting, run_id=%s", runID)

	specBytes, err := os.ReadFile(*specPath)
	if err != nil {
		log.Fatalf("failed to read gateway spec %s: %v", *specPath, err)
	}

	spec, err := gwconfig.ParseGatewaySpec(specBytes)
	if err != nil {
		log.Fatalf("failed to parse gateway spec: %v", err)
	}

	builder := gateway.NewBuilder()
	graph, err := builder.Build(spec)
	if err != nil {
		log.Fatalf("failed to build gateway graph: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	collector := gwstats.NewCollector()

	var rec *recorder.Recorder
	if *recordDB != "" {
		rec, err = recorder.Open(*recordDB)
		if err != nil {
			log.Fatalf("failed to open recorder database: %v", err)
		}
		defer rec.Close()

		migrationsFS, err := recorder.MigrationsFS()
		if err != nil {
			log.Fatalf("failed to load recorder migrations: %v", err)
		}
		if err := rec.MigrateUp(migrationsFS); err != nil {
			log.Fatalf("failed to apply recorder migrations: %v", err)
		}
	}

	healthServer := health.NewServer()
	healthServer.SetServingStatus(healthServiceName, healthpb.HealthCheckResponse_SERVING)

	handle := graph.Run(ctx)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		runGRPCHealthServer(ctx, *grpcListen, healthServer)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		collector.Consume(ctx.Done(), graph.Events())
		log.Print("stats collector routine terminated")
	}()

	if rec != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.Run()
			log.Print("recorder routine terminated")
		}()

		if graph.Outgoing != nil {
			wg.Add(1)
			go func() {
				defer wg.Done()
				recordOutgoing(ctx, graph.Outgoing, rec, recorder.Direction(*direction))
			}()
		}
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		runHTTPServer(ctx, *listen, collector, rec)
	}()

	handle.Wait()
	healthServer.SetServingStatus(healthServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	if rec != nil {
		close(rec.Frames())
		<-rec.Done()
	}
	wg.Wait()
	log.Print("cdis-gatewayd shut down")
}

// runGRPCHealthServer mounts the prebuilt grpc_health_v1 service (no
// hand-written .proto) reporting gateway liveness, per SPEC_FULL.md's
// domain-stack wiring for google.golang.org/grpc.
func runGRPCHealthServer(ctx context.Context, addr string, healthServer *health.Server) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("failed to listen for gRPC health service: %v", err)
	}

	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, healthServer)

	go func() {
		if err := srv.Serve(lis); err != nil && ctx.Err() == nil {
			log.Fatalf("gRPC health server failed: %v", err)
		}
	}()

	<-ctx.Done()
	srv.GracefulStop()
}

// recordOutgoing forwards every message observed on the graph's
// external outgoing channel to the recorder, best-effort: frames that
// are not dis.Pdu values (e.g. raw bytes from a pass_through-only
// graph) are skipped, since the recorder's schema stores decoded PDUs.
func recordOutgoing(ctx context.Context, outgoing <-chan any, rec *recorder.Recorder, dir recorder.Direction) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-outgoing:
			if !ok {
				return
			}
			pdu, ok := msg.(dis.Pdu)
			if !ok {
				continue
			}
			select {
			case rec.Frames() <- recorder.Frame{Pdu: pdu, Direction: dir, Observed: time.Now()}:
			default:
			}
		}
	}
}

func runHTTPServer(ctx context.Context, addr string, collector *gwstats.Collector, rec *recorder.Recorder) {
	mux := http.NewServeMux()
	mux.HandleFunc("/gwstats", collector.ServeDashboard)
	if rec != nil {
		if err := rec.AttachAdminRoutes(mux); err != nil {
			log.Printf("failed to attach recorder admin routes: %v", err)
		}
	}

	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start HTTP server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
}
