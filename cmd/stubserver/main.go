// Command stubserver runs the in-memory stub backend standalone, so the
// terminal client can be exercised without a production deployment:
//
//	stubserver -addr :8081 -envelope data
//
// A donor account alice@example.com / secret1 is pre-seeded.
package main

import (
	"flag"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/avezina/givehub/internal/logging"
	"github.com/avezina/givehub/internal/stubapi"
)

func main() {
	addr := flag.String("addr", ":8081", "listen address")
	envelope := flag.String("envelope", "flat", "response envelope style: flat | data | nested")
	flag.Parse()

	zl, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()
	logger := logging.NewZapLogger(zl)

	srv := stubapi.New(
		stubapi.WithEnvelope(stubapi.Envelope(*envelope)),
		stubapi.WithLogger(logger),
	)
	srv.SeedUser("Alice", "alice@example.com", "secret1", "user")

	zl.Sugar().Infow("stub backend listening", "addr", *addr, "envelope", *envelope)
	if err := http.ListenAndServe(*addr, srv.Router()); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
