package config

import (
	"flag"
	"os"
	"time"

	"github.com/avezina/givehub/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the backend API
//	-t int      request timeout in seconds
//	-s string   session store driver: file | sqlite
//	-p string   session store path
//
// Only the flags listed above are parsed here; os.Args is filtered through
// flagx.FilterArgs so flags owned by other components are left alone.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-s", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend API")
	timeoutSec := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StoreDriver, "s", cfg.StoreDriver, "session store driver: file | sqlite")
	fs.StringVar(&cfg.StorePath, "p", cfg.StorePath, "session store path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeoutSec) * time.Second
}
