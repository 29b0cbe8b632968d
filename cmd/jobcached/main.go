// Command jobcached runs a JobCache with a Postgres-backed producer feeding
// it and a worker pool draining it, plus an optional Prometheus /metrics
// endpoint.
package main

import (
	"fmt"
	"os"

	"github.com/Andrej220/go-utils/jobcache/internal/cli"
)

func main() {
	if err := cli.BuildCLI().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
