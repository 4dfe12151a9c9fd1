// Command evq replays event dispatch scenarios.
package main

import (
	"os"

	"github.com/tessro/evq/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
