// reviewcli runs the coach-report parser against local files, for debugging
// report output without a database or queue.
package main

import (
	"os"

	"rewind/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
