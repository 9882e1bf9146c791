// Command liftlog is a terminal client for the liftlog training API.
package main

import "github.com/liftlog-dev/liftlog/internal/cli"

func main() {
	cli.Execute()
}
