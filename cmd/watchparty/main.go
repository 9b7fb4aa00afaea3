package main

import "github.com/danprtma/watchparty/internal/cli"

func main() {
	cli.Execute()
}
