package main

import (
	"github.com/burningsea/craftcalc/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
