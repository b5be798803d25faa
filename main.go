// Package main is the entry point of the creatv terminal client.
package main

import (
	"github.com/creatv/creatv/cmd"
	"github.com/creatv/creatv/config"
	"github.com/creatv/creatv/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
