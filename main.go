package main

import (
	"facegate.io/cmd"
	"facegate.io/infrastructure/env"
)

func init() {
	env.LoadEnv()
}

func main() {
	cmd.Execute()
}
