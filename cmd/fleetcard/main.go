package main

import (
	"cloupeer.io/fleetcard/cmd/fleetcard/app"
)

func main() {
	app.NewApp().Run()
}
