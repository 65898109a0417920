// cmd/rugate/main.go
package main

import (
	"rugate/internal/appshell"
	"rugate/internal/rugateapp"
)

func main() {
	appshell.Main(rugateapp.RunContext)
}
