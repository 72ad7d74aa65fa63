// cmd/argpred/main.go
package main

import (
	"argpred/internal/app"
	"argpred/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
