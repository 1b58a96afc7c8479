package main

import (
	"os"

	"github.com/dmitrijs2005/streakkeeper/internal/server"
)

func main() {
	os.Exit(server.Main())
}
