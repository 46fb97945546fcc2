package main

import (
	"context"
	"log"

	api "github.com/sslogistics/logipro/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("api exited: %v", err)
	}
}
