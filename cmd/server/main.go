package main

import (
	"context"
	"log"

	"github.com/kri-sh27/s3transcribe/internal/server"
	"github.com/kri-sh27/s3transcribe/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
