package main

import (
	"context"
	"log"

	"github.com/mariusel9911/Proiect-IC-sub001/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("booking API terminated: %v", err)
	}
}
