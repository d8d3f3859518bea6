package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
)

type TrackingEvent struct {
	IDEncomenda string `json:"id_encomenda"`
	Endereco    string `json:"endereco"`
}

var cities = []string{
	"São Paulo", "Rio de Janeiro", "Belo Horizonte",
	"Curitiba", "Porto Alegre", "Salvador",
}

func generateRandomEvent(orderIDs []string) TrackingEvent {
	return TrackingEvent{
		IDEncomenda: orderIDs[rand.Intn(len(orderIDs))],
		Endereco: fmt.Sprintf("Rua %d, %s",
			rand.Intn(1000), cities[rand.Intn(len(cities))]),
	}
}

func main() {
	addr := kafka.TCP("localhost:9092")

	writer := &kafka.Writer{
		Addr:  addr,
		Topic: "tracking-events",
	}

	// Ids of orders created beforehand, e.g. via POST /encomenda.
	orderIDs := []string{
		"1f7f44a5-0ad5-4b58-8a5c-55ff13b8a1f2",
		"7c2e1d9b-3f60-4f0a-9c1d-2e8b5a4f6d30",
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ticker := time.NewTicker(2 * time.Second)
	for {
		select {
		case <-ticker.C:
			event := generateRandomEvent(orderIDs)
			data, _ := json.Marshal(event)
			writer.WriteMessages(context.Background(), kafka.Message{Value: data})
			log.Println("tracking event generated", event.IDEncomenda)
		case <-ctx.Done():
			return
		}
	}
}
