package mq

import (
	"context"
	"encoding/json"
	"log"

	"arabianx/models"
	"arabianx/rdx"
)

const OrderEventsChannel = "order-events"

// EmitOrderEvent publishes an order event to Redis; the admin feed worker
// subscribes on the other end. Failures are logged, never fatal — the order
// write already happened.
func EmitOrderEvent(ctx context.Context, event models.OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("EmitOrderEvent marshal error: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, OrderEventsChannel, data).Err(); err != nil {
		log.Printf("EmitOrderEvent publish error: %v", err)
	}
}
