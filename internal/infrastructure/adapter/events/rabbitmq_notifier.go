package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
)

// Routing keys for published auction events
const (
	RoutingKeyBidPlaced       = "auction.bid.placed"
	RoutingKeyAuctionSettled  = "auction.settled"
	RoutingKeyPenaltyAssessed = "auction.penalty.assessed"
)

// RabbitMQNotifier implements core.Notifier on top of a RabbitMQ topic exchange
type RabbitMQNotifier struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   coreport.Logger
}

// NewRabbitMQNotifier dials the broker and declares the exchange
func NewRabbitMQNotifier(url, exchange string, logger coreport.Logger) (*RabbitMQNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	// Ensure the exchange exists
	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &RabbitMQNotifier{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		logger:   logger,
	}, nil
}

// PublishBidPlaced publishes a bid placed event
func (n *RabbitMQNotifier) PublishBidPlaced(ctx context.Context, event coreport.BidPlacedEvent) error {
	return n.publish(ctx, RoutingKeyBidPlaced, event)
}

// PublishAuctionSettled publishes a settlement event
func (n *RabbitMQNotifier) PublishAuctionSettled(ctx context.Context, event coreport.AuctionSettledEvent) error {
	return n.publish(ctx, RoutingKeyAuctionSettled, event)
}

// PublishPenaltyAssessed publishes a penalty event
func (n *RabbitMQNotifier) PublishPenaltyAssessed(ctx context.Context, event coreport.PenaltyAssessedEvent) error {
	return n.publish(ctx, RoutingKeyPenaltyAssessed, event)
}

// Close closes the channel and connection
func (n *RabbitMQNotifier) Close() error {
	if err := n.channel.Close(); err != nil {
		n.conn.Close()
		return err
	}
	return n.conn.Close()
}

func (n *RabbitMQNotifier) publish(ctx context.Context, routingKey string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = n.channel.PublishWithContext(ctx,
		n.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}

	n.logger.Debug("Published event", map[string]any{
		"routing_key": routingKey,
		"exchange":    n.exchange,
	})
	return nil
}
