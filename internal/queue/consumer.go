package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MattyxD3D/pacematch-connect-sub001/internal/domain"
	"github.com/MattyxD3D/pacematch-connect-sub001/internal/logger"
	"github.com/MattyxD3D/pacematch-connect-sub001/internal/service"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartWorkoutConsumer connects to RabbitMQ, declares the workout-completed
// queue (durable), and consumes it, running the award flow for each message.
// It runs a reconnect loop with capped backoff and keeps going until ctx is
// cancelled. Messages that cannot be decoded are rejected without requeue;
// award failures are logged and acked — points are a bonus on top of the
// workout, a broken award must not wedge the queue.
func StartWorkoutConsumer(ctx context.Context, url, queueName string, challenges service.ChallengeService) {
	backoff := time.Second
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		conn, err := amqp.Dial(url)
		if err != nil {
			logger.Warning("workout-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(ctx, conn, queueName, challenges); err != nil {
			if errors.Is(err, context.Canceled) {
				_ = conn.Close()
				return
			}
			logger.Warning("workout-consumer: consume loop ended: %v; reconnecting", err)
			_ = conn.Close()
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, queueName string, challenges service.ChallengeService) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		logger.Warning("workout-consumer: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := handleMessage(ctx, d.Body, challenges); err != nil {
				logger.Warning("workout-consumer: handle message failed: %v", err)
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func handleMessage(ctx context.Context, body []byte, challenges service.ChallengeService) error {
	var ev WorkoutCompletedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.UserID == "" || ev.WorkoutID == "" {
		return errors.New("event missing user_id or workout_id")
	}

	point := &domain.GeoPoint{Lat: ev.Lat, Lng: ev.Lng}
	results, err := challenges.AwardForWorkout(ctx, ev.UserID, ev.WorkoutID, point)
	if err != nil {
		// The workout itself already happened; log and move on.
		logger.Warning("workout-consumer: award flow failed for user %s workout %s: %v", ev.UserID, ev.WorkoutID, err)
		return nil
	}

	for _, r := range results {
		if r.Awarded {
			logger.Info("workout-consumer: user %s earned %d points in zone %s", ev.UserID, r.Points, r.Zone.ID)
		}
	}
	return nil
}
