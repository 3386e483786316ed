// Package queue contains the broker-facing side of the award flow: the
// payloads exchanged over RabbitMQ and the consumer that turns workout
// completions into point awards.
package queue

// WorkoutCompletedEvent is published by the workout service when a member
// finishes a workout. It carries everything the award flow needs so the
// consumer never has to call back into the workout service.
type WorkoutCompletedEvent struct {
	UserID      string  `json:"user_id"`
	WorkoutID   string  `json:"workout_id"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	CompletedAt string  `json:"completed_at"`
}
