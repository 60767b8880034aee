package kafka_test

import (
	"context"
	"testing"

	"github.com/nrk16p/api-payslip-v2/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func pendingEvent() kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "salary_sheet",
		AggregateID:   "7",
		EventType:     "import.completed",
		Topic:         "payslip.import.completed.v1",
		Payload:       []byte(`{"month_year":"November2568"}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestOutboxRepository_Create(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)

	sqlMock.ExpectExec("INSERT INTO outbox_events").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(context.Background(), pendingEvent()))
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestOutboxRepository_Create_RejectsInvalidEvent(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)

	cases := map[string]func(e *kafka.OutboxEvent){
		"missing id":      func(e *kafka.OutboxEvent) { e.ID = "" },
		"missing topic":   func(e *kafka.OutboxEvent) { e.Topic = "" },
		"missing payload": func(e *kafka.OutboxEvent) { e.Payload = nil },
		"bad status":      func(e *kafka.OutboxEvent) { e.Status = "done" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			event := pendingEvent()
			mutate(&event)
			assert.Error(t, repo.Create(context.Background(), event))
		})
	}

	// Nothing reached the store.
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
