package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/repwear/pkg/queue"
)

var processed = make(chan string, 16)

type emailJob struct {
	To string `json:"to"`
}

func (j *emailJob) Handle() error {
	processed <- j.To
	return nil
}

func TestDispatchAndProcess(t *testing.T) {
	queue.SetDriver(queue.NewMemoryDriver())
	queue.Register("*queue_test.emailJob", func() queue.Job { return &emailJob{} })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	queue.StartWorkers(ctx, 2)

	require.NoError(t, queue.Dispatch(&emailJob{To: "member@repwear.test"}))

	select {
	case to := <-processed:
		assert.Equal(t, "member@repwear.test", to)
	case <-time.After(2 * time.Second):
		t.Fatal("job was not processed within 2s")
	}
}

func TestMemoryDriverPopRespectsContext(t *testing.T) {
	d := queue.NewMemoryDriver()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := d.Pop(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
