package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/hatchpad/slackbridge/pkg/repository/memory"
)

func TestConnectionStore(t *testing.T) {
	ctx := context.Background()

	t.Run("starts disconnected", func(t *testing.T) {
		store := memory.NewConnectionStore()
		gt.Bool(t, store.IsConnected(ctx)).False()
	})

	t.Run("mark is sticky", func(t *testing.T) {
		store := memory.NewConnectionStore()
		store.MarkConnected(ctx)
		gt.Bool(t, store.IsConnected(ctx)).True()
		gt.Bool(t, store.IsConnected(ctx)).True()
	})

	t.Run("concurrent marks", func(t *testing.T) {
		store := memory.NewConnectionStore()

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				store.MarkConnected(ctx)
			}()
		}
		wg.Wait()

		gt.Bool(t, store.IsConnected(ctx)).True()
	})
}
