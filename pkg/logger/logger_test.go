package logger

import (
	"sync"
	"testing"
)

func Test_ZeroValueLogger(t *testing.T) {
	t.Run("zero value logs without panicking", func(t *testing.T) {
		l := &Logger{}
		l.Debug("debug", "k", "v")
		l.Info("info")
		l.Warn("warn")
		l.Error("error", "err", nil)
		l.Infof("formatted %d", 1)
		l.Sync()
	})

	t.Run("zero value is safe to share across goroutines", func(t *testing.T) {
		l := &Logger{}

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					l.Info("concurrent", "n", j)
				}
			}()
		}
		wg.Wait()
	})

	t.Run("nop logger discards everything", func(t *testing.T) {
		l := Nop()
		l.Info("discarded")
		l.Sync()
	})
}
