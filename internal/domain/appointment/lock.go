package appointment

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/schedule"
)

// LockKey é a chave de serialização de um profissional numa data.
func LockKey(staffID uint, date time.Time) string {
	return fmt.Sprintf("booking:staff:%d:%s", staffID, schedule.FormatDate(date))
}

// LockAll trava as chaves em ordem, sem repetição, para não haver deadlock
// entre edições que trocam de dia ou de profissional.
func LockAll(ctx context.Context, l Locker, keys ...string) (func(), error) {
	uniq := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			uniq = append(uniq, k)
		}
	}
	sort.Strings(uniq)

	unlocks := make([]func(), 0, len(uniq))
	release := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}

	for _, k := range uniq {
		unlock, err := l.Lock(ctx, k)
		if err != nil {
			release()
			return nil, err
		}
		unlocks = append(unlocks, unlock)
	}
	return release, nil
}
