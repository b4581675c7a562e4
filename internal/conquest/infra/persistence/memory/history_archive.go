package memory

import (
	"context"
	"sync"

	"IdleConquest/internal/conquest/domain"
)

const defaultArchiveCap = 200

// HistoryArchive 无数据库模式的战报归档：固定容量环形缓冲。
type HistoryArchive struct {
	mu      sync.Mutex
	records []*domain.BattleRecord
	next    int
	full    bool
}

func NewHistoryArchive() *HistoryArchive {
	return &HistoryArchive{records: make([]*domain.BattleRecord, defaultArchiveCap)}
}

func (a *HistoryArchive) Archive(ctx context.Context, r *domain.BattleRecord) error {
	_ = ctx
	if r == nil {
		return nil
	}
	a.mu.Lock()
	a.records[a.next] = r
	a.next = (a.next + 1) % len(a.records)
	if a.next == 0 {
		a.full = true
	}
	a.mu.Unlock()
	return nil
}

// Recent 按写入倒序返回最近 limit 条。
func (a *HistoryArchive) Recent(ctx context.Context, limit int) ([]*domain.BattleRecord, error) {
	_ = ctx
	if limit <= 0 {
		limit = 20
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	size := a.next
	if a.full {
		size = len(a.records)
	}
	if limit > size {
		limit = size
	}
	out := make([]*domain.BattleRecord, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (a.next - i + len(a.records)) % len(a.records)
		out = append(out, a.records[idx])
	}
	return out, nil
}
