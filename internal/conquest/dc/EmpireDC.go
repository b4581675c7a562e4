package dc

import (
	"context"
	"errors"
	"sync"
	"time"

	"IdleConquest/internal/conquest/app/port"
	"IdleConquest/internal/conquest/domain"
)

type EmpireID = domain.EmpireID

// load 全量加载帝国存档；flush 走脏检查 + 同步快照 + 异步写库。
// 引擎 actor 是唯一写入方，版本号防止旧快照覆盖新快照。
type EmpireDC struct {
	repo       port.EmpireRepository
	entity     *domain.Empire
	flushEvery time.Duration

	mu      sync.Mutex
	pending *domain.EmpirePersistSnapshot
	version uint64
	closed  bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func NewEmpireDC(repo port.EmpireRepository) *EmpireDC {
	d := &EmpireDC{
		repo:       repo,
		flushEvery: 3000 * time.Millisecond,
		wake:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go d.writerLoop()
	return d
}

func (d *EmpireDC) Load(ctx context.Context, id *EmpireID) (*domain.Empire, error) {
	if d.repo == nil {
		return nil, errors.New("empire repository is nil")
	}
	empire, err := d.repo.LoadEmpire(ctx, id)
	if err != nil {
		return nil, err
	}
	d.entity = empire
	return empire, nil
}

func (d *EmpireDC) Flush(ctx context.Context) {
	if !d.IsDirty() {
		return
	}
	s, ok := d.buildNextSnapshot()
	if !ok {
		return
	}
	d.enqueueLatest(s)
}

func (d *EmpireDC) IsDirty() bool {
	if d.entity == nil {
		return false
	}
	return d.entity.Dirty()
}

func (d *EmpireDC) Entity() *domain.Empire {
	return d.entity
}

func (d *EmpireDC) FlushEvery() time.Duration {
	return d.flushEvery
}

func (d *EmpireDC) Close(ctx context.Context) error {
	d.Flush(ctx)

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.stop)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *EmpireDC) buildNextSnapshot() (*domain.EmpirePersistSnapshot, bool) {
	if d.entity == nil {
		return nil, false
	}
	d.mu.Lock()
	d.version++
	version := d.version
	d.mu.Unlock()

	s, ok := d.entity.BuildPersistSnapshot(version)
	if !ok {
		return nil, false
	}
	d.entity.ClearDirty()
	return s, true
}

func (d *EmpireDC) enqueueLatest(s *domain.EmpirePersistSnapshot) {
	if s == nil {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if d.pending == nil || d.pending.Version < s.Version {
		d.pending = s
	}
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *EmpireDC) popPending() *domain.EmpirePersistSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.pending
	d.pending = nil
	return s
}

func (d *EmpireDC) requeueOnError(s *domain.EmpirePersistSnapshot) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if d.pending == nil || d.pending.Version < s.Version {
		d.pending = s
	}
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *EmpireDC) writerLoop() {
	defer close(d.done)

	for {
		select {
		case <-d.wake:
			d.consumePending()
		case <-d.stop:
			d.consumePending()
			return
		}
	}
}

func (d *EmpireDC) consumePending() {
	for {
		s := d.popPending()
		if s == nil {
			return
		}
		if err := d.repo.Snapshot(context.TODO(), s); err != nil {
			// 写库失败时重排当前快照；若已有更新快照，会被更高 version 覆盖。
			d.requeueOnError(s)
			time.Sleep(200 * time.Millisecond)
			continue
		}
	}
}
