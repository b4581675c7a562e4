package memory

import (
	"context"
	"sync"

	"IdleConquest/internal/conquest/domain"
	"IdleConquest/internal/conquest/infra/persistence/mapper"
	"IdleConquest/internal/shared/serverconfig"
)

// EmpireRepo 无数据库模式的帝国存档：进程内保留最近快照，
// 重启即回到开局配置。本地开发与测试用。
type EmpireRepo struct {
	seed serverconfig.EmpireSeedConfig

	mu   sync.Mutex
	last *domain.EmpirePersistSnapshot
}

func NewEmpireRepo(seed serverconfig.EmpireSeedConfig) *EmpireRepo {
	return &EmpireRepo{seed: seed}
}

func (r *EmpireRepo) LoadEmpire(ctx context.Context, id *domain.EmpireID) (*domain.Empire, error) {
	_ = ctx
	r.mu.Lock()
	last := r.last
	r.mu.Unlock()

	if last != nil && last.EmpireID == *id {
		return domain.HydrateEmpire(last), nil
	}
	return mapper.SeedEmpire(id, r.seed), nil
}

func (r *EmpireRepo) Snapshot(ctx context.Context, s *domain.EmpirePersistSnapshot) error {
	_ = ctx
	if s == nil {
		return nil
	}
	r.mu.Lock()
	if r.last == nil || r.last.Version <= s.Version {
		r.last = s
	}
	r.mu.Unlock()
	return nil
}
