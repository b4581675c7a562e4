package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"IdleConquest/internal/conquest/domain"
	"IdleConquest/internal/conquest/infra/persistence/mapper"
	"IdleConquest/internal/conquest/infra/persistence/model"
	"IdleConquest/internal/shared/serverconfig"
	"IdleConquest/modules/kit/errx"
)

// EmpireRepo 帝国存档的 MySQL 实现。
// 没有存档时按 seed 配置开局，不视作错误。
type EmpireRepo struct {
	db   *gorm.DB
	seed serverconfig.EmpireSeedConfig
}

func NewEmpireRepo(db *gorm.DB, seed serverconfig.EmpireSeedConfig) *EmpireRepo {
	return &EmpireRepo{db: db, seed: seed}
}

const OpLoadEmpire = "repo.empire.LoadEmpire"

func (r *EmpireRepo) LoadEmpire(ctx context.Context, id *domain.EmpireID) (*domain.Empire, error) {
	var m model.Empire
	err := r.db.WithContext(ctx).Where("empire_id = ?", int(*id)).First(&m).Error

	switch {
	case err == nil:
		e, mapErr := mapper.EmpireModelToEntity(&m)
		if mapErr != nil {
			// 存档列损坏属于系统错误，不能静默换成开局帝国。
			return nil, errx.ErrInternal.WithCause(mapErr).WithData("empire_id", int(*id))
		}
		return e, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return mapper.SeedEmpire(id, r.seed), nil
	default:
		return nil, errx.ErrUnavailable.WithCause(err).WithData("op", OpLoadEmpire).WithData("empire_id", int(*id))
	}
}

const OpSnapshotEmpire = "repo.empire.Snapshot"

func (r *EmpireRepo) Snapshot(ctx context.Context, s *domain.EmpirePersistSnapshot) error {
	if s == nil {
		return nil
	}
	m := mapper.EmpireSnapshotToModel(s)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return errx.ErrUnavailable.WithCause(err).WithData("op", OpSnapshotEmpire).WithData("empire_id", int(s.EmpireID))
	}
	return nil
}
