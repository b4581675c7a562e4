package port

import (
	"context"

	"IdleConquest/internal/conquest/domain"
)

// EmpireRepository 帝国存档端口：全量加载 + 快照落库。
// 序列化细节（表结构/文档形状/加密）归基础设施，引擎只认快照。
type EmpireRepository interface {
	LoadEmpire(ctx context.Context, id *domain.EmpireID) (*domain.Empire, error)
	Snapshot(ctx context.Context, s *domain.EmpirePersistSnapshot) error
}

// HistoryArchive 已结算战斗的外部归档（内存环形缓冲之外的持久化副本）。
type HistoryArchive interface {
	Archive(ctx context.Context, r *domain.BattleRecord) error
	Recent(ctx context.Context, limit int) ([]*domain.BattleRecord, error)
}
