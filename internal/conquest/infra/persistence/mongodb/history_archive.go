package mongodb

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"IdleConquest/internal/conquest/domain"
	"IdleConquest/internal/conquest/infra/persistence/mapper"
	"IdleConquest/internal/conquest/infra/persistence/model"
	"IdleConquest/internal/shared/logs"
)

const defaultCollectionName = "battle_history"

const archiveQueueSize = 256

// HistoryArchive 战报归档的 MongoDB 实现。
// Archive 只入队不落库，写库由内部协程串行消费，调用方（引擎邮箱）永不阻塞；
// 队列打满时丢弃最旧战报，保活优先于全量。
type HistoryArchive struct {
	coll *mongo.Collection

	queue chan *model.BattleDoc

	once sync.Once
	stop chan struct{}
	done chan struct{}
}

func NewHistoryArchive(db *mongo.Database) *HistoryArchive {
	a := &HistoryArchive{
		coll:  db.Collection(defaultCollectionName),
		queue: make(chan *model.BattleDoc, archiveQueueSize),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go a.writerLoop()
	return a
}

func (a *HistoryArchive) Archive(ctx context.Context, r *domain.BattleRecord) error {
	if r == nil {
		return nil
	}
	doc := mapper.BattleRecordToDoc(r)
	for {
		select {
		case a.queue <- doc:
			return nil
		case <-a.stop:
			return errors.New("history archive is closed")
		default:
		}
		select {
		case dropped := <-a.queue:
			logs.Warn("battle archive queue full, dropping oldest",
				zap.Int64("dropped_battle_id", dropped.BattleID),
			)
		default:
		}
	}
}

func (a *HistoryArchive) Recent(ctx context.Context, limit int) ([]*domain.BattleRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	cur, err := a.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "started_at", Value: -1}}).SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.BattleRecord
	for cur.Next(ctx) {
		var doc model.BattleDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, mapper.BattleDocToRecord(&doc))
	}
	return out, cur.Err()
}

func (a *HistoryArchive) Close(ctx context.Context) error {
	a.once.Do(func() { close(a.stop) })
	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *HistoryArchive) writerLoop() {
	defer close(a.done)
	for {
		select {
		case doc := <-a.queue:
			a.insert(doc)
		case <-a.stop:
			a.drain()
			return
		}
	}
}

func (a *HistoryArchive) drain() {
	for {
		select {
		case doc := <-a.queue:
			a.insert(doc)
		default:
			return
		}
	}
}

func (a *HistoryArchive) insert(doc *model.BattleDoc) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := a.coll.InsertOne(ctx, doc)
	if err == nil || mongo.IsDuplicateKeyError(err) {
		// battle_id 作 _id，重复写入视为幂等成功。
		return
	}
	logs.Error("battle archive insert failed",
		zap.Int64("battle_id", doc.BattleID),
		zap.Error(err),
	)
}
