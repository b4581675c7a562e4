package domain

// History 已结算战斗的有界历史：只保留最近 N 条，旧记录被覆盖。
type History struct {
	records []*BattleRecord
	next    int
	full    bool
}

const DefaultHistorySize = 100

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &History{records: make([]*BattleRecord, capacity)}
}

func (h *History) Push(r *BattleRecord) {
	if r == nil {
		return
	}
	h.records[h.next] = r
	h.next++
	if h.next == len(h.records) {
		h.next = 0
		h.full = true
	}
}

func (h *History) Len() int {
	if h.full {
		return len(h.records)
	}
	return h.next
}

// Recent 按从新到旧返回至多 n 条。
func (h *History) Recent(n int) []*BattleRecord {
	total := h.Len()
	if n <= 0 || n > total {
		n = total
	}
	out := make([]*BattleRecord, 0, n)
	idx := h.next - 1
	for i := 0; i < n; i++ {
		if idx < 0 {
			idx = len(h.records) - 1
		}
		out = append(out, h.records[idx])
		idx--
	}
	return out
}
