package event

import (
	"sync"
)

// 事件主题，每次逻辑变更只发布一条事件
const (
	TopicWatchHistory   = "watch_history"
	TopicUserRatings    = "user_ratings"
	TopicWatchlist      = "watchlist"
	TopicNotifications  = "notifications"
	TopicSearchHistory  = "search_history"
	TopicSettings       = "settings"
	TopicCatalogRefresh = "catalog_refresh"
)

// Event 总线事件
type Event struct {
	Topic   string      `json:"topic"`
	Payload interface{} `json:"payload,omitempty"`
}

// Bus 进程内发布订阅总线
// 订阅方持有独立 channel，退订通过返回的 disposer 完成
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]chan Event
}

// NewBus 创建事件总线
func NewBus() *Bus {
	return &Bus{
		subs: make(map[string]map[int]chan Event),
	}
}

// Subscribe 订阅指定主题，返回事件 channel 和退订函数
// topic 为空串时订阅全部主题
func (b *Bus) Subscribe(topic string) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	ch := make(chan Event, 16)

	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]chan Event)
	}
	b.subs[topic][id] = ch

	dispose := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if set, ok := b.subs[topic]; ok {
			if c, ok := set[id]; ok {
				delete(set, id)
				close(c)
			}
		}
	}
	return ch, dispose
}

// Publish 发布事件，订阅方 channel 已满时丢弃而不是阻塞
func (b *Bus) Publish(topic string, payload interface{}) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ev := Event{Topic: topic, Payload: payload}
	for _, ch := range b.subs[topic] {
		select {
		case ch <- ev:
		default:
		}
	}
	// 通配订阅
	for _, ch := range b.subs[""] {
		select {
		case ch <- ev:
		default:
		}
	}
}
