package service

import (
	"context"
	"log"
	"sync"
	"time"
)

// RefreshCallback 自动刷新回调
type RefreshCallback func(ctx context.Context) error

// RefreshConfig 刷新配置
type RefreshConfig struct {
	Interval time.Duration
	Enabled  bool
}

// RefreshManager 命名定时刷新管理器
// 每个 key 同时只有一个活跃定时器，重复注册是替换而不是叠加
type RefreshManager struct {
	mu        sync.Mutex
	callbacks map[string]RefreshCallback
	stops     map[string]chan struct{}
}

// NewRefreshManager 创建刷新管理器
func NewRefreshManager() *RefreshManager {
	return &RefreshManager{
		callbacks: make(map[string]RefreshCallback),
		stops:     make(map[string]chan struct{}),
	}
}

// Register 注册定时刷新任务，替换同名的旧任务
func (m *RefreshManager) Register(key string, callback RefreshCallback, cfg RefreshConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopLocked(key)
	m.callbacks[key] = callback
	if cfg.Enabled && cfg.Interval > 0 {
		m.startLocked(key, callback, cfg.Interval)
	}
}

// Unregister 停止并移除任务
func (m *RefreshManager) Unregister(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopLocked(key)
	delete(m.callbacks, key)
}

// Pause 暂停单个任务，保留回调以便恢复
func (m *RefreshManager) Pause(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked(key)
}

// Resume 恢复单个任务
func (m *RefreshManager) Resume(key string, cfg RefreshConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()

	callback, ok := m.callbacks[key]
	if !ok || !cfg.Enabled || cfg.Interval <= 0 {
		return
	}
	m.stopLocked(key)
	m.startLocked(key, callback, cfg.Interval)
}

// PauseAll 暂停全部任务
func (m *RefreshManager) PauseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.stops {
		m.stopLocked(key)
	}
}

// ResumeAll 用同一配置恢复全部任务
func (m *RefreshManager) ResumeAll(cfg RefreshConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !cfg.Enabled || cfg.Interval <= 0 {
		return
	}
	for key, callback := range m.callbacks {
		m.stopLocked(key)
		m.startLocked(key, callback, cfg.Interval)
	}
}

// Stop 停止全部任务并清空回调（进程退出时调用）
func (m *RefreshManager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.stops {
		m.stopLocked(key)
	}
	m.callbacks = make(map[string]RefreshCallback)
}

// Active 判断指定 key 的定时器是否在跑
func (m *RefreshManager) Active(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.stops[key]
	return ok
}

// startLocked 启动定时器，调用方需持有锁
func (m *RefreshManager) startLocked(key string, callback RefreshCallback, interval time.Duration) {
	stop := make(chan struct{})
	m.stops[key] = stop

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				invokeRefresh(key, callback)
			case <-stop:
				return
			}
		}
	}()
}

// stopLocked 停掉 key 对应的定时器，调用方需持有锁
func (m *RefreshManager) stopLocked(key string) {
	if stop, ok := m.stops[key]; ok {
		close(stop)
		delete(m.stops, key)
	}
}

// invokeRefresh 单次执行回调，异常和错误都只记日志，不中断定时器
func invokeRefresh(key string, callback RefreshCallback) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Refresh] 任务 %s 发生恐慌: %v", key, r)
		}
	}()

	if err := callback(context.Background()); err != nil {
		log.Printf("[Refresh] 任务 %s 执行失败: %v", key, err)
	}
}
