package substrate

import (
	"sync"
	"time"
)

// ═══════════════════════════════════════════════════════════════════════════
// 进程统计信息
// ═══════════════════════════════════════════════════════════════════════════

// ProcessStats 进程运行时统计信息
type ProcessStats struct {
	// 消息计数
	InputsReceived int64 // 读取的输入总数
	InputsHandled  int64 // 处理完成的输入数
	OutputsEmitted int64 // 发出的输出数
	Errors         int64 // 错误数

	// 延迟统计
	TotalLatency   time.Duration // 总延迟（用于计算平均值）
	AverageLatency time.Duration // 平均延迟
	MaxLatency     time.Duration // 最大延迟
	MinLatency     time.Duration // 最小延迟

	// 时间戳
	StartedAt     time.Time // 启动时间
	LastMessageAt time.Time // 最后消息时间
	LastErrorAt   time.Time // 最后错误时间

	// 错误信息
	LastError error // 最后一个错误
}

// Clone 克隆统计信息
func (s *ProcessStats) Clone() *ProcessStats {
	c := *s
	return &c
}

// ═══════════════════════════════════════════════════════════════════════════
// StatsCollector 统计收集器
// ═══════════════════════════════════════════════════════════════════════════

const maxDuration = time.Duration(1<<63 - 1)

// StatsCollector 线程安全的统计收集器
// 由进程循环写入，由外部观察者读取快照
type StatsCollector struct {
	mu    sync.RWMutex
	stats ProcessStats
}

// NewStatsCollector 创建统计收集器
func NewStatsCollector() *StatsCollector {
	return &StatsCollector{
		stats: ProcessStats{
			StartedAt:  time.Now(),
			MinLatency: maxDuration, // 最大值，确保第一次会被更新
		},
	}
}

// RecordReceived 记录读取输入
func (c *StatsCollector) RecordReceived() {
	c.mu.Lock()
	c.stats.InputsReceived++
	c.stats.LastMessageAt = time.Now()
	c.mu.Unlock()
}

// RecordHandled 记录处理完成
func (c *StatsCollector) RecordHandled(latency time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.InputsHandled++
	c.stats.TotalLatency += latency
	c.stats.AverageLatency = c.stats.TotalLatency / time.Duration(c.stats.InputsHandled)

	if latency > c.stats.MaxLatency {
		c.stats.MaxLatency = latency
	}
	if latency < c.stats.MinLatency {
		c.stats.MinLatency = latency
	}
}

// RecordEmitted 记录发出输出
func (c *StatsCollector) RecordEmitted() {
	c.mu.Lock()
	c.stats.OutputsEmitted++
	c.mu.Unlock()
}

// RecordError 记录错误
func (c *StatsCollector) RecordError(err error) {
	c.mu.Lock()
	c.stats.Errors++
	c.stats.LastError = err
	c.stats.LastErrorAt = time.Now()
	c.mu.Unlock()
}

// Stats 获取统计快照
func (c *StatsCollector) Stats() *ProcessStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.stats.Clone()
	if s.InputsHandled == 0 {
		s.MinLatency = 0
	}
	return s
}

// Reset 重置统计
func (c *StatsCollector) Reset() {
	c.mu.Lock()
	c.stats = ProcessStats{
		StartedAt:  time.Now(),
		MinLatency: maxDuration,
	}
	c.mu.Unlock()
}

// ═══════════════════════════════════════════════════════════════════════════
// 系统统计
// ═══════════════════════════════════════════════════════════════════════════

// SystemStats 系统统计
type SystemStats struct {
	LiveProcesses int64
	TotalSpawned  int64
	Faults        int64
	DeadLetters   int64
	StartTime     time.Time
}
