package substrate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// System 隔离基座
// 负责创建进程、隔离崩溃、登记存活进程以及整体关闭
type System struct {
	// 基本信息
	name string

	// 进程注册表
	procs   map[string]*Process
	procsMu sync.RWMutex

	// 生命周期控制
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	isRunning atomic.Bool

	// 配置
	config *Config

	// 统计信息
	liveProcs    atomic.Int64
	totalSpawned atomic.Int64
	faults       atomic.Int64
	deadLetters  atomic.Int64
	startTime    time.Time

	// 日志
	logger *slog.Logger
}

// Config 系统配置
type Config struct {
	// MailboxSize 新建输入管道的默认容量，0 表示无界
	MailboxSize int
	// EnableDeadLetterLogging 是否记录死信（进程终止时未投递的输入）
	EnableDeadLetterLogging bool
	// ShutdownTimeout Shutdown 等待进程退出的时间
	ShutdownTimeout time.Duration
	// PanicHandler panic 处理函数，在记录日志之后调用
	PanicHandler func(p *Process, value any)
	// Logger 自定义日志器
	Logger *slog.Logger
}

// DefaultConfig 默认系统配置
func DefaultConfig() *Config {
	return &Config{
		MailboxSize:             0,
		EnableDeadLetterLogging: true,
		ShutdownTimeout:         30 * time.Second,
		PanicHandler:            nil, // 只记录日志
		Logger:                  nil, // 使用默认 logger
	}
}

// NewSystem 创建新的隔离基座
func NewSystem(name string) *System {
	return NewSystemWithConfig(name, DefaultConfig())
}

// NewSystemWithConfig 使用配置创建隔离基座
func NewSystemWithConfig(name string, config *Config) *System {
	if config == nil {
		config = DefaultConfig()
	}

	ctx, cancel := context.WithCancel(context.Background())

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &System{
		name:      name,
		procs:     make(map[string]*Process),
		ctx:       ctx,
		cancel:    cancel,
		config:    config,
		logger:    logger,
		startTime: time.Now(),
	}
	s.isRunning.Store(true)

	s.logger.Info("substrate started", "name", name)
	return s
}

// Name 返回系统名称
func (s *System) Name() string { return s.name }

// Config 返回系统配置
func (s *System) Config() *Config { return s.config }

// Logger 返回系统日志器
func (s *System) Logger() *slog.Logger { return s.logger }

// Spawn 在新 goroutine 中启动进程
//
// entry 中的 panic 会被恢复为 *Fault，记录日志后作为退出原因交给 onExit，
// 不会影响调用方或其他进程。onExit 可以为 nil。
func (s *System) Spawn(name string, entry Entry, onExit ExitHook) (*Process, error) {
	if !s.isRunning.Load() {
		return nil, ErrNotRunning
	}

	ctx, cancel := context.WithCancel(s.ctx)
	p := &Process{
		id:     uuid.NewString(),
		name:   name,
		stats:  NewStatsCollector(),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	s.procsMu.Lock()
	// 与 Shutdown 互斥，避免在 wg.Wait 之后 Add
	if !s.isRunning.Load() {
		s.procsMu.Unlock()
		cancel()
		return nil, ErrNotRunning
	}
	s.procs[p.id] = p
	s.wg.Add(1)
	s.procsMu.Unlock()

	s.liveProcs.Add(1)
	s.totalSpawned.Add(1)

	go s.run(p, entry, onExit)

	s.logger.Debug("spawned process", "name", name, "id", p.id)
	return p, nil
}

// run 进程主体
func (s *System) run(p *Process, entry Entry, onExit ExitHook) {
	defer s.wg.Done()

	cause := s.invoke(p, entry)
	if s.ctx.Err() != nil && (cause == nil || errors.Is(cause, context.Canceled)) {
		cause = ErrShutdown
	}
	if fault, ok := cause.(*Fault); ok {
		p.setErr(fault)
	}

	if onExit != nil {
		func() {
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("panic in exit hook", "process", p.String(), "error", r)
				}
			}()
			onExit(p, cause)
		}()
	}

	s.procsMu.Lock()
	delete(s.procs, p.id)
	s.procsMu.Unlock()

	p.cancel()
	s.liveProcs.Add(-1)
	close(p.done)

	s.logger.Debug("process exited", "process", p.String(), "cause", cause)
}

// invoke 调用入口函数，panic 恢复为 Fault
func (s *System) invoke(p *Process, entry Entry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fault := &Fault{
				ProcessID: p.id,
				Name:      p.name,
				Value:     r,
				Stack:     debug.Stack(),
			}
			s.faults.Add(1)
			p.stats.RecordError(fault)

			s.logger.Error("panic in process",
				"process", p.String(),
				"error", r,
				"stack", string(fault.Stack))
			if s.config.PanicHandler != nil {
				s.config.PanicHandler(p, r)
			}
			err = fault
		}
	}()

	err = entry(p)
	if err != nil && !errors.Is(err, context.Canceled) {
		p.stats.RecordError(err)
		s.logger.Warn("process terminated with error", "process", p.String(), "error", err)
	}
	return err
}

// ReportDeadLetters 报告未能投递的消息
// 进程终止时仍在输入管道中的数据由调用方统计后交给这里
func (s *System) ReportDeadLetters(p *Process, n int) {
	if n <= 0 {
		return
	}
	s.deadLetters.Add(int64(n))
	if s.config.EnableDeadLetterLogging {
		s.logger.Warn("dead letter", "process", p.String(), "count", n)
	}
}

// Get 按 ID 查找存活进程
func (s *System) Get(id string) (*Process, bool) {
	s.procsMu.RLock()
	defer s.procsMu.RUnlock()
	p, ok := s.procs[id]
	return p, ok
}

// List 列出所有存活进程
func (s *System) List() []*Process {
	s.procsMu.RLock()
	defer s.procsMu.RUnlock()

	procs := make([]*Process, 0, len(s.procs))
	for _, p := range s.procs {
		procs = append(procs, p)
	}
	return procs
}

// Count 返回存活进程数量
func (s *System) Count() int {
	s.procsMu.RLock()
	defer s.procsMu.RUnlock()
	return len(s.procs)
}

// Stats 获取统计信息
func (s *System) Stats() *SystemStats {
	return &SystemStats{
		LiveProcesses: s.liveProcs.Load(),
		TotalSpawned:  s.totalSpawned.Load(),
		Faults:        s.faults.Load(),
		DeadLetters:   s.deadLetters.Load(),
		StartTime:     s.startTime,
	}
}

// IsRunning 检查系统是否运行中
func (s *System) IsRunning() bool {
	return s.isRunning.Load()
}

// Shutdown 关闭整个系统
func (s *System) Shutdown() error {
	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().ShutdownTimeout
	}
	return s.ShutdownWithTimeout(timeout)
}

// ShutdownWithTimeout 带超时的关闭
// 取消所有进程的 context；进程在当前这次处理完成后退出
func (s *System) ShutdownWithTimeout(timeout time.Duration) error {
	s.procsMu.Lock()
	if !s.isRunning.Load() {
		s.procsMu.Unlock()
		return nil
	}
	s.isRunning.Store(false)
	s.procsMu.Unlock()

	s.logger.Info("substrate shutting down", "name", s.name, "processes", s.Count())
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("substrate shutdown complete", "name", s.name)
		return nil
	case <-time.After(timeout):
		s.logger.Warn("substrate shutdown timeout", "name", s.name, "remaining", s.Count())
		return fmt.Errorf("shutdown %s: %d processes still running after %v", s.name, s.Count(), timeout)
	}
}
