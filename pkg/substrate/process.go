package substrate

import (
	"context"
	"sync"
)

// Entry 进程入口函数
// 在独立 goroutine 中运行，返回即进程结束；panic 被转换为 [*Fault]
type Entry func(p *Process) error

// ExitHook 进程退出回调，cause 为入口函数返回的错误或 [*Fault]
// 在 Done() 关闭之前调用
type ExitHook func(p *Process, cause error)

// Process 隔离进程
// 外部只能通过 ID 观察它的生命周期，无法触及进程内部状态
type Process struct {
	id    string
	name  string
	stats *StatsCollector

	ctx    context.Context
	cancel context.CancelFunc

	done chan struct{}
	mu   sync.RWMutex
	err  error
}

// ID 返回进程唯一标识
func (p *Process) ID() string { return p.id }

// Name 返回进程名称
func (p *Process) Name() string { return p.name }

// String 返回进程的字符串表示
func (p *Process) String() string { return p.name + "/" + p.id }

// Context 返回进程的生命周期 context
// 系统关闭时取消，入口函数应在阻塞操作中使用它
func (p *Process) Context() context.Context { return p.ctx }

// Stats 返回进程统计收集器
func (p *Process) Stats() *StatsCollector { return p.stats }

// Done 进程结束时关闭
func (p *Process) Done() <-chan struct{} { return p.done }

// Err 返回进程终止原因
// 进程运行中或正常结束时为 nil，崩溃时为 *Fault
func (p *Process) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.err
}

// Wait 等待进程结束
func (p *Process) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Process) setErr(err error) {
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
}
