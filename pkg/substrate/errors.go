package substrate

import (
	"errors"
	"fmt"
)

// 管道与进程错误
var (
	// ErrClosed 管道的另一端已关闭，不会再有数据
	ErrClosed = errors.New("channel closed")
	// ErrProcessFault 进程入口函数 panic
	ErrProcessFault = errors.New("process fault")
	// ErrNotRunning 系统已关闭，不能再创建进程
	ErrNotRunning = errors.New("system is not running")
	// ErrShutdown 进程因系统关闭而终止
	ErrShutdown = errors.New("system shutdown")
)

// Fault 进程崩溃信息
// panic 被隔离在进程内，只以 Fault 的形式向外报告
type Fault struct {
	ProcessID string
	Name      string
	Value     any
	Stack     []byte
}

// Error 实现 error 接口
func (f *Fault) Error() string {
	return fmt.Sprintf("process %s (%s) faulted: %v", f.Name, f.ProcessID, f.Value)
}

// Is 使 errors.Is(err, ErrProcessFault) 成立
func (f *Fault) Is(target error) bool { return target == ErrProcessFault }

// Unwrap 如果 panic 值本身是 error，则暴露出来供 errors.As 使用
func (f *Fault) Unwrap() error {
	if err, ok := f.Value.(error); ok {
		return err
	}
	return nil
}

// closedError 组合 ErrClosed 与关闭原因
func closedError(cause error) error {
	if cause == nil || errors.Is(cause, ErrClosed) {
		return ErrClosed
	}
	return fmt.Errorf("%w: %w", ErrClosed, cause)
}
