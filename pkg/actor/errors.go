package actor

import (
	"errors"
	"fmt"
	"time"

	"github.com/lwmacct/251216-go-pkg-wactor/pkg/substrate"
)

var (
	// ErrChannelClosed Actor 已不存在：进程结束、崩溃或 Link 已关闭
	// 所有终止状态都满足 errors.Is(err, ErrChannelClosed)
	ErrChannelClosed = substrate.ErrClosed
	// ErrProcessFault Actor 在 Update 中崩溃
	// 基座提供了原因时才成立，只关心存活与否的调用方不需要判断它
	ErrProcessFault = substrate.ErrProcessFault
	// ErrLinkClosed 在已关闭的 Link 上调用
	ErrLinkClosed = fmt.Errorf("%w: link closed", ErrChannelClosed)
	// ErrResponderExpired Update 返回后继续使用 Responder
	ErrResponderExpired = errors.New("responder used outside its update")
	// ErrInvalidKind Kind 配置不完整
	ErrInvalidKind = errors.New("invalid actor kind")
)

// UnhandledError Update 遇到未处理的输入变体
type UnhandledError struct {
	Type string
}

// Error 实现 error 接口
func (e *UnhandledError) Error() string {
	return "unhandled input " + e.Type
}

// ResponseTimeout 等待输出超时
type ResponseTimeout struct {
	ProcessID string
	Timeout   time.Duration
}

// Error 实现 error 接口
func (r *ResponseTimeout) Error() string {
	return fmt.Sprintf("receive from %s timed out after %v", r.ProcessID, r.Timeout)
}
