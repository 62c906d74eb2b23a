package actor

import (
	"fmt"

	"github.com/lwmacct/251216-go-pkg-wactor/pkg/codec"
)

// Actor 类型化 Actor 接口
//
// In 与 Out 是该 Actor 的输入、输出消息集合。每个进程内恰好有一个 Actor 实例，
// 只被自己的进程循环访问，Update 内不需要加锁。
type Actor[In, Out any] interface {
	// Update 处理一条输入，可以任意修改内部状态，
	// 并通过 r 发出零条、一条或多条输出。
	// 必须处理 In 的全部变体，未覆盖的变体调用 [Unhandled]。
	Update(msg In, r *Responder[Out])
}

// UpdateFunc 函数式 Actor，便于快速创建简单 Actor
type UpdateFunc[In, Out any] func(msg In, r *Responder[Out])

// Update 实现 Actor 接口
func (f UpdateFunc[In, Out]) Update(msg In, r *Responder[Out]) {
	f(msg, r)
}

// Kind Actor 种类
// 描述如何创建 Actor 以及它的消息如何穿过进程边界
type Kind[In, Out any] struct {
	// Name 种类名称，作为进程名称
	Name string
	// Create 无参构造函数，每个进程启动时调用一次，不允许失败
	Create func() Actor[In, Out]
	// Input 输入编解码器
	Input codec.Codec[In]
	// Output 输出编解码器
	Output codec.Codec[Out]
	// MailboxSize 输入管道容量，0 表示使用系统默认值
	MailboxSize int
}

// NewKind 创建 Actor 种类，输入输出默认使用 JSON 编解码
func NewKind[In, Out any](name string, create func() Actor[In, Out]) *Kind[In, Out] {
	return &Kind[In, Out]{
		Name:   name,
		Create: create,
		Input:  codec.JSON[In](),
		Output: codec.JSON[Out](),
	}
}

// WithCodecs 设置输入输出编解码器
func (k *Kind[In, Out]) WithCodecs(in codec.Codec[In], out codec.Codec[Out]) *Kind[In, Out] {
	k.Input = in
	k.Output = out
	return k
}

// WithMailboxSize 设置输入管道容量
// 大于 0 时 Send 在邮箱写满后阻塞
func (k *Kind[In, Out]) WithMailboxSize(size int) *Kind[In, Out] {
	k.MailboxSize = size
	return k
}

func (k *Kind[In, Out]) validate() error {
	switch {
	case k == nil:
		return fmt.Errorf("%w: nil kind", ErrInvalidKind)
	case k.Create == nil:
		return fmt.Errorf("%w: %s has no constructor", ErrInvalidKind, k.Name)
	case k.Input == nil || k.Output == nil:
		return fmt.Errorf("%w: %s has no codec", ErrInvalidKind, k.Name)
	case k.MailboxSize < 0:
		return fmt.Errorf("%w: %s mailbox size %d", ErrInvalidKind, k.Name, k.MailboxSize)
	}
	return nil
}

// Unhandled 报告未处理的输入变体
// 这是程序缺陷而不是可恢复的错误：它会让当前进程崩溃，调用方看到管道终止
func Unhandled(msg any) {
	panic(&UnhandledError{Type: fmt.Sprintf("%T", msg)})
}
