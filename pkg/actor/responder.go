package actor

import (
	"context"
	"sync"

	"github.com/lwmacct/251216-go-pkg-wactor/pkg/codec"
	"github.com/lwmacct/251216-go-pkg-wactor/pkg/substrate"
)

// Responder 单次 Update 的输出句柄
//
// 每次 Update 都会拿到一个新的 Responder，Update 返回后立即失效，
// 之后的 Respond 返回 ErrResponderExpired，不会产生输出。
type Responder[Out any] struct {
	ctx   context.Context
	out   *substrate.Pipe
	codec codec.Codec[Out]
	stats *substrate.StatsCollector

	mu      sync.Mutex
	expired bool
	emitted int
}

func newResponder[Out any](ctx context.Context, out *substrate.Pipe, c codec.Codec[Out], stats *substrate.StatsCollector) *Responder[Out] {
	return &Responder[Out]{ctx: ctx, out: out, codec: c, stats: stats}
}

// Respond 发出一条输出
// 返回前输出已编码并进入输出管道。所有 Link 都已关闭时返回 ErrChannelClosed，
// 这不影响 Actor 继续运行，调用方通常可以忽略。
func (r *Responder[Out]) Respond(out Out) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.expired {
		return ErrResponderExpired
	}
	data, err := r.codec.Encode(out)
	if err != nil {
		return err
	}
	if err := r.out.Write(r.ctx, data); err != nil {
		return err
	}
	r.emitted++
	r.stats.RecordEmitted()
	return nil
}

// Emitted 返回本次 Update 已发出的输出数量
func (r *Responder[Out]) Emitted() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.emitted
}

// expire 结束句柄的有效期，等待进行中的 Respond 完成
func (r *Responder[Out]) expire() {
	r.mu.Lock()
	r.expired = true
	r.mu.Unlock()
}
