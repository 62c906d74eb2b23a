package actor

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/lwmacct/251216-go-pkg-wactor/pkg/substrate"
)

// loop 返回进程入口：把字节管道适配为类型化的 Actor 契约
//
// 创建 Actor 一次，然后循环：读取、解码、Update。
// 输入管道关闭（且已读完）时正常返回；解码失败直接终止进程；
// Update 中的 panic 交给基座隔离。
func (k *Kind[In, Out]) loop(in, out *substrate.Pipe) substrate.Entry {
	return func(p *substrate.Process) error {
		a := k.Create()
		if isNil(a) {
			return fmt.Errorf("%w: %s constructor returned nil", ErrInvalidKind, k.Name)
		}
		stats := p.Stats()

		for {
			data, err := in.Read(p.Context())
			if err != nil {
				if errors.Is(err, substrate.ErrClosed) {
					return nil
				}
				return err
			}
			stats.RecordReceived()

			msg, err := k.Input.Decode(data)
			if err != nil {
				return fmt.Errorf("%s: decode input: %w", k.Name, err)
			}

			start := time.Now()
			k.update(p, a, msg, out)
			stats.RecordHandled(time.Since(start))
		}
	}
}

// update 执行一次 Update，无论是否 panic，Responder 都在返回时失效
func (k *Kind[In, Out]) update(p *substrate.Process, a Actor[In, Out], msg In, out *substrate.Pipe) {
	r := newResponder(p.Context(), out, k.Output, p.Stats())
	defer r.expire()
	a.Update(msg, r)
}

// isNil 同时识别 nil 接口与装在接口里的 nil 指针、map、func 等
func isNil(a any) bool {
	if a == nil {
		return true
	}
	v := reflect.ValueOf(a)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
