package actor_test

import (
	"errors"
	"fmt"

	"github.com/lwmacct/251216-go-pkg-wactor/pkg/actor"
	"github.com/lwmacct/251216-go-pkg-wactor/pkg/codec"
	"github.com/lwmacct/251216-go-pkg-wactor/pkg/substrate"
)

// Input 计数器输入
type Input interface{ Kind() string }

// AddOne 计数加一
type AddOne struct{}

func (AddOne) Kind() string { return "add_one" }

// Output 计数器输出
type Output interface{ Kind() string }

// Count 当前计数
type Count struct {
	N uint32 `json:"n"`
}

func (Count) Kind() string { return "count" }

// Counter 计数器 Actor
type Counter struct {
	count uint32
}

func (c *Counter) Update(msg Input, r *actor.Responder[Output]) {
	switch msg.(type) {
	case AddOne:
		c.count++
		_ = r.Respond(Count{N: c.count})
	default:
		actor.Unhandled(msg)
	}
}

var counterKind = actor.NewKind("counter", func() actor.Actor[Input, Output] {
	return &Counter{}
}).WithCodecs(
	codec.NewUnion[Input](AddOne{}),
	codec.NewUnion[Output](Count{}),
)

// ExampleRun 演示计数器 Actor
func ExampleRun() {
	sys := substrate.NewSystem("example")
	defer sys.Shutdown()

	link, err := actor.Run(sys, counterKind)
	if err != nil {
		fmt.Println("run:", err)
		return
	}
	defer link.Close()

	for i := 0; i < 3; i++ {
		_ = link.Send(AddOne{})
	}
	for i := 0; i < 3; i++ {
		out, _ := link.Receive()
		fmt.Printf("%+v\n", out)
	}

	// Output:
	// {N:1}
	// {N:2}
	// {N:3}
}

// ExampleUpdateFunc 演示函数式 Actor 与多条输出
func ExampleUpdateFunc() {
	sys := substrate.NewSystem("func-example")
	defer sys.Shutdown()

	kind := actor.NewKind("splitter", func() actor.Actor[string, string] {
		return actor.UpdateFunc[string, string](func(msg string, r *actor.Responder[string]) {
			for _, ch := range msg {
				_ = r.Respond(string(ch))
			}
		})
	})

	link, _ := actor.Run(sys, kind)
	defer link.Close()

	_ = link.Send("abc")
	for i := 0; i < 3; i++ {
		out, _ := link.Receive()
		fmt.Println(out)
	}

	// Output:
	// a
	// b
	// c
}

// ExampleLink_Get 演示请求响应
func ExampleLink_Get() {
	sys := substrate.NewSystem("get-example")
	defer sys.Shutdown()

	link, _ := actor.Run(sys, counterKind)
	defer link.Close()

	out, err := link.Get(AddOne{})
	fmt.Println(out, err)

	// Output:
	// {1} <nil>
}

// ExampleLink_Receive_fault 演示崩溃隔离
func ExampleLink_Receive_fault() {
	sys := substrate.NewSystem("fault-example")
	defer sys.Shutdown()

	kind := actor.NewKind("fragile", func() actor.Actor[int, int] {
		return actor.UpdateFunc[int, int](func(msg int, r *actor.Responder[int]) {
			if msg == 0 {
				panic("division by zero")
			}
			_ = r.Respond(100 / msg)
		})
	})

	link, _ := actor.Run(sys, kind)
	defer link.Close()

	out, _ := link.Get(4)
	fmt.Println(out)

	_, err := link.Get(0)
	fmt.Println(errors.Is(err, actor.ErrChannelClosed), errors.Is(err, actor.ErrProcessFault))

	// Output:
	// 25
	// true true
}
