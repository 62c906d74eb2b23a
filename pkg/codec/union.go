package codec

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// envelope 标签联合的线上格式
type envelope struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Union 标签联合编解码器
//
// Go 没有和类型，消息集合通常建模为一个接口，每个变体是实现该接口的具体类型。
// Union 通过变体的 Kind() 识别类型，编码为：
//
//	{"kind":"add_one","data":{}}
//
// 解码时按 kind 找到注册的原型类型并创建新值。
type Union[T Kinded] struct {
	variants map[string]reflect.Type
}

// NewUnion 使用原型值注册所有变体
// 原型可以是值类型也可以是指针类型，解码结果与原型保持同一形态。
// 重复的 kind 属于编程错误，直接 panic。
func NewUnion[T Kinded](prototypes ...T) *Union[T] {
	u := &Union[T]{variants: make(map[string]reflect.Type, len(prototypes))}
	for _, p := range prototypes {
		kind := p.Kind()
		if _, exists := u.variants[kind]; exists {
			panic(fmt.Sprintf("codec: duplicate union kind %q", kind))
		}
		u.variants[kind] = reflect.TypeOf(p)
	}
	return u
}

// Name 实现 Codec 接口
func (u *Union[T]) Name() string { return "union" }

// Kinds 返回已注册的变体数量
func (u *Union[T]) Kinds() int { return len(u.variants) }

// Encode 实现 Codec 接口
func (u *Union[T]) Encode(v T) ([]byte, error) {
	if reflect.ValueOf(v).Kind() == reflect.Invalid {
		return nil, newError[T]("union", OpEncode, fmt.Errorf("nil value"))
	}
	kind := v.Kind()
	typ, ok := u.variants[kind]
	if !ok {
		return nil, newError[T]("union", OpEncode, fmt.Errorf("%w: %q", ErrUnknownKind, kind))
	}
	// 形态不同（值与指针）的变体解码后无法还原
	if got := reflect.TypeOf(v); got != typ {
		return nil, newError[T]("union", OpEncode, fmt.Errorf("%w: %q registered as %s, got %s", ErrVariantType, kind, typ, got))
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, newError[T]("union", OpEncode, err)
	}
	out, err := json.Marshal(envelope{Kind: kind, Data: data})
	if err != nil {
		return nil, newError[T]("union", OpEncode, err)
	}
	return out, nil
}

// Decode 实现 Codec 接口
func (u *Union[T]) Decode(data []byte) (T, error) {
	var zero T
	if len(data) == 0 {
		return zero, newError[T]("union", OpDecode, ErrEmpty)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return zero, newError[T]("union", OpDecode, err)
	}
	typ, ok := u.variants[env.Kind]
	if !ok {
		return zero, newError[T]("union", OpDecode, fmt.Errorf("%w: %q", ErrUnknownKind, env.Kind))
	}

	// 指针原型解码到新分配的元素，值原型解码后取值
	var ptr reflect.Value
	if typ.Kind() == reflect.Pointer {
		ptr = reflect.New(typ.Elem())
	} else {
		ptr = reflect.New(typ)
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, ptr.Interface()); err != nil {
			return zero, newError[T]("union", OpDecode, err)
		}
	}

	val := ptr
	if typ.Kind() != reflect.Pointer {
		val = ptr.Elem()
	}
	v, ok := val.Interface().(T)
	if !ok {
		return zero, newError[T]("union", OpDecode, fmt.Errorf("variant %s does not implement %s", typ, typeName[T]()))
	}
	return v, nil
}
