package codec

import (
	"errors"
	"fmt"
	"reflect"
)

// Codec 消息编解码器
// 对某个消息类型 T 提供字节往返
type Codec[T any] interface {
	// Name 返回编解码器名称，用于日志和错误信息
	Name() string
	// Encode 将消息编码为字节
	Encode(v T) ([]byte, error)
	// Decode 将字节解码为消息
	Decode(data []byte) (T, error)
}

// Kinded 带类型标识的消息
// 与 Actor 消息的 Kind 约定一致，用于标签联合的变体识别
type Kinded interface {
	Kind() string
}

// Op 编解码操作
type Op string

const (
	OpEncode Op = "encode"
	OpDecode Op = "decode"
)

// ErrCodec 所有编解码错误的哨兵值
var ErrCodec = errors.New("codec error")

// ErrEmpty 输入字节为空
var ErrEmpty = errors.New("empty payload")

// ErrUnknownKind 标签联合中不存在的变体
var ErrUnknownKind = errors.New("unknown kind")

// ErrVariantType 变体的具体类型与注册的原型不一致
var ErrVariantType = errors.New("variant type mismatch")

// Error 编解码错误
type Error struct {
	Codec string
	Op    Op
	Type  string
	Err   error
}

// Error 实现 error 接口
func (e *Error) Error() string {
	return fmt.Sprintf("%s %s %s: %v", e.Codec, e.Op, e.Type, e.Err)
}

// Unwrap 返回底层错误
func (e *Error) Unwrap() error { return e.Err }

// Is 使 errors.Is(err, ErrCodec) 对所有编解码错误成立
func (e *Error) Is(target error) bool { return target == ErrCodec }

func newError[T any](codec string, op Op, err error) *Error {
	return &Error{Codec: codec, Op: op, Type: typeName[T](), Err: err}
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
