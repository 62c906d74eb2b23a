package codec

import "gopkg.in/yaml.v3"

type yamlCodec[T any] struct{}

// YAML 返回 T 的 YAML 编解码器
// 体积比 JSON 大，适合调试时直接查看管道中的消息
func YAML[T any]() Codec[T] {
	return yamlCodec[T]{}
}

func (yamlCodec[T]) Name() string { return "yaml" }

func (yamlCodec[T]) Encode(v T) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, newError[T]("yaml", OpEncode, err)
	}
	return data, nil
}

func (yamlCodec[T]) Decode(data []byte) (T, error) {
	var v T
	if len(data) == 0 {
		return v, newError[T]("yaml", OpDecode, ErrEmpty)
	}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return v, newError[T]("yaml", OpDecode, err)
	}
	return v, nil
}
