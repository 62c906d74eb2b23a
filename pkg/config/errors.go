package config

import "errors"

// 配置校验错误
var (
	ErrInvalidMailboxSize     = errors.New("invalid mailbox size")
	ErrInvalidShutdownTimeout = errors.New("invalid shutdown timeout")
	ErrInvalidLogLevel        = errors.New("invalid log level")
	ErrInvalidLogFormat       = errors.New("invalid log format")
)

// 配置加载错误
var (
	ErrConfigParse       = errors.New("configuration parse error")
	ErrUnsupportedFormat = errors.New("unsupported configuration format")
)
