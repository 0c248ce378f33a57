package Profiler

import "fmt"

// ParseError 文件名无法解析出位置或日期
type ParseError struct {
	Name   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s: %s", e.Name, e.Reason)
}

// ConfigError 输入参数不合法
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return e.Msg
}

// SchemaError 合并表时点位键不一致
type SchemaError struct {
	Msg string
}

func (e *SchemaError) Error() string {
	return e.Msg
}
