/*
Package pkg 包含了项目的公共部分。具体地：

config.go -- 统一定义了所有配置的加载项 (viper)，便于使用

logger.go -- 配置 logger 项 (zap + lumberjack)

context.go -- 配置与 logger 通过 context 在各模块之间传递
*/
package pkg
