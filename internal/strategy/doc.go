/*
Package strategy 存放解码结果的导出策略。

目前只有 prometheus：把字段值写成 node_exporter textfile collector
可以读取的 .prom 文件，由 metrics.enable 控制是否启用。
*/
package strategy
