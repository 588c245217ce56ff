package strategy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"baseinfo/internal/parser"
	"baseinfo/internal/pkg"

	"github.com/mitchellh/mapstructure"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var errTextfileRequired = errors.New("metrics.textfile 不能为空")

// PrometheusStrategy 把解码出的字段写成 node_exporter textfile 格式
type PrometheusStrategy struct {
	info       PrometheusInfo
	logger     *zap.Logger
	registry   *prometheus.Registry
	fieldValue *prometheus.GaugeVec
	duration   prometheus.Gauge
	lastRun    prometheus.Gauge
}

// PrometheusInfo Prometheus 的专属配置
type PrometheusInfo struct {
	Textfile string `mapstructure:"textfile"`
	Job      string `mapstructure:"job"`
}

// NewPrometheusStrategy 从 ctx 中的 metrics 配置构造策略
func NewPrometheusStrategy(ctx context.Context) (*PrometheusStrategy, error) {
	log := pkg.LoggerFromContext(ctx)
	config := pkg.ConfigFromContext(ctx)

	var info PrometheusInfo
	if err := mapstructure.Decode(config.Metrics.Para, &info); err != nil {
		log.Error("Error decoding map to struct", zap.Error(err))
		return nil, fmt.Errorf("[NewPrometheusStrategy] Error decoding map to struct: %w", err)
	}
	if info.Textfile == "" {
		return nil, errTextfileRequired
	}
	if info.Job == "" {
		info.Job = "baseinfo"
	}

	constLabels := prometheus.Labels{"job": info.Job}
	p := &PrometheusStrategy{
		info:     info,
		logger:   log,
		registry: prometheus.NewRegistry(),
		fieldValue: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "baseinfo_field_value",
			Help:        "Decoded value of a fixed-offset field of pb_base_info.dat.",
			ConstLabels: constLabels,
		}, []string{"field"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "baseinfo_decode_duration_seconds",
			Help:        "Time spent opening and decoding the base info file.",
			ConstLabels: constLabels,
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "baseinfo_last_success_timestamp_seconds",
			Help:        "Unix time of the last successful decode.",
			ConstLabels: constLabels,
		}),
	}
	for _, c := range []prometheus.Collector{p.fieldValue, p.duration, p.lastRun} {
		if err := p.registry.Register(c); err != nil {
			return nil, fmt.Errorf("注册 Prometheus 指标失败: %w", err)
		}
	}
	return p, nil
}

func (p *PrometheusStrategy) GetType() string {
	return "prometheus"
}

// Publish 记录一次成功解码的结果
func (p *PrometheusStrategy) Publish(fields []parser.Field, elapsed time.Duration) {
	for _, f := range fields {
		p.fieldValue.With(prometheus.Labels{"field": f.Name}).Set(float64(f.Value))
	}
	p.duration.Set(elapsed.Seconds())
	p.lastRun.SetToCurrentTime()
	p.logger.Debug("[PrometheusStrategy] 发布指标", zap.Int("fields", len(fields)))
}

// Flush 原子地写出 textfile
func (p *PrometheusStrategy) Flush() error {
	if err := prometheus.WriteToTextfile(p.info.Textfile, p.registry); err != nil {
		return fmt.Errorf("写入 textfile %s 失败: %w", p.info.Textfile, err)
	}
	p.logger.Info("指标已写出", zap.String("textfile", p.info.Textfile))
	return nil
}
