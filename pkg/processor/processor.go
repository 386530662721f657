package processor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/glesirok/uilocator/pkg/component"
	"github.com/glesirok/uilocator/pkg/engine"
	"github.com/glesirok/uilocator/pkg/matcher"
	"github.com/glesirok/uilocator/pkg/rule"
	"github.com/glesirok/uilocator/pkg/toolkit"
)

// Processor 对快照文件批量执行查询集
type Processor struct {
	queries []*engine.Query
	engine  *engine.Engine
	runID   string
	logger  *zap.Logger
	out     io.Writer
}

type options struct {
	toolkit       toolkit.Type
	caseSensitive bool
	logger        *zap.Logger
	out           io.Writer
}

type Option func(*options)

// WithToolkit 查询集未指定工具包时使用
func WithToolkit(t toolkit.Type) Option {
	return func(o *options) { o.toolkit = t }
}

// WithCaseSensitive 查询集未指定时使用
func WithCaseSensitive(on bool) Option {
	return func(o *options) { o.caseSensitive = on }
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithOutput dry-run 的输出位置，默认 stdout
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// NewProcessor 创建处理器
func NewProcessor(suiteFile string, opts ...Option) (*Processor, error) {
	o := options{toolkit: toolkit.Swing, logger: zap.NewNop(), out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	config, err := rule.LoadFromFile(suiteFile)
	if err != nil {
		return nil, fmt.Errorf("load suite: %w", err)
	}

	// 查询集中的设置优先
	if config.Toolkit != 0 {
		o.toolkit = config.Toolkit
	}
	if config.CaseSensitive != nil {
		o.caseSensitive = *config.CaseSensitive
	}

	runID := uuid.NewString()
	logger := o.logger.With(zap.String("run_id", runID))

	eng := engine.NewEngine(
		engine.WithToolkit(o.toolkit),
		engine.WithEvaluator(matcher.New(
			matcher.WithCaseSensitive(o.caseSensitive),
			matcher.WithLogger(logger),
		)),
		engine.WithLogger(logger),
	)

	return &Processor{
		queries: config.Queries,
		engine:  eng,
		runID:   runID,
		logger:  logger,
		out:     o.out,
	}, nil
}

// RunID 本次运行的标识，写入每份报告
func (p *Processor) RunID() string {
	return p.runID
}

// Report 一个快照文件的查询结果
type Report struct {
	RunID    string            `yaml:"run_id"`
	Snapshot string            `yaml:"snapshot"`
	Window   string            `yaml:"window,omitempty"`
	Toolkit  toolkit.Type      `yaml:"toolkit"`
	Time     string            `yaml:"time"`
	Summary  Summary           `yaml:"summary"`
	Outcomes []*engine.Outcome `yaml:"outcomes"`
}

type Summary struct {
	Components int `yaml:"components"`
	Queries    int `yaml:"queries"`
	Passed     int `yaml:"passed"`
	Failed     int `yaml:"failed"`
}

// OK 所有查询都通过
func (r *Report) OK() bool {
	return r.Summary.Failed == 0
}

// Run 对快照执行全部查询
func (p *Processor) Run(tree *component.Tree, snapshot string) (*Report, error) {
	report := &Report{
		RunID:    p.runID,
		Snapshot: snapshot,
		Window:   tree.Metadata.WindowTitle,
		Toolkit:  p.engine.Toolkit(),
		Time:     time.Now().UTC().Format(time.RFC3339),
		Outcomes: make([]*engine.Outcome, 0, len(p.queries)),
	}
	report.Summary.Components = tree.Statistics().TotalComponents

	for i, q := range p.queries {
		out, err := p.engine.ApplyTree(tree, q)
		if err != nil {
			return nil, fmt.Errorf("apply query %d: %w", i, err)
		}
		report.Outcomes = append(report.Outcomes, out)
		report.Summary.Queries++
		if out.Passed {
			report.Summary.Passed++
			continue
		}
		report.Summary.Failed++
		p.logger.Warn("query failed",
			zap.String("snapshot", snapshot),
			zap.String("query", out.Query),
			zap.String("message", out.Message),
		)
	}

	return report, nil
}

// ProcessFile 处理单个快照文件，报告写入 outputPath
func (p *Processor) ProcessFile(inputPath, outputPath string, dryRun bool) (*Report, error) {
	tree, err := component.LoadFile(inputPath)
	if err != nil {
		return nil, err
	}

	report, err := p.Run(tree, inputPath)
	if err != nil {
		return nil, err
	}

	// 序列化报告（保持2空格缩进）
	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	encoder.Close()
	output := []byte(buf.String())

	p.logger.Info("snapshot processed",
		zap.String("snapshot", inputPath),
		zap.Int("passed", report.Summary.Passed),
		zap.Int("failed", report.Summary.Failed),
	)

	if dryRun {
		fmt.Fprintf(p.out, "=== Dry-run: %s ===\n", inputPath)
		fmt.Fprintln(p.out, string(output))
		return report, nil
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(outputPath, output, 0644); err != nil {
		return nil, fmt.Errorf("write file: %w", err)
	}

	return report, nil
}

// ReportPath 报告文件名，如 login.json 得到 login.report.yaml
func ReportPath(snapshotPath string) string {
	ext := filepath.Ext(snapshotPath)
	return strings.TrimSuffix(snapshotPath, ext) + ".report.yaml"
}

// ProcessDirectory 批量处理目录下的所有快照文件
// outputDir 为空时报告写在快照旁边
func (p *Processor) ProcessDirectory(inputDir, outputDir string, dryRun bool) ([]*Report, error) {
	if !dryRun && outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	var reports []*Report
	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !isSnapshot(path) {
			return nil
		}

		relPath, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}

		outputPath := ReportPath(path)
		if outputDir != "" {
			outputPath = filepath.Join(outputDir, ReportPath(relPath))
		}

		p.logger.Debug("processing snapshot", zap.String("snapshot", path))
		report, err := p.ProcessFile(path, outputPath, dryRun)
		if err != nil {
			return fmt.Errorf("process %s: %w", path, err)
		}
		reports = append(reports, report)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// isSnapshot 只处理 .yaml、.yml 和 .json，跳过生成的报告
func isSnapshot(path string) bool {
	if strings.HasSuffix(path, ".report.yaml") {
		return false
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
