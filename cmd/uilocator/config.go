package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/glesirok/uilocator/pkg/toolkit"
)

const (
	envToolkit       = "UILOCATOR_TOOLKIT"
	envCaseSensitive = "UILOCATOR_CASE_SENSITIVE"
	envLogLevel      = "UILOCATOR_LOG_LEVEL"
)

// loadEnv 读取 .env，文件不存在不算错误，已有的环境变量不会被覆盖
func loadEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// newLogger verbose 时用开发配置，UILOCATOR_LOG_LEVEL 可以覆盖级别
func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	if s := os.Getenv(envLogLevel); s != "" {
		level, err := zapcore.ParseLevel(s)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", envLogLevel, err)
		}
		config.Level = zap.NewAtomicLevelAt(level)
	}

	return config.Build()
}

// settings 命令行参数优先，其次环境变量
type settings struct {
	toolkit       toolkit.Type
	caseSensitive bool
}

func resolveSettings(cmd *cobra.Command) (settings, error) {
	s := settings{toolkit: toolkit.Swing}

	name := toolkitName
	if !cmd.Flags().Changed("toolkit") {
		name = os.Getenv(envToolkit)
	}
	if name != "" {
		t, err := toolkit.ParseType(name)
		if err != nil {
			return s, err
		}
		s.toolkit = t
	}

	if cmd.Flags().Changed("case-sensitive") {
		s.caseSensitive = caseSensitive
	} else if v := os.Getenv(envCaseSensitive); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return s, fmt.Errorf("invalid %s: %w", envCaseSensitive, err)
		}
		s.caseSensitive = on
	}

	return s, nil
}
