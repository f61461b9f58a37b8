package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pathfinder/backend/config"
	"pathfinder/backend/internal/ingest"
	"pathfinder/backend/internal/repository"
	"pathfinder/backend/pkg/database"
	applogger "pathfinder/backend/pkg/logger"
)

type options struct {
	configPath  string
	dryRun      bool
	reset       bool
	timeout     time.Duration
	concurrency int
}

func main() {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "ingest [file|url]...",
		Short: "解析课程目录 HTML 页面并写入数据库",
		Long: "解析院系课程目录页（courseblock 结构）中的课程、学分、描述、先修条件与通识代码，\n" +
			"先写入全部课程，再写入先修 / 同修条件。参数可以是本地文件或 http(s) 地址。",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", os.Getenv("PATHFINDER_CONFIG"), "配置文件路径")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "只解析不写库")
	cmd.Flags().BoolVar(&opts.reset, "reset", false, "导入前清空课程目录（回滚并重新执行迁移）")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "单个页面的下载超时")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 4, "并发解析的页面数")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "导入失败: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *options, sources []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	defer logger.Sync()

	pages, err := parseAll(ctx, sources, opts, logger)
	if err != nil {
		return err
	}

	total := 0
	for _, p := range pages {
		total += len(p.Courses)
	}
	logger.Info("页面解析完成", zap.Int("pages", len(pages)), zap.Int("courses", total))
	if opts.dryRun {
		return nil
	}

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return fmt.Errorf("数据库连接失败: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	defer sqlDB.Close()

	migrateFn := database.RunMigrations
	if opts.reset {
		migrateFn = database.ResetCatalog
	}
	if err := migrateFn(sqlDB, logger); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}

	loader := ingest.NewLoader(repository.NewCatalogWriter(db), logger)
	summary, err := loader.Load(ctx, pages)
	if err != nil {
		return err
	}

	logger.Info("导入完成",
		zap.Int("courses", summary.Courses),
		zap.Int("courses_with_requisites", summary.Requisites),
		zap.Int("unresolved", len(summary.Unresolved)),
	)
	return nil
}

// parseAll 并发读取并解析所有页面，结果保持参数顺序
func parseAll(ctx context.Context, sources []string, opts *options, logger *zap.Logger) ([]*ingest.Page, error) {
	client := &http.Client{Timeout: opts.timeout}
	pages := make([]*ingest.Page, len(sources))
	errs := make([]error, len(sources))

	sem := make(chan struct{}, max(opts.concurrency, 1))
	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			page, skipped, err := parseSource(ctx, client, src)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", src, err)
				return
			}
			for _, e := range skipped {
				logger.Warn("跳过无法解析的课程块", zap.String("source", src), zap.Error(e))
			}
			pages[i] = page
		}(i, src)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return pages, nil
}

func parseSource(ctx context.Context, client *http.Client, src string) (*ingest.Page, []error, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		f, err := os.Open(src)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		return ingest.ParsePage(f)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return ingest.ParsePage(resp.Body)
}
