// @title SkillPath 后端 API
// @version 1.0
// @description 员工技能测评与个性化学习路径服务
// @description 管理员维护技能目录与岗位画像；员工完成 AI 生成的测评后获得按技能缺口排列的学习内容。

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 格式: Bearer <access token>

package main

import (
	"flag"
	"io"
	"log"
	"os"

	"skillpath_backend/internal/app"
	"skillpath_backend/internal/config"
	"skillpath_backend/pkg/logger"
)

type options struct {
	configDir   string
	migrate     bool
	migrateOnly bool
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("skillpath", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.configDir, "config", "configs", "config.yaml 所在目录，同时作为热更新监听目录")
	fs.BoolVar(&opts.migrateOnly, "migrate-only", false, "建表并导入 seed.path 指定的技能目录后退出，不启动 HTTP 服务")
	fs.BoolVar(&opts.migrate, "migrate", false, "release 模式下启动时同样执行建表与目录导入")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	// -migrate-only 隐含 -migrate
	opts.migrate = opts.migrate || opts.migrateOnly
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(opts.configDir)
	if err != nil {
		log.Fatalf("load config from %s: %v", opts.configDir, err)
	}
	cfg.ForceMigrate = opts.migrate
	cfg.MigrateOnly = opts.migrateOnly

	application := app.NewApp(cfg, opts.configDir)
	defer logger.Log.Sync()

	if cfg.MigrateOnly {
		logger.Log.Info("Schema and catalog seed applied, exiting")
		return
	}
	application.Run()
}
