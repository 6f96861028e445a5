package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jask/mlmdash/internal/config"
	"github.com/jask/mlmdash/internal/database"
	"github.com/jask/mlmdash/internal/database/repository"
	"github.com/jask/mlmdash/internal/logging"
	"github.com/jask/mlmdash/internal/service"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// runtime is everything a subcommand needs, opened once per invocation.
type runtime struct {
	cfg config.Config
	log *zap.Logger
	db  *sql.DB

	members   *repository.MemberRepo
	inquiries *repository.InquiryRepo
}

func openRuntime(cfgPath string) (*runtime, error) {
	cfg, err := config.LoadFile(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	db, err := database.OpenMigrated(cfg.Database.Path, cfg.Database.Migrations)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	log.Debug("database ready", zap.String("path", cfg.Database.Path))
	return &runtime{
		cfg:       cfg,
		log:       log,
		db:        db,
		members:   repository.NewMemberRepo(db),
		inquiries: repository.NewInquiryRepo(db),
	}, nil
}

func (r *runtime) Close() {
	_ = r.db.Close()
	_ = r.log.Sync()
}

func (r *runtime) directory() *service.DirectoryService {
	return &service.DirectoryService{Members: r.members, Log: r.log}
}

func (r *runtime) downline() *service.DownlineService {
	return &service.DownlineService{Members: r.members, Log: r.log}
}

func (r *runtime) inquiryService() *service.InquiryService {
	return &service.InquiryService{Inquiries: r.inquiries, Log: r.log}
}
