package db

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
// 起動直後はDBがまだ上がっていないことがあるのでmaxElapsedまでリトライする。
func Connect(ctx context.Context, dsn string, gl gormlogger.Interface, maxElapsed time.Duration) (*gorm.DB, error) {
	var gdb *gorm.DB

	op := func() error {
		d, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gl})
		if err != nil {
			return err
		}
		sqlDB, err := d.DB()
		if err != nil {
			return backoff.Permanent(err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return err
		}
		gdb = d
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxElapsedTime = maxElapsed
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	return gdb, nil
}

// Close は接続プールを閉じる
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
