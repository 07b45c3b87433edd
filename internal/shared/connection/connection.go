package connection

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const retryDelay = 5 * time.Second

func ConnectGORMWithRetry(
	host, user, password, dbname, port, sslmode string,
	maxRetries int,
) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode,
	)

	var lastErr error

	for i := 1; i <= maxRetries; i++ {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			lastErr = err
			zap.L().Warn("gorm open failed",
				zap.Int("attempt", i),
				zap.Int("max_retries", maxRetries),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		sqlDB, err := db.DB()
		if err != nil {
			lastErr = err
			zap.L().Warn("get sql.DB failed", zap.Int("attempt", i), zap.Error(err))
			time.Sleep(retryDelay)
			continue
		}

		if err := sqlDB.Ping(); err != nil {
			lastErr = err
			zap.L().Warn("db ping failed", zap.Int("attempt", i), zap.Error(err))
			time.Sleep(retryDelay)
			continue
		}

		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)

		zap.L().Info("database connection established")
		return db, nil
	}

	return nil, fmt.Errorf("database connection failed after %d retries: %w", maxRetries, lastErr)
}

func ConnectRedisWithRetry(addr string, maxRetries int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	for i := 1; i <= maxRetries; i++ {
		if err := rdb.Ping(context.Background()).Err(); err == nil {
			zap.L().Info("redis connection established")
			return rdb, nil
		}

		zap.L().Warn("redis ping failed", zap.Int("attempt", i), zap.Int("max_retries", maxRetries))
		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("failed to connect redis at %s", addr)
}

func ConnectKafkaWithRetry(broker string, maxRetries int) (*kafkago.Writer, error) {
	var lastErr error

	for i := 1; i <= maxRetries; i++ {
		conn, err := kafkago.Dial("tcp", broker)
		if err != nil {
			lastErr = err
			zap.L().Warn("kafka dial failed", zap.Int("attempt", i), zap.Error(err))
			time.Sleep(retryDelay)
			continue
		}
		conn.Close()

		writer := &kafkago.Writer{
			Addr:         kafkago.TCP(broker),
			Balancer:     &kafkago.LeastBytes{},
			RequiredAcks: kafkago.RequireAll,
		}

		zap.L().Info("kafka connection established", zap.String("broker", broker))
		return writer, nil
	}

	return nil, fmt.Errorf("kafka connection failed after %d retries: %w", maxRetries, lastErr)
}
