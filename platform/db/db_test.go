package db

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type testRedisConfig struct {
	url string
}

func (c testRedisConfig) GetRedisURL() string       { return c.url }
func (c testRedisConfig) GetRedisTLSInsecure() bool { return false }

func TestNewRedisClientPingsServer(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), testRedisConfig{url: "redis://" + mr.Addr() + "/0"})
	if err != nil {
		t.Fatalf("new redis client: %v", err)
	}
	defer client.Close()

	if err := NewRedisPinger(client).Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestNewRedisClientRequiresURL(t *testing.T) {
	if _, err := NewRedisClient(context.Background(), testRedisConfig{}); err == nil {
		t.Fatal("expected error without REDIS_URL")
	}
}

func TestRedisOptionsInsecureTLS(t *testing.T) {
	opt, err := redisOptions("rediss://localhost:6380/1", true)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opt.TLSConfig == nil || !opt.TLSConfig.InsecureSkipVerify {
		t.Fatal("expected insecure TLS config")
	}
	if opt.DB != 1 {
		t.Fatalf("expected db 1, got %d", opt.DB)
	}
}

func TestPingerReportsDownServer(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	mr.Close()

	if err := NewRedisPinger(client).Ping(context.Background()); err == nil {
		t.Fatal("expected ping failure after server shutdown")
	}
}
