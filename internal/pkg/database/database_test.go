package database

import (
	"context"
	"testing"
)

func TestUnconfiguredStoresAreOptional(t *testing.T) {
	db, err := NewPostgres(context.Background(), "")
	if db != nil || err != nil {
		t.Fatalf("NewPostgres(\"\") = %v, %v", db, err)
	}
	client, err := NewRedis(context.Background(), "")
	if client != nil || err != nil {
		t.Fatalf("NewRedis(\"\") = %v, %v", client, err)
	}

	// closing the absent stores is a no-op
	ClosePostgres(nil)
	CloseRedis(nil)
}

func TestNewRedisRejectsBadURL(t *testing.T) {
	if _, err := NewRedis(context.Background(), "mysql://localhost"); err == nil {
		t.Fatal("expected a parse error for a non-redis scheme")
	}
}
