package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/redis/go-redis/v9"
)

// runKVContract exercises the behaviour every KVRepository must share
func runKVContract(t *testing.T, repo KVRepository) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := repo.Get(ctx, "contract_missing")
		if !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("expected ErrKeyNotFound, got %v", err)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		if err := repo.Set(ctx, "contract_cart", `[{"id":"1","quantity":2}]`); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		got, err := repo.Get(ctx, "contract_cart")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != `[{"id":"1","quantity":2}]` {
			t.Errorf("unexpected value %q", got)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		if err := repo.Set(ctx, "contract_user", "null"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := repo.Set(ctx, "contract_user", `{"id":"u1"}`); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		got, _ := repo.Get(ctx, "contract_user")
		if got != `{"id":"u1"}` {
			t.Errorf("expected overwritten value, got %q", got)
		}
	})

	t.Run("set many", func(t *testing.T) {
		entries := map[string]string{
			"contract_products": "[]",
			"contract_orders":   `[{"id":"ORD-1"}]`,
		}
		if err := repo.SetMany(ctx, entries); err != nil {
			t.Fatalf("SetMany failed: %v", err)
		}
		for key, want := range entries {
			got, err := repo.Get(ctx, key)
			if err != nil || got != want {
				t.Errorf("key %s: expected %q, got %q (err %v)", key, want, got, err)
			}
		}
	})
}

func TestMemoryKVRepository(t *testing.T) {
	runKVContract(t, NewMemoryKVRepository())
}

func newMiniredisRepository(t *testing.T, prefix string) (KVRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisKVRepository(client, prefix), mr
}

func TestRedisKVRepository(t *testing.T) {
	repo, _ := newMiniredisRepository(t, "ethereal_")
	runKVContract(t, repo)
}

func TestRedisKVRepository_UsesPrefix(t *testing.T) {
	repo, mr := newMiniredisRepository(t, "ethereal_")

	if err := repo.Set(context.Background(), "cart", "[]"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := mr.Get("ethereal_cart")
	if err != nil {
		t.Fatalf("expected prefixed key in redis: %v", err)
	}
	if got != "[]" {
		t.Errorf("unexpected value %q", got)
	}
	if mr.TTL("ethereal_cart") != 0 {
		t.Error("expected key without expiry")
	}
}

func TestRedisKVRepository_ServerDown(t *testing.T) {
	repo, mr := newMiniredisRepository(t, "p_")
	mr.Close()

	_, err := repo.Get(context.Background(), "cart")
	if err == nil || errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected a connection error, got %v", err)
	}
	if err := repo.SetMany(context.Background(), map[string]string{"cart": "[]"}); err == nil {
		t.Error("expected SetMany to fail against a closed server")
	}
}

// Feature: storefront, Property: stored values round-trip verbatim
func TestProperty_KVValuesRoundTripVerbatim(t *testing.T) {
	repos := map[string]KVRepository{
		"memory": NewMemoryKVRepository(),
	}
	redisRepo, _ := newMiniredisRepository(t, "prop_")
	repos["redis"] = redisRepo

	properties := gopter.NewProperties(nil)

	for name, repo := range repos {
		repo := repo
		properties.Property(name+" returns exactly what was stored", prop.ForAll(
			func(key string, value string) bool {
				ctx := context.Background()
				if err := repo.SetMany(ctx, map[string]string{key: value}); err != nil {
					t.Logf("FAIL: SetMany: %v", err)
					return false
				}
				got, err := repo.Get(ctx, key)
				return err == nil && got == value
			},
			gen.Identifier(),
			gen.AnyString(),
		))
	}

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
