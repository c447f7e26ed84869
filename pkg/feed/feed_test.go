package feed

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedrank/pkg/domain"
)

type fetcherFunc func(ctx context.Context, feedURL string) ([]domain.Article, error)

func (f fetcherFunc) Fetch(ctx context.Context, feedURL string) ([]domain.Article, error) {
	return f(ctx, feedURL)
}

func TestFetchAll(t *testing.T) {
	t.Run("order kept and failures skipped", func(t *testing.T) {
		f := fetcherFunc(func(_ context.Context, u string) ([]domain.Article, error) {
			switch u {
			case "slow":
				time.Sleep(50 * time.Millisecond)
				return []domain.Article{{Title: "slow-1"}, {Title: "slow-2"}}, nil
			case "bad":
				return nil, errors.New("boom")
			default:
				return []domain.Article{{Title: u + "-1"}}, nil
			}
		})

		res, err := FetchAll(context.Background(), f, []string{"slow", "bad", "fast", " ", "other"}, 4)
		require.NoError(t, err)
		got := make([]string, 0, len(res))
		for _, a := range res {
			got = append(got, a.Title)
		}
		assert.Equal(t, []string{"slow-1", "slow-2", "fast-1", "other-1"}, got)
	})

	t.Run("concurrency limited", func(t *testing.T) {
		var running, peak int32
		f := fetcherFunc(func(_ context.Context, u string) ([]domain.Article, error) {
			n := atomic.AddInt32(&running, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&running, -1)
			return nil, nil
		})
		_, err := FetchAll(context.Background(), f, []string{"a", "b", "c", "d", "e", "f"}, 2)
		require.NoError(t, err)
		assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
	})

	t.Run("all failed", func(t *testing.T) {
		f := fetcherFunc(func(context.Context, string) ([]domain.Article, error) { return nil, errors.New("down") })
		res, err := FetchAll(context.Background(), f, []string{"a", "b"}, 2)
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		f := fetcherFunc(func(context.Context, string) ([]domain.Article, error) { return []domain.Article{{}}, nil })
		_, err := FetchAll(ctx, f, []string{"a"}, 1)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
