package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<title>Tech Daily</title>
		<link>https://example.com</link>
		<description>Test feed description</description>
		<item>
			<title>Test Article 1</title>
			<link>https://example.com/article1</link>
			<description>Article 1 description</description>
			<pubDate>Mon, 02 Jan 2006 15:04:05 -0700</pubDate>
		</item>
		<item>
			<title>Test Article 2</title>
			<link>https://example.com/article2</link>
			<description><![CDATA[<p>Article 2 <b>rich</b> description</p>]]></description>
			<pubDate>2024-03-30</pubDate>
		</item>
		<item>
			<title>Test Article 3</title>
			<link>https://example.com/article3</link>
		</item>
	</channel>
</rss>`

func TestHTTPFetcher_Fetch(t *testing.T) {
	t.Run("rss feed", func(t *testing.T) {
		var userAgent string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userAgent = r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "application/rss+xml")
			_, _ = w.Write([]byte(testRSS))
		}))
		defer ts.Close()

		f := NewHTTPFetcher(Params{Timeout: 5 * time.Second, UserAgent: "test-agent", MaxPerFeed: 10})
		articles, err := f.Fetch(context.Background(), ts.URL)
		require.NoError(t, err)
		require.Len(t, articles, 3)
		assert.Equal(t, "test-agent", userAgent)

		assert.Equal(t, "Test Article 1", articles[0].Title)
		assert.Equal(t, "https://example.com/article1", articles[0].Link)
		assert.Equal(t, "Article 1 description", articles[0].Summary)
		assert.Equal(t, "Mon, 02 Jan 2006 15:04:05 -0700", articles[0].Published)
		assert.Equal(t, "Tech Daily", articles[0].Source)
		assert.Equal(t, ts.URL, articles[0].FeedURL)

		assert.Equal(t, "Article 2 rich description", articles[1].Summary)
		assert.Equal(t, "2024-03-30", articles[1].Published)

		assert.Empty(t, articles[2].Summary)
		assert.Empty(t, articles[2].Published)
		assert.Zero(t, articles[2].RelevanceScore)
	})

	t.Run("max per feed", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(testRSS))
		}))
		defer ts.Close()

		f := NewHTTPFetcher(Params{Timeout: 5 * time.Second, MaxPerFeed: 2})
		articles, err := f.Fetch(context.Background(), ts.URL)
		require.NoError(t, err)
		require.Len(t, articles, 2)
		assert.Equal(t, "Test Article 2", articles[1].Title)
	})

	t.Run("atom feed without title", func(t *testing.T) {
		atom := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<link href="https://example.com/"/>
	<updated>2024-01-02T15:04:05Z</updated>
	<entry>
		<title>Atom Entry 1</title>
		<link href="https://example.com/entry1"/>
		<id>entry1</id>
		<published>2024-01-02T15:04:05Z</published>
		<summary>Entry 1 summary</summary>
	</entry>
</feed>`
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/atom+xml")
			_, _ = w.Write([]byte(atom))
		}))
		defer ts.Close()

		f := NewHTTPFetcher(Params{Timeout: 5 * time.Second})
		articles, err := f.Fetch(context.Background(), ts.URL)
		require.NoError(t, err)
		require.Len(t, articles, 1)
		assert.Equal(t, "Atom Entry 1", articles[0].Title)
		assert.Equal(t, "https://example.com/entry1", articles[0].Link)
		assert.Equal(t, "Entry 1 summary", articles[0].Summary)
		assert.Equal(t, "2024-01-02T15:04:05Z", articles[0].Published)
		assert.Equal(t, "Unknown", articles[0].Source)
	})

	t.Run("http error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer ts.Close()

		f := NewHTTPFetcher(Params{Timeout: 5 * time.Second})
		_, err := f.Fetch(context.Background(), ts.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status code: 404")
	})

	t.Run("not a feed", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("just some text"))
		}))
		defer ts.Close()

		f := NewHTTPFetcher(Params{Timeout: 5 * time.Second})
		_, err := f.Fetch(context.Background(), ts.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse feed")
	})

	t.Run("timeout", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(testRSS))
		}))
		defer ts.Close()

		f := NewHTTPFetcher(Params{Timeout: 50 * time.Millisecond})
		_, err := f.Fetch(context.Background(), ts.URL)
		require.Error(t, err)
	})
}

func TestParser_Parse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Accept"), "application/rss+xml")
		assert.Equal(t, "Feedrank/1.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(testRSS))
	}))
	defer ts.Close()

	p := NewParser(5*time.Second, "")
	feed, err := p.Parse(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "Tech Daily", feed.Title)
	assert.Equal(t, "Test feed description", feed.Description)
	assert.Len(t, feed.Items, 3)

	// body cut at the size cap doesn't parse
	p.maxSize = 50
	_, err = p.Parse(context.Background(), ts.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse feed")
}

func TestCleanText(t *testing.T) {
	tbl := []struct {
		in, want string
	}{
		{"", ""},
		{"  plain text ", "plain text"},
		{"<p>Hello <b>world</b></p>", "Hello world"},
		{"<![CDATA[Cdata Title]]>", "Cdata Title"},
		{"&lt;p&gt;Escaped text&lt;/p&gt;", "Escaped text"},
		{"AT&amp;T earnings", "AT&T earnings"},
		{"https://example.com/a?x=1&amp;y=2", "https://example.com/a?x=1&y=2"},
		{"it's 5 < 6", "it's 5 < 6"},
	}
	for _, tt := range tbl {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanText(tt.in))
		})
	}
}
