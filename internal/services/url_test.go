package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/fsdevblog/tinyurl/internal/db"
	"github.com/fsdevblog/tinyurl/internal/models"
	"github.com/fsdevblog/tinyurl/internal/repositories/memstore"
	"github.com/fsdevblog/tinyurl/internal/repositories/sql"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		rawURL string
		want   bool
	}{
		{name: "http", rawURL: "http://x", want: true},
		{name: "https", rawURL: "https://x", want: true},
		{name: "surrounding spaces", rawURL: "  https://x  ", want: true},
		{name: "ftp", rawURL: "ftp://example.com", want: false},
		{name: "no scheme", rawURL: "example.com", want: false},
		{name: "upper case scheme", rawURL: "HTTPS://example.com", want: false},
		{name: "empty", rawURL: "", want: false},
		{name: "scheme only prefix", rawURL: "https:/x", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.rawURL))
		})
	}
}

func TestRandomGenerator(t *testing.T) {
	g := NewRandomGenerator(DefaultCodeLength)
	seen := make(map[string]struct{})
	for range 1000 {
		code := g.Next()
		require.Len(t, code, DefaultCodeLength)
		require.Regexp(t, `^[A-Za-z0-9]+$`, code)
		seen[code] = struct{}{}
	}
	assert.Greater(t, len(seen), 990)

	assert.Len(t, NewRandomGenerator(0).Next(), DefaultCodeLength)
	assert.Len(t, NewRandomGenerator(13).Next(), DefaultCodeLength)
	assert.Len(t, NewRandomGenerator(12).Next(), 12)
}

func TestSnowflakeGenerator(t *testing.T) {
	g, err := NewSnowflakeGenerator(1)
	require.NoError(t, err)

	seen := make(map[string]struct{})
	for range 1000 {
		code := g.Next()
		require.LessOrEqual(t, len(code), models.MaxCodeLength)
		require.Regexp(t, `^[A-Za-z0-9]+$`, code)
		seen[code] = struct{}{}
	}
	assert.Len(t, seen, 1000)

	_, err = NewSnowflakeGenerator(1024)
	require.Error(t, err)
}

// sequence возвращает коды по порядку, повторяя последний.
func sequence(codes ...string) Generator {
	var mu sync.Mutex
	var i int
	return GeneratorFunc(func() string {
		mu.Lock()
		defer mu.Unlock()
		code := codes[min(i, len(codes)-1)]
		i++
		return code
	})
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type URLServiceSuite struct {
	suite.Suite
	storage db.StorageType
	conn    any
	repo    URLRepository
	service *URLService
}

func (s *URLServiceSuite) SetupTest() {
	memPath := ":memory:"
	conn, err := db.NewConnectionFactory(context.Background(), db.FactoryConfig{
		StorageType:  s.storage,
		SqliteDBPath: &memPath,
	})
	s.Require().NoError(err)
	s.conn = conn

	switch c := conn.(type) {
	case *db.MemoryStorage:
		s.repo = memstore.NewURLRepo(c, discardLogger())
	case *gorm.DB:
		s.repo = sql.NewURLRepo(c, discardLogger())
	default:
		s.FailNowf("unexpected connection", "%T", conn)
	}
	s.service = NewURLService(s.repo, discardLogger())
}

func (s *URLServiceSuite) TearDownTest() {
	s.Require().NoError(db.Close(s.conn))
}

func (s *URLServiceSuite) withGenerator(g Generator) *URLService {
	return NewURLService(s.repo, discardLogger(), WithGenerator(g))
}

func (s *URLServiceSuite) TestCreate_Idempotent() {
	ctx := s.T().Context()

	first, err := s.service.Create(ctx, "https://example.com/1")
	s.Require().NoError(err)
	second, err := s.service.Create(ctx, "https://example.com/1")
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
	s.Equal(first.Code, second.Code)

	links, err := s.service.List(ctx)
	s.Require().NoError(err)
	s.Len(links, 1)
}

func (s *URLServiceSuite) TestCreate_WithCustomGenerator() {
	ctx := s.T().Context()

	link, err := s.withGenerator(sequence("TESTCODE")).Create(ctx, "https://example.com/1")
	s.Require().NoError(err)
	s.Equal("TESTCODE", link.Code)
	s.Zero(link.Hits)

	again, err := s.withGenerator(sequence("OTHER")).Create(ctx, "https://example.com/1")
	s.Require().NoError(err)
	s.Equal(link.ID, again.ID)
	s.Equal("TESTCODE", again.Code)
}

func (s *URLServiceSuite) TestCreate_InvalidURL() {
	_, err := s.service.Create(s.T().Context(), "ftp://example.com")
	s.ErrorIs(err, ErrInvalidURL)

	links, err := s.service.List(s.T().Context())
	s.Require().NoError(err)
	s.Empty(links)
}

func (s *URLServiceSuite) TestCreate_DistinctURLsGetDistinctCodes() {
	ctx := s.T().Context()
	const n = 50

	codes := make(map[string]string, n)
	for i := range n {
		rawURL := fmt.Sprintf("%s/%d", gofakeit.URL(), i)
		link, err := s.service.Create(ctx, rawURL)
		s.Require().NoError(err)
		s.Len(link.Code, DefaultCodeLength)
		codes[link.Code] = rawURL
	}
	s.Len(codes, n)

	for code, rawURL := range codes {
		link, err := s.service.GetByCode(ctx, code)
		s.Require().NoError(err)
		s.Equal(rawURL, link.OriginalURL)
	}
}

func (s *URLServiceSuite) TestCreate_ConcurrentSameURL() {
	const n = 20
	ids := make([]uint, n)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := range n {
		go func() {
			defer wg.Done()
			link, err := s.service.Create(context.Background(), "https://example.com/race")
			if s.NoError(err) {
				ids[i] = link.ID
			}
		}()
	}
	wg.Wait()

	for _, id := range ids {
		s.Equal(ids[0], id)
	}
	links, err := s.service.List(s.T().Context())
	s.Require().NoError(err)
	s.Len(links, 1)
}

func (s *URLServiceSuite) TestGenerateUniqueCode_SkipsUsedCode() {
	ctx := s.T().Context()

	_, err := s.withGenerator(sequence("COLLIDE")).Create(ctx, "https://exist.com")
	s.Require().NoError(err)

	code, err := s.withGenerator(sequence("COLLIDE", "COL2")).GenerateUniqueCode(ctx)
	s.Require().NoError(err)
	s.Equal("COL2", code)
}

func (s *URLServiceSuite) TestResolve_RoundTrip() {
	ctx := s.T().Context()

	link, err := s.service.Create(ctx, "https://example.com/abc")
	s.Require().NoError(err)

	target, err := s.service.Resolve(ctx, link.Code)
	s.Require().NoError(err)
	s.Equal("https://example.com/abc", target)

	got, err := s.service.GetByCode(ctx, link.Code)
	s.Require().NoError(err)
	s.Equal(uint64(1), got.Hits)
}

func (s *URLServiceSuite) TestResolve_ConcurrentHits() {
	link, err := s.service.Create(s.T().Context(), "https://example.com/hot")
	s.Require().NoError(err)

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for range n {
		go func() {
			defer wg.Done()
			_, resolveErr := s.service.Resolve(context.Background(), link.Code)
			s.NoError(resolveErr)
		}()
	}
	wg.Wait()

	got, err := s.service.GetByCode(s.T().Context(), link.Code)
	s.Require().NoError(err)
	s.Equal(uint64(n), got.Hits)
}

func (s *URLServiceSuite) TestResolve_CanceledContextStillCounts() {
	link, err := s.service.Create(s.T().Context(), "https://example.com/cancel")
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.service.Resolve(ctx, link.Code)
	s.Require().NoError(err)

	got, err := s.service.GetByCode(s.T().Context(), link.Code)
	s.Require().NoError(err)
	s.Equal(uint64(1), got.Hits)
}

func (s *URLServiceSuite) TestDelete() {
	ctx := s.T().Context()

	deleted, err := s.service.Delete(ctx, "missing")
	s.Require().NoError(err)
	s.False(deleted)

	link, err := s.withGenerator(sequence("D")).Create(ctx, "https://d.com")
	s.Require().NoError(err)
	other, err := s.service.Create(ctx, "https://keep.com")
	s.Require().NoError(err)

	deleted, err = s.service.Delete(ctx, link.Code)
	s.Require().NoError(err)
	s.True(deleted)

	_, err = s.service.GetByCode(ctx, link.Code)
	s.ErrorIs(err, ErrRecordNotFound)
	_, err = s.service.Resolve(ctx, link.Code)
	s.ErrorIs(err, ErrRecordNotFound)

	links, err := s.service.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(links, 1)
	s.Equal(other.Code, links[0].Code)
}

func (s *URLServiceSuite) TestList_NewestFirst() {
	ctx := s.T().Context()
	for _, rawURL := range []string{"https://a.com", "https://b.com", "https://c.com"} {
		_, err := s.service.Create(ctx, rawURL)
		s.Require().NoError(err)
	}

	links, err := s.service.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(links, 3)
	s.Equal("https://c.com", links[0].OriginalURL)
	s.Equal("https://a.com", links[2].OriginalURL)
}

func TestURLServiceSuite_InMemory(t *testing.T) {
	suite.Run(t, &URLServiceSuite{storage: db.StorageTypeInMemory})
}

func TestURLServiceSuite_SQLite(t *testing.T) {
	suite.Run(t, &URLServiceSuite{storage: db.StorageTypeSQLite})
}
