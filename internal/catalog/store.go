package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// defaultFetchTimeout bounds remote dataset fetches.
const defaultFetchTimeout = 30 * time.Second

// Source identifies where the dataset comes from: a local file path or an
// HTTP URL. When both are set the file wins.
type Source struct {
	FilePath string
	URL      string
}

// Store owns the canonical, immutable-after-load record snapshot.
//
// Load parses the source exactly once per process lifetime; every later
// call returns the identical cached slice without re-parsing. That
// idempotence is the single guarantee the rest of the system depends on.
type Store struct {
	source Source
	log    *zap.Logger

	once    sync.Once
	records []ProjectRecord
}

// NewStore creates a Store over the given source. A nil logger is
// replaced with a no-op logger.
func NewStore(source Source, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{source: source, log: log}
}

// Load returns the cached record snapshot, parsing the source on the
// first call. An unreadable or unparseable source is logged and yields an
// empty snapshot; callers must treat "no records" as a valid state.
func (s *Store) Load(ctx context.Context) []ProjectRecord {
	s.once.Do(func() {
		records, err := s.parse(ctx)
		if err != nil {
			s.log.Warn("dataset load failed, serving empty snapshot",
				zap.String("file", s.source.FilePath),
				zap.String("url", s.source.URL),
				zap.Error(err))
			s.records = []ProjectRecord{}
			return
		}
		s.records = records
		s.log.Info("dataset loaded",
			zap.Int("records", len(records)))
	})
	return s.records
}

// ByID looks up a record by its load-order id. Returns (nil, false) when
// no record has that id.
func (s *Store) ByID(ctx context.Context, id int) (*ProjectRecord, bool) {
	records := s.Load(ctx)
	if id < 0 || id >= len(records) {
		return nil, false
	}
	return &records[id], true
}

// Count returns the number of records in the snapshot.
func (s *Store) Count(ctx context.Context) int {
	return len(s.Load(ctx))
}

func (s *Store) parse(ctx context.Context) ([]ProjectRecord, error) {
	raw, err := readSource(ctx, s.source)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	if len(rows) < 2 {
		// Header only (or nothing): a valid, empty dataset.
		return []ProjectRecord{}, nil
	}

	index := newHeaderIndex(rows[0])
	records := make([]ProjectRecord, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		// Malformed rows are never rejected; missing fields degrade to
		// defaults so a single bad row cannot abort the load.
		records = append(records, normalizeRow(len(records), index, cells))
	}
	return records, nil
}

func readSource(ctx context.Context, src Source) ([]byte, error) {
	switch {
	case src.FilePath != "":
		return os.ReadFile(src.FilePath)
	case src.URL != "":
		fetchCtx, cancel := context.WithTimeout(ctx, defaultFetchTimeout)
		defer cancel()

		req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, src.URL, nil)
		if err != nil {
			return nil, err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	default:
		return nil, errors.New("either file or url must be provided")
	}
}
