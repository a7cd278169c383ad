package memory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"promo-insights-be/internal/constant"
	"promo-insights-be/internal/dto"
	"promo-insights-be/internal/entity"
	"promo-insights-be/internal/pkg/logger"

	"github.com/patrickmn/go-cache"
)

// IDatasetRepository owns the single immutable snapshot of promotion records.
// Records never mutate after ingestion; Reload swaps the whole snapshot.
type IDatasetRepository interface {
	Load(ctx context.Context) (int, error)
	LoadRaw(raw string) int
	AllRecords() []entity.Record
	Header() []string
	DistinctValues(field string) []string
	Schema() []dto.SchemaField
}

type datasetRepository struct {
	path string
	url  string
	log  logger.ILogger

	mu      sync.RWMutex
	header  []string
	records []entity.Record

	// Distinct-value lists are derived and cheap to rebuild, so a short TTL
	// is fine; the cache is flushed on every reload anyway.
	distinct *cache.Cache
}

func NewDatasetRepository(path, url string, log logger.ILogger) IDatasetRepository {
	return &datasetRepository{
		path:     path,
		url:      url,
		log:      log,
		distinct: cache.New(10*time.Minute, 30*time.Minute),
	}
}

// Load ingests the delimited-text payload from the configured source, local
// path first. Any failure leaves an empty snapshot rather than an error page:
// the dashboard simply renders no data.
func (r *datasetRepository) Load(ctx context.Context) (int, error) {
	raw, err := r.fetch(ctx)
	if err != nil {
		r.log.Error("DatasetRepository", "Dataset fetch failed, serving empty set", map[string]interface{}{"error": err.Error()})
		r.swap(nil, nil)
		return 0, err
	}
	return r.LoadRaw(raw), nil
}

func (r *datasetRepository) fetch(ctx context.Context) (string, error) {
	if r.path != "" {
		if b, err := os.ReadFile(r.path); err == nil {
			return string(b), nil
		} else if r.url == "" {
			return "", err
		}
	}
	if r.url == "" {
		return "", errors.New("no dataset source configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("dataset fetch: unexpected status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// LoadRaw parses the payload and swaps the snapshot. The first retained line
// is the header; malformed rows are skipped and logged, never fatal.
func (r *datasetRepository) LoadRaw(raw string) int {
	lines := splitLines(raw)
	if len(lines) == 0 {
		r.swap(nil, nil)
		return 0
	}

	header, err := tokenize(lines[0])
	if err != nil {
		r.log.Error("DatasetRepository", "Header row is malformed", map[string]interface{}{"error": err.Error()})
		r.swap(nil, nil)
		return 0
	}

	records := make([]entity.Record, 0, len(lines)-1)
	for i, line := range lines[1:] {
		tokens, err := tokenize(line)
		if err != nil {
			r.log.Warn("DatasetRepository", "Skipping malformed row", map[string]interface{}{"row": i + 2, "error": err.Error()})
			continue
		}
		rec := make(entity.Record, len(header)+1)
		for j, field := range header {
			if j < len(tokens) {
				rec[field] = coerce(tokens[j])
			} else {
				rec[field] = coerce("")
			}
		}
		rec[constant.ColQuarter] = deriveQuarter(rec)
		records = append(records, rec)
	}

	r.swap(header, records)
	r.log.Info("DatasetRepository", "Dataset loaded", map[string]interface{}{"records": len(records), "columns": len(header)})
	return len(records)
}

func (r *datasetRepository) swap(header []string, records []entity.Record) {
	r.mu.Lock()
	r.header = header
	r.records = records
	r.mu.Unlock()
	r.distinct.Flush()
}

// AllRecords returns the current snapshot. Callers must not mutate records.
func (r *datasetRepository) AllRecords() []entity.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.records
}

func (r *datasetRepository) Header() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.header
}

// DistinctValues returns the sorted unique non-null string values of a field,
// for populating filter controls.
func (r *datasetRepository) DistinctValues(field string) []string {
	if v, found := r.distinct.Get(field); found {
		return v.([]string)
	}

	r.mu.RLock()
	seen := make(map[string]struct{})
	for _, rec := range r.records {
		if s := rec.Str(field); s != "" {
			seen[s] = struct{}{}
		}
	}
	r.mu.RUnlock()

	values := make([]string, 0, len(seen))
	for s := range seen {
		values = append(values, s)
	}
	sort.Strings(values)

	r.distinct.Set(field, values, cache.DefaultExpiration)
	return values
}

// Schema reports field names with a coarse inferred type: a field is
// "number" when every non-null value seen is numeric.
func (r *datasetRepository) Schema() []dto.SchemaField {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fields := make([]dto.SchemaField, 0, len(r.header))
	for _, name := range r.header {
		typ := "text"
		numeric := false
		for _, rec := range r.records {
			if rec.IsNull(name) {
				continue
			}
			if _, ok := rec.Num(name); ok {
				numeric = true
				continue
			}
			numeric = false
			break
		}
		if numeric {
			typ = "number"
		}
		fields = append(fields, dto.SchemaField{Name: name, Type: typ})
	}
	return fields
}

// splitLines splits on line boundaries, tolerating both \n and \r\n, and
// drops blank lines.
func splitLines(raw string) []string {
	parts := strings.Split(raw, "\n")
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSuffix(p, "\r")
		if strings.TrimSpace(p) == "" {
			continue
		}
		lines = append(lines, p)
	}
	return lines
}

// tokenize splits a line on commas with double-quote literal handling: a
// quote toggles literal mode, commas inside a literal do not split, and all
// tokens are trimmed. An unterminated literal is a malformed row.
func tokenize(line string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	inLiteral := false

	for _, ch := range line {
		switch {
		case ch == '"':
			inLiteral = !inLiteral
		case ch == ',' && !inLiteral:
			tokens = append(tokens, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(ch)
		}
	}
	if inLiteral {
		return nil, errors.New("unterminated quoted value")
	}
	tokens = append(tokens, strings.TrimSpace(cur.String()))
	return tokens, nil
}

var numberPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// coerce maps a raw token to its typed value: explicit null, number or text.
func coerce(token string) any {
	if token == "" || token == "null" || token == "NULL" {
		return nil
	}
	if numberPattern.MatchString(token) {
		if n, err := strconv.ParseFloat(token, 64); err == nil {
			return n
		}
	}
	return token
}

// deriveQuarter buckets the Week column into Q1..Q4 by ISO week number,
// matching how the analysis backend derives its Quarter column. The Week
// value is a dd-mm-yyyy date in the source data; a bare week number is
// accepted as a fallback.
func deriveQuarter(rec entity.Record) string {
	week := 0
	if t, ok := rec.Date(constant.ColWeek); ok {
		_, week = t.ISOWeek()
	} else if n, ok := rec.Num(constant.ColWeek); ok {
		week = int(n)
	}

	switch {
	case week >= 1 && week <= 13:
		return "Q1"
	case week >= 14 && week <= 26:
		return "Q2"
	case week >= 27 && week <= 39:
		return "Q3"
	case week >= 40 && week <= 52:
		return "Q4"
	default:
		return "Unknown"
	}
}
