package service

import (
	"strconv"
	"strings"

	"promo-insights-be/internal/entity"
	"promo-insights-be/internal/repository/memory"
	"promo-insights-be/internal/store"

	"promo-insights-be/pkg/aggregate"
)

// IExportService serializes the filtered tabular subset back to delimited
// text, mirroring the ingestion format so an export can be re-ingested.
type IExportService interface {
	ExportFiltered() string
}

type exportService struct {
	datasetRepo memory.IDatasetRepository
	filterStore *store.FilterStore
}

func NewExportService(datasetRepo memory.IDatasetRepository, filterStore *store.FilterStore) IExportService {
	return &exportService{
		datasetRepo: datasetRepo,
		filterStore: filterStore,
	}
}

func (es *exportService) ExportFiltered() string {
	header := es.datasetRepo.Header()
	subset := aggregate.Filter(es.datasetRepo.AllRecords(), es.filterStore.Current())

	var b strings.Builder
	writeRow(&b, header)
	for _, rec := range subset {
		row := make([]string, len(header))
		for i, field := range header {
			row[i] = renderValue(rec, field)
		}
		writeRow(&b, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, values []string) {
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quoteIfNeeded(v))
	}
	b.WriteByte('\n')
}

// quoteIfNeeded wraps values containing the separator or a quote in double
// quotes, doubling embedded quotes, so the output round-trips through the
// ingestion tokenizer.
func quoteIfNeeded(v string) string {
	if !strings.ContainsAny(v, `,"`) {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

func renderValue(rec entity.Record, field string) string {
	if rec.IsNull(field) {
		return ""
	}
	if s := rec.Str(field); s != "" {
		return s
	}
	if n, ok := rec.Num(field); ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}
