package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"
)

// keywordIndex is an in-memory bleve index over the three fields the search
// tool's keyword leg matches. Fields are analyzed with the keyword analyzer
// so each field is a single term and wildcard queries give literal
// substring semantics, matching the table's LIKE fallback.
type keywordIndex struct {
	mu    sync.RWMutex
	index bleve.Index
}

func newKeywordIndex() (*keywordIndex, error) {
	index, err := bleve.NewMemOnly(buildAttractionMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create keyword index: %w", err)
	}
	return &keywordIndex{index: index}, nil
}

func buildAttractionMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	for _, field := range []string{"name", "description", "address"} {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = keyword.Name
		fm.Store = false
		fm.Index = true
		docMapping.AddFieldMappingsAt(field, fm)
	}
	indexMapping.DefaultMapping = docMapping

	return indexMapping
}

func (k *keywordIndex) Add(a Attraction) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.index.Index(a.Name, indexDoc(a))
}

func indexDoc(a Attraction) map[string]any {
	return map[string]any{
		"name":        a.Name,
		"description": a.Description,
		"address":     a.Address,
	}
}

// Rebuild replaces the index contents with the given rows. The old index
// is swapped out wholesale; mem-only bleve indexes are cheap to recreate.
func (k *keywordIndex) Rebuild(rows []Attraction) error {
	fresh, err := bleve.NewMemOnly(buildAttractionMapping())
	if err != nil {
		return fmt.Errorf("failed to recreate keyword index: %w", err)
	}

	batch := fresh.NewBatch()
	for _, a := range rows {
		if err := batch.Index(a.Name, indexDoc(a)); err != nil {
			fresh.Close()
			return fmt.Errorf("failed to index attraction %q: %w", a.Name, err)
		}
	}
	if err := fresh.Batch(batch); err != nil {
		fresh.Close()
		return fmt.Errorf("failed to commit index batch: %w", err)
	}

	k.mu.Lock()
	old := k.index
	k.index = fresh
	k.mu.Unlock()
	old.Close()
	return nil
}

// Lookup returns the names of attractions whose name, description or
// address contains the keyword as a literal substring.
func (k *keywordIndex) Lookup(kw string) ([]string, error) {
	pattern := "*" + wildcardEscape(kw) + "*"

	disjunction := bleve.NewDisjunctionQuery()
	for _, field := range []string{"name", "description", "address"} {
		wq := bleve.NewWildcardQuery(pattern)
		wq.SetField(field)
		disjunction.AddQuery(wq)
	}

	k.mu.RLock()
	defer k.mu.RUnlock()

	// Size the request to the whole corpus so no hit is ever dropped.
	count, err := k.index.DocCount()
	if err != nil {
		return nil, fmt.Errorf("keyword index unavailable: %w", err)
	}
	if count == 0 {
		return []string{}, nil
	}

	req := bleve.NewSearchRequest(disjunction)
	req.Size = int(count)

	result, err := k.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("keyword search failed: %w", err)
	}

	names := make([]string, 0, len(result.Hits))
	for _, hit := range result.Hits {
		names = append(names, hit.ID)
	}
	sort.Strings(names)
	return names, nil
}

func (k *keywordIndex) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.index.Close()
}

// wildcardEscape neutralizes bleve wildcard metacharacters in user input.
func wildcardEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)
	return r.Replace(s)
}
