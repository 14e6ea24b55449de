package service

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"

	"haramaya.com/pharmatrack/internal/entity"
)

const medicineIndexName = "medicines"

// SearchService keeps the medicine search index in sync and answers queries.
// Indexing is best-effort: a failed index write logs and the originating
// request still succeeds, the database stays the source of truth.
type SearchService interface {
	IndexMedicine(medicine *entity.Medicine) error
	DeleteMedicine(id uuid.UUID) error
	SearchMedicines(query string, limit int) ([]uuid.UUID, error)
}

type medicineDocument struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	GenericName  *string `json:"generic_name,omitempty"`
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	TypeID       string  `json:"type_id"`
	TypeName     string  `json:"type_name"`
}

type meiliSearchService struct {
	client meilisearch.ServiceManager
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &meiliSearchService{client: client}
	s.initIndex()
	return s
}

func (s *meiliSearchService) initIndex() {
	filterableAttrs := []string{"category_id", "type_id"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}

	if _, err := s.client.Index(medicineIndexName).UpdateFilterableAttributes(&filterableInterface); err != nil {
		log.Printf("Failed to update medicines filterable attributes: %v", err)
	}

	searchableAttrs := []string{"name", "generic_name", "category_name", "type_name"}
	if _, err := s.client.Index(medicineIndexName).UpdateSearchableAttributes(&searchableAttrs); err != nil {
		log.Printf("Failed to update medicines searchable attributes: %v", err)
	}
}

func (s *meiliSearchService) IndexMedicine(medicine *entity.Medicine) error {
	doc := medicineDocument{
		ID:           medicine.ID.String(),
		Name:         medicine.Name,
		GenericName:  medicine.GenericName,
		CategoryID:   medicine.CategoryID.String(),
		CategoryName: medicine.Category.Name,
		TypeID:       medicine.TypeID.String(),
		TypeName:     medicine.Type.Name,
	}

	if _, err := s.client.Index(medicineIndexName).AddDocuments([]medicineDocument{doc}, strPtr("id")); err != nil {
		return fmt.Errorf("failed to index medicine %s: %w", doc.ID, err)
	}

	return nil
}

func (s *meiliSearchService) DeleteMedicine(id uuid.UUID) error {
	if _, err := s.client.Index(medicineIndexName).DeleteDocument(id.String()); err != nil {
		return fmt.Errorf("failed to remove medicine %s from index: %w", id, err)
	}

	return nil
}

// SearchMedicines returns medicine IDs in relevance order.
func (s *meiliSearchService) SearchMedicines(query string, limit int) ([]uuid.UUID, error) {
	res, err := s.client.Index(medicineIndexName).Search(query, &meilisearch.SearchRequest{
		Limit: int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("medicine search failed: %w", err)
	}

	return parseHitIDs(res.Hits), nil
}

// parseHitIDs extracts medicine IDs from raw index hits, dropping anything
// that does not decode to a valid document.
func parseHitIDs(hits meilisearch.Hits) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(hits))
	for _, hit := range hits {
		var doc medicineDocument
		if err := hit.Decode(&doc); err != nil {
			continue
		}
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	return ids
}

func strPtr(s string) *string {
	return &s
}
